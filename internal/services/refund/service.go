// Package refund quotes and confirms ticket refunds. The quote is a
// two-step contract like payment itself: the backend issues a calculation
// bound to the payment, and the confirm step consumes exactly that
// calculation. Fee tiers depend only on when the refund is requested
// relative to the train's schedule.
package refund

import (
	"context"
	"errors"
	"fmt"

	"raillo/internal/metrics"
	"raillo/internal/models"
	"raillo/internal/upstream"
)

// Refund flow errors.
var (
	ErrInvalidPaymentID = errors.New("invalid payment id")
	ErrQuoteRequired    = errors.New("refund quote is required before processing")
	ErrNotRefundable    = errors.New("ticket is no longer refundable")
	ErrPaymentNotFound  = errors.New("payment not found")
)

// Service is the refund protocol.
type Service interface {
	// Quote asks the backend for a time-tiered refund calculation. The
	// returned quote is authoritative; PolicyAt mirrors the same tiers for
	// anything that needs the fee before a quote exists.
	Quote(ctx context.Context, req models.RefundCalculationRequest) (*models.RefundQuote, error)

	// Confirm processes a quoted refund. Quotes past the arrival cutoff
	// are rejected locally before any backend call.
	Confirm(ctx context.Context, quote *models.RefundQuote) (*models.RefundResult, error)
}

type service struct {
	client  upstream.Client
	metrics metrics.Collector
}

// NewService creates a refund service.
func NewService(client upstream.Client, collector metrics.Collector) Service {
	if client == nil {
		panic("upstream client is required")
	}
	if collector == nil {
		collector = metrics.Noop{}
	}
	return &service{client: client, metrics: collector}
}

func (s *service) Quote(ctx context.Context, req models.RefundCalculationRequest) (*models.RefundQuote, error) {
	if req.PaymentID <= 0 {
		return nil, ErrInvalidPaymentID
	}
	if req.RefundType == "" {
		req.RefundType = models.RefundTypeCancel
	}

	quote, err := s.client.CalculateRefund(ctx, req)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("calculate refund: %w", err)
	}

	s.metrics.RefundQuoted(quote.RefundPolicy.FeePercentage)
	return quote, nil
}

func (s *service) Confirm(ctx context.Context, quote *models.RefundQuote) (*models.RefundResult, error) {
	if quote == nil || quote.RefundCalculationID <= 0 {
		return nil, ErrQuoteRequired
	}
	if !quote.IsRefundableByTime {
		return nil, ErrNotRefundable
	}

	result, err := s.client.ProcessRefund(ctx, quote.RefundCalculationID)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, ErrQuoteRequired
		}
		return nil, fmt.Errorf("process refund: %w", err)
	}

	s.metrics.RefundProcessed()
	return result, nil
}
