// Package reconcile confirms that an approved payment actually produced a
// payment record. Settlement is asynchronous upstream, so the lookup polls
// for a bounded window before giving up; a missing record after that window
// is reported, never silently dropped.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log"

	"raillo/internal/metrics"
	"raillo/internal/models"
	"raillo/internal/repositories"
	"raillo/internal/services/identity"
	"raillo/internal/services/payment"
	"raillo/internal/upstream"
)

// Reconciliation errors.
var (
	ErrInvalidReservationID  = errors.New("invalid reservation id")
	ErrGuestIdentityRequired = errors.New("guest identity is required to look up the payment")
	ErrPaymentNotConfirmed   = errors.New("payment record could not be confirmed")
)

// Service resolves the payment record behind a just-approved reservation.
type Service interface {
	// Resolve polls for the reservation's payment record under the retry
	// policy. Members are looked up by reservation; guests by the sealed
	// identity saved at checkout. A guest without a cached identity fails
	// immediately, with no polling.
	Resolve(ctx context.Context, sessionID string, reservationID int64) (*models.PaymentHistoryItem, error)
}

type service struct {
	client   upstream.Client
	provider identity.Provider
	cache    repositories.CheckoutCache
	policy   RetryPolicy
	metrics  metrics.Collector
}

// NewService creates a reconciliation service.
func NewService(client upstream.Client, provider identity.Provider, cache repositories.CheckoutCache, policy RetryPolicy, collector metrics.Collector) Service {
	if client == nil {
		panic("upstream client is required")
	}
	if provider == nil {
		panic("identity provider is required")
	}
	if cache == nil {
		panic("checkout cache is required")
	}
	if policy.MaxAttempts <= 0 {
		policy = DefaultPolicy()
	}
	if collector == nil {
		collector = metrics.Noop{}
	}
	return &service{
		client:   client,
		provider: provider,
		cache:    cache,
		policy:   policy,
		metrics:  collector,
	}
}

func (s *service) Resolve(ctx context.Context, sessionID string, reservationID int64) (*models.PaymentHistoryItem, error) {
	if reservationID <= 0 {
		return nil, ErrInvalidReservationID
	}

	lookup, err := s.lookupFunc(ctx, sessionID, reservationID)
	if err != nil {
		s.metrics.ReconcileOutcome("no_identity")
		return nil, err
	}

	var item *models.PaymentHistoryItem
	runErr := s.policy.Run(ctx, func(ctx context.Context, attempt int) error {
		s.metrics.ReconcileAttempt(attempt)
		found, err := lookup(ctx)
		if err != nil {
			return err
		}
		item = found
		return nil
	})
	if runErr != nil {
		s.metrics.ReconcileOutcome("unconfirmed")
		return nil, fmt.Errorf("%w: %s", ErrPaymentNotConfirmed, upstream.MessageOf(runErr, runErr.Error()))
	}

	s.metrics.ReconcileOutcome("confirmed")
	if err := s.cache.Clear(ctx, sessionID); err != nil {
		log.Printf("checkout cache clear failed for session %s: %v", sessionID, err)
	}
	return item, nil
}

// lookupFunc picks the member or guest lookup. The guest branch resolves the
// cached identity up front so a missing identity is terminal before the
// first poll.
func (s *service) lookupFunc(ctx context.Context, sessionID string, reservationID int64) (func(context.Context) (*models.PaymentHistoryItem, error), error) {
	if s.provider.CurrentIdentity(ctx).IsMember() {
		return func(ctx context.Context) (*models.PaymentHistoryItem, error) {
			return s.client.PaymentByReservation(ctx, reservationID)
		}, nil
	}

	guest, err := s.cache.GuestIdentity(ctx, sessionID)
	if err != nil {
		return nil, ErrGuestIdentityRequired
	}
	req := models.GuestPaymentSearchRequest{
		ReservationID: reservationID,
		Name:          guest.Name,
		Phone:         guest.Phone,
		Password:      payment.WirePassword(guest.Password),
	}
	return func(ctx context.Context) (*models.PaymentHistoryItem, error) {
		return s.client.GuestPaymentSearch(ctx, req)
	}, nil
}
