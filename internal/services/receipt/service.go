// Package receipt renders downloadable PDF receipts for settled payments.
package receipt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/phpdave11/gofpdf"

	"raillo/internal/models"
	"raillo/internal/upstream"
)

// Receipt errors.
var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrNotSettled      = errors.New("receipt is only available for settled payments")
)

// Service builds payment receipts.
type Service interface {
	// Generate renders the receipt PDF for a payment. Only SUCCESS
	// payments have receipts.
	Generate(ctx context.Context, paymentID int64) ([]byte, error)
}

type service struct {
	client upstream.Client
}

// NewService creates a receipt service.
func NewService(client upstream.Client) Service {
	if client == nil {
		panic("upstream client is required")
	}
	return &service{client: client}
}

func (s *service) Generate(ctx context.Context, paymentID int64) ([]byte, error) {
	item, err := s.client.PaymentDetail(ctx, paymentID)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("fetch payment %d: %w", paymentID, err)
	}
	if item.PaymentStatus != models.PaymentStatusSuccess {
		return nil, ErrNotSettled
	}
	return render(item)
}

func render(item *models.PaymentHistoryItem) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Payment Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 6, "Issued "+time.Now().Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	rows := []struct {
		label string
		value string
	}{
		{"Payment ID", strconv.FormatInt(item.PaymentID, 10)},
		{"Order ID", item.ExternalOrderID},
		{"Reservation ID", strconv.FormatInt(item.ReservationID, 10)},
		{"Payment Method", item.PaymentMethod},
		{"Paid At", item.PaidAt.Format("2006-01-02 15:04:05")},
		{"Original Amount", formatWon(item.AmountOriginalTotal)},
		{"Discount", formatWon(item.TotalDiscountAmountApplied)},
		{"Mileage Used", formatWon(item.MileageAmountDeducted)},
		{"Amount Paid", formatWon(item.AmountPaid)},
	}
	if item.PGApprovalNo != "" {
		rows = append(rows, struct{ label, value string }{"Approval No", item.PGApprovalNo})
	}

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(55, 9, row.label, "B", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 9, row.value, "B", 1, "R", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.MultiCell(0, 5, "This receipt confirms a completed payment. Refunds are credited back to the original payment method.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func formatWon(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	result := string(out) + " KRW"
	if neg {
		result = "-" + result
	}
	return result
}
