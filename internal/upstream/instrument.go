package upstream

import (
	"context"
	"time"

	"raillo/internal/models"
)

// CallRecorder receives one observation per backend call.
type CallRecorder interface {
	UpstreamCall(endpoint string, duration time.Duration, failed bool)
}

// Instrument wraps a Client so every call is timed and counted under a
// stable endpoint label.
func Instrument(next Client, recorder CallRecorder) Client {
	if next == nil {
		panic("upstream client is required")
	}
	if recorder == nil {
		return next
	}
	return &instrumentedClient{next: next, recorder: recorder}
}

type instrumentedClient struct {
	next     Client
	recorder CallRecorder
}

func (c *instrumentedClient) observe(endpoint string, started time.Time, err error) {
	c.recorder.UpstreamCall(endpoint, time.Since(started), err != nil)
}

func (c *instrumentedClient) MileageBalance(ctx context.Context) (int64, error) {
	started := time.Now()
	balance, err := c.next.MileageBalance(ctx)
	c.observe("mileage_balance", started, err)
	return balance, err
}

func (c *instrumentedClient) SavedPaymentMethods(ctx context.Context) ([]models.SavedPaymentMethod, error) {
	started := time.Now()
	methods, err := c.next.SavedPaymentMethods(ctx)
	c.observe("saved_methods_list", started, err)
	return methods, err
}

func (c *instrumentedClient) SavedPaymentMethodRaw(ctx context.Context, id int64) (*models.SavedPaymentMethod, error) {
	started := time.Now()
	method, err := c.next.SavedPaymentMethodRaw(ctx, id)
	c.observe("saved_methods_raw", started, err)
	return method, err
}

func (c *instrumentedClient) CreateSavedPaymentMethod(ctx context.Context, req models.CreateSavedPaymentMethodRequest) (*models.SavedPaymentMethod, error) {
	started := time.Now()
	method, err := c.next.CreateSavedPaymentMethod(ctx, req)
	c.observe("saved_methods_create", started, err)
	return method, err
}

func (c *instrumentedClient) DeleteSavedPaymentMethod(ctx context.Context, id int64) error {
	started := time.Now()
	err := c.next.DeleteSavedPaymentMethod(ctx, id)
	c.observe("saved_methods_delete", started, err)
	return err
}

func (c *instrumentedClient) SetDefaultPaymentMethod(ctx context.Context, id int64) error {
	started := time.Now()
	err := c.next.SetDefaultPaymentMethod(ctx, id)
	c.observe("saved_methods_default", started, err)
	return err
}

func (c *instrumentedClient) VerifyBankAccount(ctx context.Context, req models.BankAccountVerificationRequest) (*models.BankAccountVerificationResponse, error) {
	started := time.Now()
	resp, err := c.next.VerifyBankAccount(ctx, req)
	c.observe("verify_bank_account", started, err)
	return resp, err
}

func (c *instrumentedClient) CalculatePayment(ctx context.Context, req models.PaymentCalculationRequest) (*models.PaymentCalculation, error) {
	started := time.Now()
	calc, err := c.next.CalculatePayment(ctx, req)
	c.observe("payments_calculate", started, err)
	return calc, err
}

func (c *instrumentedClient) RequestPGPayment(ctx context.Context, req models.PGPaymentRequest) (*models.PGPaymentResponse, error) {
	started := time.Now()
	resp, err := c.next.RequestPGPayment(ctx, req)
	c.observe("payments_pg_request", started, err)
	return resp, err
}

func (c *instrumentedClient) ApprovePGPayment(ctx context.Context, req models.PGPaymentApprovalRequest) (*models.PaymentRecord, error) {
	started := time.Now()
	record, err := c.next.ApprovePGPayment(ctx, req)
	c.observe("payments_pg_approve", started, err)
	return record, err
}

func (c *instrumentedClient) MemberPaymentHistory(ctx context.Context, req models.PaymentHistorySearchRequest) (*models.PaymentHistoryPage, error) {
	started := time.Now()
	page, err := c.next.MemberPaymentHistory(ctx, req)
	c.observe("history_member", started, err)
	return page, err
}

func (c *instrumentedClient) GuestPaymentSearch(ctx context.Context, req models.GuestPaymentSearchRequest) (*models.PaymentHistoryItem, error) {
	started := time.Now()
	item, err := c.next.GuestPaymentSearch(ctx, req)
	c.observe("history_guest_search", started, err)
	return item, err
}

func (c *instrumentedClient) PaymentByReservation(ctx context.Context, reservationID int64) (*models.PaymentHistoryItem, error) {
	started := time.Now()
	item, err := c.next.PaymentByReservation(ctx, reservationID)
	c.observe("history_by_reservation", started, err)
	return item, err
}

func (c *instrumentedClient) PaymentDetail(ctx context.Context, paymentID int64) (*models.PaymentHistoryItem, error) {
	started := time.Now()
	item, err := c.next.PaymentDetail(ctx, paymentID)
	c.observe("history_detail", started, err)
	return item, err
}

func (c *instrumentedClient) CalculateRefund(ctx context.Context, req models.RefundCalculationRequest) (*models.RefundQuote, error) {
	started := time.Now()
	quote, err := c.next.CalculateRefund(ctx, req)
	c.observe("refunds_calculate", started, err)
	return quote, err
}

func (c *instrumentedClient) ProcessRefund(ctx context.Context, refundCalculationID int64) (*models.RefundResult, error) {
	started := time.Now()
	result, err := c.next.ProcessRefund(ctx, refundCalculationID)
	c.observe("refunds_process", started, err)
	return result, err
}
