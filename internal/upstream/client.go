// Package upstream is the REST client for the payment/reservation backend.
// The BFF owns no durable state: every payment, saved instrument and refund
// record lives behind this API. Callers forward the end user's bearer token
// through the request context.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"raillo/internal/models"
)

// Client is the outbound surface of the payment backend. One method per
// endpoint the checkout, refund and history flows depend on.
type Client interface {
	MileageBalance(ctx context.Context) (int64, error)

	SavedPaymentMethods(ctx context.Context) ([]models.SavedPaymentMethod, error)
	SavedPaymentMethodRaw(ctx context.Context, id int64) (*models.SavedPaymentMethod, error)
	CreateSavedPaymentMethod(ctx context.Context, req models.CreateSavedPaymentMethodRequest) (*models.SavedPaymentMethod, error)
	DeleteSavedPaymentMethod(ctx context.Context, id int64) error
	SetDefaultPaymentMethod(ctx context.Context, id int64) error

	VerifyBankAccount(ctx context.Context, req models.BankAccountVerificationRequest) (*models.BankAccountVerificationResponse, error)

	CalculatePayment(ctx context.Context, req models.PaymentCalculationRequest) (*models.PaymentCalculation, error)
	RequestPGPayment(ctx context.Context, req models.PGPaymentRequest) (*models.PGPaymentResponse, error)
	ApprovePGPayment(ctx context.Context, req models.PGPaymentApprovalRequest) (*models.PaymentRecord, error)

	MemberPaymentHistory(ctx context.Context, req models.PaymentHistorySearchRequest) (*models.PaymentHistoryPage, error)
	GuestPaymentSearch(ctx context.Context, req models.GuestPaymentSearchRequest) (*models.PaymentHistoryItem, error)
	PaymentByReservation(ctx context.Context, reservationID int64) (*models.PaymentHistoryItem, error)
	PaymentDetail(ctx context.Context, paymentID int64) (*models.PaymentHistoryItem, error)

	CalculateRefund(ctx context.Context, req models.RefundCalculationRequest) (*models.RefundQuote, error)
	ProcessRefund(ctx context.Context, refundCalculationID int64) (*models.RefundResult, error)
}

type tokenKey struct{}

// WithToken attaches the caller's bearer token to the context so it can be
// forwarded on outbound calls.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the forwarded bearer token, if any.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// HTTPClient is the production Client over net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// Config holds the upstream connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewHTTPClient creates a client for the payment backend.
func NewHTTPClient(cfg Config) *HTTPClient {
	if cfg.BaseURL == "" {
		panic("upstream base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// envelope is the backend's response wrapper. Successful payloads arrive
// under result; failures carry errorMessage.
type envelope struct {
	Result       json.RawMessage `json:"result"`
	ErrorMessage string          `json:"errorMessage"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if len(data) > 0 {
		// A non-envelope body is tolerated; the raw bytes then decode
		// directly into out below.
		if err := json.Unmarshal(data, &env); err != nil {
			env = envelope{}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Status: resp.StatusCode, Message: env.ErrorMessage}
	}
	if env.ErrorMessage != "" {
		return &Error{Status: resp.StatusCode, Message: env.ErrorMessage}
	}
	if out == nil {
		return nil
	}

	payload := []byte(env.Result)
	if len(payload) == 0 {
		payload = data
	}
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) MileageBalance(ctx context.Context) (int64, error) {
	var out models.MileageBalanceResponse
	if err := c.do(ctx, http.MethodGet, "/mileage/balance/simple", nil, &out); err != nil {
		return 0, err
	}
	return out.Balance, nil
}

func (c *HTTPClient) SavedPaymentMethods(ctx context.Context) ([]models.SavedPaymentMethod, error) {
	var out []models.SavedPaymentMethod
	if err := c.do(ctx, http.MethodGet, "/saved-payment-methods", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SavedPaymentMethodRaw(ctx context.Context, id int64) (*models.SavedPaymentMethod, error) {
	var out models.SavedPaymentMethod
	path := fmt.Sprintf("/saved-payment-methods/%d/raw", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateSavedPaymentMethod(ctx context.Context, req models.CreateSavedPaymentMethodRequest) (*models.SavedPaymentMethod, error) {
	var out models.SavedPaymentMethod
	if err := c.do(ctx, http.MethodPost, "/saved-payment-methods", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteSavedPaymentMethod(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/saved-payment-methods/%d", id), nil, nil)
}

func (c *HTTPClient) SetDefaultPaymentMethod(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/saved-payment-methods/%d/default", id), nil, nil)
}

func (c *HTTPClient) VerifyBankAccount(ctx context.Context, req models.BankAccountVerificationRequest) (*models.BankAccountVerificationResponse, error) {
	var out models.BankAccountVerificationResponse
	if err := c.do(ctx, http.MethodPost, "/payment/verify-bank-account", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CalculatePayment(ctx context.Context, req models.PaymentCalculationRequest) (*models.PaymentCalculation, error) {
	var out models.PaymentCalculation
	if err := c.do(ctx, http.MethodPost, "/payments/calculate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RequestPGPayment(ctx context.Context, req models.PGPaymentRequest) (*models.PGPaymentResponse, error) {
	var out models.PGPaymentResponse
	if err := c.do(ctx, http.MethodPost, "/payments/pg/request", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ApprovePGPayment(ctx context.Context, req models.PGPaymentApprovalRequest) (*models.PaymentRecord, error) {
	var out models.PaymentRecord
	if err := c.do(ctx, http.MethodPost, "/payments/pg/approve", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) MemberPaymentHistory(ctx context.Context, req models.PaymentHistorySearchRequest) (*models.PaymentHistoryPage, error) {
	q := url.Values{}
	if req.StartDate != "" {
		q.Set("startDate", req.StartDate)
	}
	if req.EndDate != "" {
		q.Set("endDate", req.EndDate)
	}
	if req.PaymentStatus != "" {
		q.Set("paymentStatus", req.PaymentStatus)
	}
	if req.PaymentMethod != "" {
		q.Set("paymentMethod", req.PaymentMethod)
	}
	q.Set("page", strconv.Itoa(req.Page))
	if req.Size > 0 {
		q.Set("size", strconv.Itoa(req.Size))
	}
	if req.Sort != "" {
		q.Set("sort", req.Sort)
	}

	var out models.PaymentHistoryPage
	if err := c.do(ctx, http.MethodGet, "/payment-history/member?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GuestPaymentSearch(ctx context.Context, req models.GuestPaymentSearchRequest) (*models.PaymentHistoryItem, error) {
	var out models.PaymentHistoryItem
	if err := c.do(ctx, http.MethodPost, "/payment-history/guest/search", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) PaymentByReservation(ctx context.Context, reservationID int64) (*models.PaymentHistoryItem, error) {
	var out models.PaymentHistoryItem
	path := fmt.Sprintf("/payment-history/reservation/%d", reservationID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) PaymentDetail(ctx context.Context, paymentID int64) (*models.PaymentHistoryItem, error) {
	var out models.PaymentHistoryItem
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/payment-history/%d", paymentID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CalculateRefund(ctx context.Context, req models.RefundCalculationRequest) (*models.RefundQuote, error) {
	var out models.RefundQuote
	if err := c.do(ctx, http.MethodPost, "/refunds/calculate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ProcessRefund(ctx context.Context, refundCalculationID int64) (*models.RefundResult, error) {
	var out models.RefundResult
	path := fmt.Sprintf("/refunds/%d/process", refundCalculationID)
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
