package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raillo/internal/middleware"
	"raillo/internal/models"
	"raillo/internal/repositories"
	"raillo/internal/services/receipt"
	"raillo/internal/services/refund"
	"raillo/internal/upstream"
	"raillo/internal/validation"
)

type fakeClient struct {
	upstream.Client

	guestSearchFn func(ctx context.Context, req models.GuestPaymentSearchRequest) (*models.PaymentHistoryItem, error)
	refundCalcFn  func(ctx context.Context, req models.RefundCalculationRequest) (*models.RefundQuote, error)
}

func (f *fakeClient) GuestPaymentSearch(ctx context.Context, req models.GuestPaymentSearchRequest) (*models.PaymentHistoryItem, error) {
	return f.guestSearchFn(ctx, req)
}

func (f *fakeClient) CalculateRefund(ctx context.Context, req models.RefundCalculationRequest) (*models.RefundQuote, error) {
	return f.refundCalcFn(ctx, req)
}

type fakeCache struct {
	guests map[string]*models.GuestIdentity
}

func newFakeCache() *fakeCache {
	return &fakeCache{guests: map[string]*models.GuestIdentity{}}
}

func (c *fakeCache) SaveDraft(context.Context, string, *models.ReservationDraft) error { return nil }

func (c *fakeCache) Draft(context.Context, string) (*models.ReservationDraft, error) {
	return nil, repositories.ErrNotFound
}

func (c *fakeCache) SaveGuestIdentity(_ context.Context, sid string, guest *models.GuestIdentity) error {
	c.guests[sid] = guest
	return nil
}

func (c *fakeCache) GuestIdentity(_ context.Context, sid string) (*models.GuestIdentity, error) {
	if g, ok := c.guests[sid]; ok {
		return g, nil
	}
	return nil, repositories.ErrNotFound
}

func (c *fakeCache) Keys(context.Context, string) ([]string, error) { return nil, nil }

func (c *fakeCache) Clear(context.Context, string) error { return nil }

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		ErrorMessage string `json:"errorMessage"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.ErrorMessage
}

func TestCheckoutHandler_SaveGuestIdentity(t *testing.T) {
	cache := newFakeCache()
	app := fiber.New()
	app.Use(middleware.CheckoutSession)
	app.Post("/guest", NewCheckoutHandler(cache).SaveGuestIdentity)

	t.Run("rejects a mismatched confirmation", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, "POST", "/guest", fiber.Map{
			"name":            "홍길동",
			"phone":           "01012345678",
			"password":        "secret",
			"passwordConfirm": "secrets",
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, validation.ErrGuestPasswordMismatch.Error(), errorMessage(t, resp))
		assert.Empty(t, cache.guests)
	})

	t.Run("stores a confirmed identity", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, "POST", "/guest", fiber.Map{
			"name":            "홍길동",
			"phone":           "01012345678",
			"password":        "secret",
			"passwordConfirm": "secret",
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Len(t, cache.guests, 1)
		for _, g := range cache.guests {
			assert.Equal(t, "secret", g.Password)
		}
	})
}

func TestHistoryHandler_GuestSearch_FixedWidthPassword(t *testing.T) {
	var captured models.GuestPaymentSearchRequest
	client := &fakeClient{
		guestSearchFn: func(_ context.Context, req models.GuestPaymentSearchRequest) (*models.PaymentHistoryItem, error) {
			captured = req
			return &models.PaymentHistoryItem{}, nil
		},
	}
	app := fiber.New()
	app.Post("/search", NewHistoryHandler(client, receipt.NewService(client)).GuestSearch)

	resp, err := app.Test(jsonRequest(t, "POST", "/search", fiber.Map{
		"reservationId": 7,
		"name":          "홍길동",
		"phone":         "01012345678",
		"password":      "secret-long",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The stored record holds the 5-char form sent at approval; the lookup
	// must match it.
	assert.Equal(t, "secre", captured.Password)
	assert.Equal(t, int64(7), captured.ReservationID)
}

func TestRefundHandler_Quote_UpstreamErrors(t *testing.T) {
	newApp := func(err error) *fiber.App {
		client := &fakeClient{
			refundCalcFn: func(context.Context, models.RefundCalculationRequest) (*models.RefundQuote, error) {
				return nil, err
			},
		}
		app := fiber.New()
		app.Post("/quote", NewRefundHandler(refund.NewService(client, nil)).Quote)
		return app
	}

	t.Run("session rejection surfaces as unauthorized", func(t *testing.T) {
		app := newApp(&upstream.Error{Status: 401})
		resp, err := app.Test(jsonRequest(t, "POST", "/quote", fiber.Map{"paymentId": 9}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("backend rejection message is surfaced verbatim", func(t *testing.T) {
		app := newApp(&upstream.Error{Status: 400, Message: "이미 환불된 결제입니다"})
		resp, err := app.Test(jsonRequest(t, "POST", "/quote", fiber.Map{"paymentId": 9}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, "이미 환불된 결제입니다", errorMessage(t, resp))
	})
}
