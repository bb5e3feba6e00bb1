package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raillo/internal/models"
)

func TestHTTPClient_DecodesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mileage/balance/simple", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result": map[string]interface{}{"balance": 12345},
		})
	}))
	defer server.Close()

	client := NewHTTPClient(Config{BaseURL: server.URL})
	ctx := WithToken(context.Background(), "token-123")

	balance, err := client.MileageBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), balance)
}

func TestHTTPClient_NoTokenNoHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{"result": map[string]interface{}{"balance": 0}})
	}))
	defer server.Close()

	client := NewHTTPClient(Config{BaseURL: server.URL})
	_, err := client.MileageBalance(context.Background())
	assert.NoError(t, err)
}

func TestHTTPClient_ErrorMapping(t *testing.T) {
	t.Run("non-2xx becomes a typed error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"errorMessage": "payment not found"})
		}))
		defer server.Close()

		client := NewHTTPClient(Config{BaseURL: server.URL})
		_, err := client.PaymentDetail(context.Background(), 99)
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.Equal(t, "payment not found", MessageOf(err, ""))
	})

	t.Run("200 with errorMessage is still an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"errorMessage": "record not found"})
		}))
		defer server.Close()

		client := NewHTTPClient(Config{BaseURL: server.URL})
		_, err := client.PaymentByReservation(context.Background(), 101)
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})

	t.Run("5xx is a server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewHTTPClient(Config{BaseURL: server.URL})
		_, err := client.MileageBalance(context.Background())
		require.Error(t, err)
		assert.True(t, IsServerError(err))
		assert.False(t, IsNotFound(err))
	})
}

func TestHTTPClient_PostsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments/calculate", r.URL.Path)

		var req models.PaymentCalculationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(48200), req.OriginalAmount)
		assert.Equal(t, int64(3000), req.MileageToUse)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"result": models.PaymentCalculation{ID: "calc-1", FinalPayableAmount: 45200},
		})
	}))
	defer server.Close()

	client := NewHTTPClient(Config{BaseURL: server.URL})
	calc, err := client.CalculatePayment(context.Background(), models.PaymentCalculationRequest{
		OriginalAmount: 48200,
		MileageToUse:   3000,
	})
	require.NoError(t, err)
	assert.Equal(t, "calc-1", calc.ID)
	assert.Equal(t, int64(45200), calc.FinalPayableAmount)
}

func TestHTTPClient_MemberHistoryQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2026-01-01", q.Get("startDate"))
		assert.Equal(t, "SUCCESS", q.Get("paymentStatus"))
		assert.Equal(t, "2", q.Get("page"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result": models.PaymentHistoryPage{TotalElements: 1},
		})
	}))
	defer server.Close()

	client := NewHTTPClient(Config{BaseURL: server.URL})
	page, err := client.MemberPaymentHistory(context.Background(), models.PaymentHistorySearchRequest{
		StartDate:     "2026-01-01",
		PaymentStatus: "SUCCESS",
		Page:          2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)
}

func TestHTTPClient_RawBodyWithoutEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.SavedPaymentMethod{{ID: 1}, {ID: 2}})
	}))
	defer server.Close()

	client := NewHTTPClient(Config{BaseURL: server.URL})
	methods, err := client.SavedPaymentMethods(context.Background())
	require.NoError(t, err)
	assert.Len(t, methods, 2)
}
