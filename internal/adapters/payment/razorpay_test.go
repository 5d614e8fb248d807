package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRazorpayClient_CreateOrder(t *testing.T) {
	var got createOrderPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(orderResponse{ID: "order_123", Amount: got.Amount, Currency: got.Currency, Receipt: got.Receipt})
	}))
	defer srv.Close()

	client := NewRazorpayClient("key", "secret", srv.URL+"/", srv.Client())
	order, err := client.CreateOrder(context.Background(), decimal.RequireFromString("1000.50"), "INR", "rcpt_1")
	require.NoError(t, err)

	assert.Equal(t, int64(100050), got.Amount)
	assert.Equal(t, 1, got.PaymentCapture)
	assert.Equal(t, "order_123", order.OrderID)
	assert.Equal(t, int64(100050), order.GatewayAmount)
	assert.True(t, order.Amount.Equal(decimal.RequireFromString("1000.50")))
	assert.Equal(t, "rcpt_1", order.Receipt)
}

func TestRazorpayClient_CreateOrderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount too small"}}`))
	}))
	defer srv.Close()

	client := NewRazorpayClient("key", "secret", srv.URL, srv.Client())
	_, err := client.CreateOrder(context.Background(), decimal.NewFromInt(1), "INR", "rcpt_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount too small")
}
