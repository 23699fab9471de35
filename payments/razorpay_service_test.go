package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySignature(t *testing.T) {
	client := NewRazorpayClientWithBase("key_test", "test_secret", "http://unused")

	// HMAC-SHA256("order_ABC123|pay_XYZ789") keyed with "test_secret".
	valid := "85cbc6036124891c4d0280fbb7cd83804f87a66f2eb485a89af574086f592cbc"
	assert.True(t, client.VerifySignature("order_ABC123", "pay_XYZ789", valid))
	assert.False(t, client.VerifySignature("order_ABC123", "pay_XYZ789", "deadbeef"))
	assert.False(t, client.VerifySignature("order_OTHER", "pay_XYZ789", valid))
	assert.False(t, client.VerifySignature("order_ABC123", "pay_XYZ789", ""))
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_test", user)
		assert.Equal(t, "test_secret", pass)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, float64(25000), payload["amount"])
		assert.Equal(t, "INR", payload["currency"])
		assert.Equal(t, "BK-TEST0001", payload["receipt"])
		assert.Equal(t, float64(1), payload["payment_capture"])

		json.NewEncoder(w).Encode(Order{
			ID:       "order_test1",
			Entity:   "order",
			Amount:   25000,
			Currency: "INR",
			Receipt:  "BK-TEST0001",
			Status:   "created",
		})
	}))
	defer srv.Close()

	client := NewRazorpayClientWithBase("key_test", "test_secret", srv.URL)
	order, err := client.CreateOrder(context.Background(), 25000, "INR", "BK-TEST0001")
	require.NoError(t, err)
	assert.Equal(t, "order_test1", order.ID)
	assert.Equal(t, int64(25000), order.Amount)
	assert.Equal(t, "BK-TEST0001", order.Receipt)
}

func TestFetchOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders/order_test1", r.URL.Path)
		json.NewEncoder(w).Encode(Order{ID: "order_test1", Amount: 25000, Status: "paid", Receipt: "BK-TEST0001"})
	}))
	defer srv.Close()

	client := NewRazorpayClientWithBase("key_test", "test_secret", srv.URL)
	order, err := client.FetchOrder(context.Background(), "order_test1")
	require.NoError(t, err)
	assert.Equal(t, "paid", order.Status)
	assert.Equal(t, "BK-TEST0001", order.Receipt)
}

func TestRefund(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments/pay_test1/refund", r.URL.Path)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, float64(25000), payload["amount"])
		assert.Equal(t, "normal", payload["speed"])

		json.NewEncoder(w).Encode(Refund{ID: "rfnd_test1", PaymentID: "pay_test1", Amount: 25000, Status: "processed"})
	}))
	defer srv.Close()

	client := NewRazorpayClientWithBase("key_test", "test_secret", srv.URL)
	refund, err := client.Refund(context.Background(), "pay_test1", 25000)
	require.NoError(t, err)
	assert.Equal(t, "rfnd_test1", refund.ID)
	assert.Equal(t, "processed", refund.Status)
}

func TestAPIErrorSurfacesDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Order amount less than minimum amount allowed"}}`))
	}))
	defer srv.Close()

	client := NewRazorpayClientWithBase("key_test", "test_secret", srv.URL)
	_, err := client.CreateOrder(context.Background(), 10, "INR", "BK-TEST0002")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Order amount less than minimum")
}
