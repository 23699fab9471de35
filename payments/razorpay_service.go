package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	config "github.com/omondi3768/turf_booking/configs"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// Order mirrors the fields of a Razorpay order we care about. Amounts are in
// the smallest currency unit (paise for INR).
type Order struct {
	ID         string `json:"id"`
	Entity     string `json:"entity"`
	Amount     int64  `json:"amount"`
	AmountPaid int64  `json:"amount_paid"`
	AmountDue  int64  `json:"amount_due"`
	Currency   string `json:"currency"`
	Receipt    string `json:"receipt"`
	Status     string `json:"status"`
}

// Refund mirrors a Razorpay refund entity.
type Refund struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// RazorpayClient talks to the Razorpay REST API using key-secret basic auth.
type RazorpayClient struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

// NewRazorpayClient builds a client from RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET.
func NewRazorpayClient() *RazorpayClient {
	baseURL := config.Config("RAZORPAY_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &RazorpayClient{
		keyID:     config.Config("RAZORPAY_KEY_ID"),
		keySecret: config.Config("RAZORPAY_KEY_SECRET"),
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewRazorpayClientWithBase is used by tests to point the client at a stub server.
func NewRazorpayClientWithBase(keyID, keySecret, baseURL string) *RazorpayClient {
	return &RazorpayClient{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *RazorpayClient) do(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request payload: %v", err)
		}
		body = bytes.NewBuffer(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to payment provider failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Description != "" {
			return fmt.Errorf("payment provider returned %d: %s", resp.StatusCode, apiErr.Error.Description)
		}
		return fmt.Errorf("payment provider returned %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %v", err)
		}
	}
	return nil
}

// CreateOrder creates a payment order. amount is in the smallest currency
// unit and receipt carries the booking code so the payment can be traced
// back at verification time.
func (c *RazorpayClient) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	payload := map[string]interface{}{
		"amount":          amount,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders", payload, &order); err != nil {
		return nil, fmt.Errorf("failed to create payment order: %w", err)
	}
	return &order, nil
}

// FetchOrder retrieves an order by its gateway id.
func (c *RazorpayClient) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+orderID, nil, &order); err != nil {
		return nil, fmt.Errorf("failed to fetch order %s: %w", orderID, err)
	}
	return &order, nil
}

// VerifySignature checks the checkout callback signature: HMAC-SHA256 over
// "orderID|paymentID" keyed with the account secret, hex encoded.
func (c *RazorpayClient) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Refund issues a normal-speed refund for a captured payment. amount is in
// the smallest currency unit.
func (c *RazorpayClient) Refund(ctx context.Context, paymentID string, amount int64) (*Refund, error) {
	payload := map[string]interface{}{
		"amount": amount,
		"speed":  "normal",
		"notes": map[string]string{
			"reason": "Customer requested cancellation via turf booking system.",
		},
	}
	var refund Refund
	if err := c.do(ctx, http.MethodPost, "/payments/"+paymentID+"/refund", payload, &refund); err != nil {
		return nil, fmt.Errorf("refund failed: %w", err)
	}
	return &refund, nil
}
