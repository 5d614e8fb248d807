// Package payment talks to the Razorpay orders API.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	"github.com/SscSPs/investment_ledger_app/internal/core/ports/gateways"
	"github.com/shopspring/decimal"
)

// RazorpayClient creates checkout orders.
type RazorpayClient struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

var _ gateways.PaymentGateway = (*RazorpayClient)(nil)

// NewRazorpayClient creates a client authenticated with the given key pair.
func NewRazorpayClient(keyID, keySecret, baseURL string, httpClient *http.Client) *RazorpayClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &RazorpayClient{
		keyID:      keyID,
		keySecret:  keySecret,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

type createOrderPayload struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder creates an order for amount, expressed in major units. Razorpay expects
// minor units (paise), so the amount is shifted by two places.
func (c *RazorpayClient) CreateOrder(ctx context.Context, amount decimal.Decimal, currency string, receipt string) (domain.PaymentOrder, error) {
	minor := amount.Shift(2).Round(0).IntPart()
	body, err := json.Marshal(createOrderPayload{
		Amount:         minor,
		Currency:       currency,
		Receipt:        receipt,
		PaymentCapture: 1,
	})
	if err != nil {
		return domain.PaymentOrder{}, fmt.Errorf("failed to encode order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return domain.PaymentOrder{}, fmt.Errorf("failed to build order request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.PaymentOrder{}, fmt.Errorf("order request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.PaymentOrder{}, fmt.Errorf("failed to read order response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e errorResponse
		if json.Unmarshal(raw, &e) == nil && e.Error.Description != "" {
			return domain.PaymentOrder{}, fmt.Errorf("razorpay returned %d: %s", resp.StatusCode, e.Error.Description)
		}
		return domain.PaymentOrder{}, fmt.Errorf("razorpay returned %d", resp.StatusCode)
	}

	var out orderResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return domain.PaymentOrder{}, fmt.Errorf("failed to decode order response: %w", err)
	}
	if out.ID == "" {
		return domain.PaymentOrder{}, fmt.Errorf("razorpay response has no order id")
	}
	return domain.PaymentOrder{
		OrderID:       out.ID,
		Amount:        amount,
		GatewayAmount: out.Amount,
		Currency:      out.Currency,
		Receipt:       out.Receipt,
	}, nil
}
