package dto

import "github.com/shopspring/decimal"

// CreateOrderRequest asks the payment gateway for a checkout order.
type CreateOrderRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CreateOrderResponse is returned to the checkout client.
type CreateOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Amount  int64  `json:"amount"` // minor units as reported by the gateway
}
