package domain

import "github.com/shopspring/decimal"

// PaymentOrder is a checkout order created with the payment gateway.
type PaymentOrder struct {
	OrderID       string          `json:"orderID"`
	Amount        decimal.Decimal `json:"amount"`
	GatewayAmount int64           `json:"gatewayAmount"` // minor currency units
	Currency      string          `json:"currency"`
	Receipt       string          `json:"receipt,omitempty"`
}
