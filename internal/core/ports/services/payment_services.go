package services

import (
	"context"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentSvc creates checkout orders with the payment gateway.
type PaymentSvc interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal) (*domain.PaymentOrder, error)
}

// AdminAuthSvc authenticates the operator and issues access tokens.
type AdminAuthSvc interface {
	Login(ctx context.Context, username, password string) (token string, expiresAt time.Time, err error)
}
