package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	"github.com/SscSPs/investment_ledger_app/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/investment_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/investment_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VerifyPayment checks a gateway signature: the hex HMAC-SHA256 of
// orderID + "|" + paymentID keyed with secret. Any empty input fails.
func VerifyPayment(orderID, paymentID, signature, secret string) bool {
	if orderID == "" || paymentID == "" || signature == "" || secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignPayment produces the signature VerifyPayment accepts.
func SignPayment(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// verifyConfirmation applies the payment policy to an optional confirmation.
func verifyConfirmation(p *dto.PaymentConfirmation, secret string, required bool) error {
	if p == nil {
		if required {
			return fmt.Errorf("%w: payment confirmation is required", apperrors.ErrAuthentication)
		}
		return nil
	}
	if !VerifyPayment(p.OrderID, p.PaymentID, p.Signature, secret) {
		return fmt.Errorf("%w: payment signature mismatch", apperrors.ErrAuthentication)
	}
	return nil
}

type paymentService struct {
	BaseService
	gateway  gateways.PaymentGateway
	currency string
}

// NewPaymentService creates the checkout order service.
func NewPaymentService(gateway gateways.PaymentGateway, currency string) portssvc.PaymentSvc {
	if currency == "" {
		currency = "INR"
	}
	return &paymentService{BaseService: newBaseService(), gateway: gateway, currency: currency}
}

var _ portssvc.PaymentSvc = (*paymentService)(nil)

func (s *paymentService) CreateOrder(ctx context.Context, amount decimal.Decimal) (*domain.PaymentOrder, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if s.gateway == nil {
		return nil, fmt.Errorf("payment gateway is not configured")
	}
	receipt := "rcpt_" + uuid.NewString()[:8]
	order, err := s.gateway.CreateOrder(ctx, amount, s.currency, receipt)
	if err != nil {
		s.LogError(ctx, err, "Failed to create payment order", slog.String("amount", amount.String()))
		return nil, err
	}
	s.LogInfo(ctx, "Payment order created", slog.String("order_id", order.OrderID), slog.Int64("gateway_amount", order.GatewayAmount))
	return &order, nil
}
