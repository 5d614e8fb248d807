package dto

import (
	"github.com/shopspring/decimal"
)

// PaymentConfirmation is the signed confirmation returned by the payment gateway checkout.
type PaymentConfirmation struct {
	OrderID   string `json:"orderID"`
	PaymentID string `json:"paymentID"`
	Signature string `json:"signature"`
}

// SubmitInvestmentRequest defines the data needed to record a new investment.
// Proof references are the URLs returned by document storage.
type SubmitInvestmentRequest struct {
	NationalID    string               `json:"nationalID" validate:"required,max=64"`
	Name          string               `json:"name" validate:"max=128"`
	Email         string               `json:"email" validate:"omitempty,email"`
	Phone         string               `json:"phone" validate:"max=32"`
	Plan          string               `json:"plan" validate:"required"`
	Amount        decimal.Decimal      `json:"amount"`
	FrontProofRef string               `json:"frontProofRef" validate:"required"`
	BackProofRef  string               `json:"backProofRef" validate:"required"`
	ReferralCode  string               `json:"referralCode" validate:"max=64"`
	Payment       *PaymentConfirmation `json:"payment,omitempty"`
}

// InvestmentForm is the multipart form accepted by the public investment endpoint.
// The proof documents arrive as the "front" and "back" file parts.
type InvestmentForm struct {
	NationalID        string `form:"aadhaar" binding:"required"`
	Name              string `form:"name"`
	Email             string `form:"email"`
	Phone             string `form:"phone"`
	Plan              string `form:"plan" binding:"required"`
	Amount            string `form:"amount" binding:"required"`
	Referral          string `form:"referral"`
	RazorpayOrderID   string `form:"razorpay_order_id"`
	RazorpayPaymentID string `form:"razorpay_payment_id"`
	RazorpaySignature string `form:"razorpay_signature"`
}

// Confirmation returns the payment confirmation carried by the form, or nil when
// the form carries none of the payment fields.
func (f InvestmentForm) Confirmation() *PaymentConfirmation {
	if f.RazorpayOrderID == "" && f.RazorpayPaymentID == "" && f.RazorpaySignature == "" {
		return nil
	}
	return &PaymentConfirmation{
		OrderID:   f.RazorpayOrderID,
		PaymentID: f.RazorpayPaymentID,
		Signature: f.RazorpaySignature,
	}
}

// UpdateInvestmentRequest is an admin override of any subset of investment fields.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateInvestmentRequest struct {
	Status *string          `json:"status"`
	Profit *decimal.Decimal `json:"profit"`
	Locked *bool            `json:"locked"`
}
