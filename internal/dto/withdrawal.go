package dto

import (
	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
)

// WithdrawalRequestBody is the public request to withdraw the account balance.
type WithdrawalRequestBody struct {
	NationalID  string `json:"aadhaar" binding:"required"`
	UPI         string `json:"upi"`
	BankAccount string `json:"bankAccount"`
	IFSC        string `json:"ifsc"`
}

// Destination converts the body into a payout destination.
func (b WithdrawalRequestBody) Destination() domain.PayoutDestination {
	return domain.PayoutDestination{UPI: b.UPI, BankAccount: b.BankAccount, IFSC: b.IFSC}.Normalize()
}

// ResolveWithdrawalBody carries the admin decision on a pending withdrawal.
type ResolveWithdrawalBody struct {
	Status string `json:"status" binding:"required"`
}
