package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus is the state of the current withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalNone     WithdrawalStatus = "None"
	WithdrawalPending  WithdrawalStatus = "Pending"
	WithdrawalApproved WithdrawalStatus = "Approved"
	WithdrawalRejected WithdrawalStatus = "Rejected"
)

// ParseWithdrawalDecision accepts only the two resolving statuses.
func ParseWithdrawalDecision(s string) (WithdrawalStatus, error) {
	switch normalizeToken(s) {
	case "approved", "approve":
		return WithdrawalApproved, nil
	case "rejected", "reject":
		return WithdrawalRejected, nil
	}
	return "", fmt.Errorf("invalid withdrawal decision %q, expected Approved or Rejected", s)
}

// PayoutDestination is either a UPI handle or a bank account + IFSC pair.
type PayoutDestination struct {
	UPI         string `json:"upi,omitempty"`
	BankAccount string `json:"bankAccount,omitempty"`
	IFSC        string `json:"ifsc,omitempty"`
}

// Normalize trims whitespace and uppercases the IFSC code.
func (d PayoutDestination) Normalize() PayoutDestination {
	return PayoutDestination{
		UPI:         strings.TrimSpace(d.UPI),
		BankAccount: strings.TrimSpace(d.BankAccount),
		IFSC:        strings.ToUpper(strings.TrimSpace(d.IFSC)),
	}
}

// Validate requires exactly one of the two destination forms.
func (d PayoutDestination) Validate() error {
	hasUPI := d.UPI != ""
	hasBank := d.BankAccount != "" || d.IFSC != ""
	switch {
	case hasUPI && hasBank:
		return errors.New("provide either a UPI handle or bank details, not both")
	case hasUPI:
		if !strings.Contains(d.UPI, "@") {
			return fmt.Errorf("invalid UPI handle %q", d.UPI)
		}
		return nil
	case hasBank:
		if d.BankAccount == "" || d.IFSC == "" {
			return errors.New("bank account and IFSC are both required")
		}
		return nil
	}
	return errors.New("payout destination is required")
}

// WithdrawalRequest is the current (latest) withdrawal request of an account.
type WithdrawalRequest struct {
	Amount      decimal.Decimal   `json:"amount"`
	Status      WithdrawalStatus  `json:"status"`
	RequestedAt *time.Time        `json:"requestedAt,omitempty"`
	ResolvedAt  *time.Time        `json:"resolvedAt,omitempty"`
	Destination PayoutDestination `json:"destination"`
}

// IsEmpty reports whether no request was ever made.
func (w WithdrawalRequest) IsEmpty() bool {
	return w.Status == "" || w.Status == WithdrawalNone
}

func (w WithdrawalRequest) clone() WithdrawalRequest {
	c := w
	if w.RequestedAt != nil {
		t := *w.RequestedAt
		c.RequestedAt = &t
	}
	if w.ResolvedAt != nil {
		t := *w.ResolvedAt
		c.ResolvedAt = &t
	}
	return c
}
