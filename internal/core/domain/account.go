package domain

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// ReferralStatus tracks the referral and referral-withdrawal state of an account.
type ReferralStatus string

const (
	ReferralNone                ReferralStatus = "None"
	ReferralPending             ReferralStatus = "Pending"
	ReferralApproved            ReferralStatus = "Approved"
	ReferralRejected            ReferralStatus = "Rejected"
	ReferralWithdrawalRequested ReferralStatus = "WithdrawalRequested"
	ReferralCompleted           ReferralStatus = "Completed"
)

var referralStatuses = []ReferralStatus{
	ReferralNone,
	ReferralPending,
	ReferralApproved,
	ReferralRejected,
	ReferralWithdrawalRequested,
	ReferralCompleted,
}

// ParseReferralStatus maps a free-form status string onto the closed enum.
// Matching ignores case, spaces, dashes and underscores. An empty string is None.
func ParseReferralStatus(s string) (ReferralStatus, error) {
	if normalizeToken(s) == "" {
		return ReferralNone, nil
	}
	for _, st := range referralStatuses {
		if normalizeToken(string(st)) == normalizeToken(s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown referral status %q", s)
}

// Profile holds the contact details captured on first investment.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Account is a user's full financial and identity record.
type Account struct {
	AccountID         string            `json:"accountID"`
	NationalID        string            `json:"nationalID"`
	Profile           Profile           `json:"profile"`
	ReferralCode      string            `json:"referralCode"`
	ReferredBy        []string          `json:"referredBy"`
	ReferralStatus    ReferralStatus    `json:"referralStatus"`
	Balance           decimal.Decimal   `json:"balance"`
	Investments       []Investment      `json:"investments"`
	Transactions      []Transaction     `json:"transactions"`
	WithdrawalRequest WithdrawalRequest `json:"withdrawalRequest"`
	Version           int64             `json:"version"`
	AuditFields
}

// AddReferrer records code as a referring code unless it is already present.
func (a *Account) AddReferrer(code string) {
	if code == "" || slices.Contains(a.ReferredBy, code) {
		return
	}
	a.ReferredBy = append(a.ReferredBy, code)
}

// HasPendingWithdrawal reports whether the account has an unresolved withdrawal request.
func (a *Account) HasPendingWithdrawal() bool {
	return a.WithdrawalRequest.Status == WithdrawalPending
}

// HasInvestmentWithStatus reports whether any investment is in the given status.
func (a *Account) HasInvestmentWithStatus(status InvestmentStatus) bool {
	for _, inv := range a.Investments {
		if inv.Status == status {
			return true
		}
	}
	return false
}

// HasReferralBonusFor reports whether a referral bonus referencing the given
// referee account has already been credited to this account.
func (a *Account) HasReferralBonusFor(refereeAccountID string) bool {
	for _, txn := range a.Transactions {
		if txn.Kind == TransactionReferralBonus && txn.Reference == refereeAccountID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the account so callers can mutate it freely.
func (a Account) Clone() Account {
	c := a
	c.ReferredBy = slices.Clone(a.ReferredBy)
	c.Transactions = slices.Clone(a.Transactions)
	c.Investments = make([]Investment, len(a.Investments))
	for i, inv := range a.Investments {
		c.Investments[i] = inv.clone()
	}
	c.WithdrawalRequest = a.WithdrawalRequest.clone()
	return c
}

// Validate checks the account-level invariants.
func (a *Account) Validate() error {
	if a.NationalID == "" {
		return fmt.Errorf("national ID is required")
	}
	if a.ReferralCode == "" {
		return fmt.Errorf("referral code is required")
	}
	if a.Balance.IsNegative() {
		return fmt.Errorf("balance must not be negative, got %s", a.Balance.String())
	}
	for i, inv := range a.Investments {
		if err := inv.Validate(); err != nil {
			return fmt.Errorf("investment %d: %w", i, err)
		}
	}
	return nil
}
