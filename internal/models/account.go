package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is one row of the accounts table. Investments, transactions and the
// withdrawal request are stored as JSONB documents.
type Account struct {
	AccountID         string            `db:"account_id"`
	NationalID        string            `db:"national_id"`
	Name              string            `db:"name"`
	Email             string            `db:"email"`
	Phone             string            `db:"phone"`
	ReferralCode      string            `db:"referral_code"`
	ReferredBy        []string          `db:"referred_by"`
	ReferralStatus    string            `db:"referral_status"`
	Balance           decimal.Decimal   `db:"balance"`
	Investments       []Investment      `db:"investments"`
	Transactions      []Transaction     `db:"transactions"`
	WithdrawalRequest WithdrawalRequest `db:"withdrawal_request"`
	Version           int64             `db:"version"`
	AuditFields
}

// Investment is the JSONB representation of an investment. The status key is
// matched by jsonb containment queries.
type Investment struct {
	Plan          string          `json:"plan"`
	Principal     decimal.Decimal `json:"principal"`
	FrontProofRef string          `json:"frontProofRef"`
	BackProofRef  string          `json:"backProofRef"`
	CreatedAt     time.Time       `json:"createdAt"`
	Status        string          `json:"status"`
	Profit        decimal.Decimal `json:"profit"`
	LastAccruedAt *time.Time      `json:"lastAccruedAt,omitempty"`
	Locked        bool            `json:"locked"`
}

// Transaction is the JSONB representation of a ledger entry.
type Transaction struct {
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
	Detail    string          `json:"detail"`
	Reference string          `json:"reference,omitempty"`
}

// WithdrawalRequest is the JSONB representation of the current withdrawal request.
type WithdrawalRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	RequestedAt *time.Time      `json:"requestedAt,omitempty"`
	ResolvedAt  *time.Time      `json:"resolvedAt,omitempty"`
	UPI         string          `json:"upi,omitempty"`
	BankAccount string          `json:"bankAccount,omitempty"`
	IFSC        string          `json:"ifsc,omitempty"`
}
