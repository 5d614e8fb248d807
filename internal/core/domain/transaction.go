package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies an audit-log entry.
type TransactionKind string

const (
	TransactionDeposit       TransactionKind = "Deposit"
	TransactionProfitCredit  TransactionKind = "ProfitCredit"
	TransactionReferralBonus TransactionKind = "ReferralBonus"
	TransactionWithdrawal    TransactionKind = "Withdrawal"
)

// Transaction is an immutable audit-log entry. Every balance or profit change on an
// account is paired with exactly one Transaction.
type Transaction struct {
	Kind      TransactionKind `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
	Detail    string          `json:"detail"`
	Reference string          `json:"reference,omitempty"` // related account or investment
}

// NewTransaction builds a Transaction stamped with now.
func NewTransaction(kind TransactionKind, amount decimal.Decimal, detail, reference string, now time.Time) Transaction {
	return Transaction{
		Kind:      kind,
		Amount:    amount,
		Timestamp: now,
		Detail:    detail,
		Reference: reference,
	}
}
