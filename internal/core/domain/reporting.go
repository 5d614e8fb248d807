package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountSummary is the identifying part of an account shown in admin listings.
type AccountSummary struct {
	AccountID    string  `json:"accountID"`
	NationalID   string  `json:"nationalID"`
	Profile      Profile `json:"profile"`
	ReferralCode string  `json:"referralCode"`
}

// Summary returns the identifying fields of the account.
func (a Account) Summary() AccountSummary {
	return AccountSummary{
		AccountID:    a.AccountID,
		NationalID:   a.NationalID,
		Profile:      a.Profile,
		ReferralCode: a.ReferralCode,
	}
}

// IndexedInvestment pairs an investment with its position in the account's list,
// which is the handle used by admin overrides.
type IndexedInvestment struct {
	Index int `json:"index"`
	Investment
}

// AccountInvestments groups the selected investments of one account.
type AccountInvestments struct {
	AccountSummary
	Investments []IndexedInvestment `json:"investments"`
}

// WithdrawalView is one row in the admin withdrawal listing.
type WithdrawalView struct {
	AccountSummary
	WithdrawalRequest
}

// AccrualReport summarizes one run of the daily accrual job.
type AccrualReport struct {
	StartedAt           time.Time       `json:"startedAt"`
	FinishedAt          time.Time       `json:"finishedAt"`
	AccountsScanned     int             `json:"accountsScanned"`
	AccountsUpdated     int             `json:"accountsUpdated"`
	AccountsFailed      int             `json:"accountsFailed"`
	InvestmentsCredited int             `json:"investmentsCredited"`
	InvestmentsSkipped  int             `json:"investmentsSkipped"`
	TotalCredited       decimal.Decimal `json:"totalCredited"`
}
