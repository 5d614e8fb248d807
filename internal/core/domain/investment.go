package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentStatus is the admin-settable lifecycle state of an investment.
type InvestmentStatus string

const (
	InvestmentPending   InvestmentStatus = "Pending"
	InvestmentEarning   InvestmentStatus = "Earning"
	InvestmentLocked    InvestmentStatus = "Locked"
	InvestmentCompleted InvestmentStatus = "Completed"
	InvestmentRejected  InvestmentStatus = "Rejected"
)

var investmentStatuses = []InvestmentStatus{
	InvestmentPending,
	InvestmentEarning,
	InvestmentLocked,
	InvestmentCompleted,
	InvestmentRejected,
}

// ParseInvestmentStatus maps a free-form status string onto the closed enum.
func ParseInvestmentStatus(s string) (InvestmentStatus, error) {
	for _, st := range investmentStatuses {
		if normalizeToken(string(st)) == normalizeToken(s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown investment status %q", s)
}

// Investment is one term-deposit-like commitment to a Plan.
type Investment struct {
	Plan          string           `json:"plan"`
	Principal     decimal.Decimal  `json:"principal"`
	FrontProofRef string           `json:"frontProofRef"`
	BackProofRef  string           `json:"backProofRef"`
	CreatedAt     time.Time        `json:"createdAt"`
	Status        InvestmentStatus `json:"status"`
	Profit        decimal.Decimal  `json:"profit"`
	LastAccruedAt *time.Time       `json:"lastAccruedAt,omitempty"`
	Locked        bool             `json:"locked"`
}

// NewInvestment returns a Pending, locked investment with zero profit.
func NewInvestment(plan string, principal decimal.Decimal, frontRef, backRef string, now time.Time) Investment {
	return Investment{
		Plan:          plan,
		Principal:     principal,
		FrontProofRef: frontRef,
		BackProofRef:  backRef,
		CreatedAt:     now,
		Status:        InvestmentPending,
		Profit:        decimal.Zero,
		Locked:        true,
	}
}

// Validate checks the investment invariants.
func (i Investment) Validate() error {
	if i.Plan == "" {
		return fmt.Errorf("plan is required")
	}
	if !i.Principal.IsPositive() {
		return fmt.Errorf("principal must be positive, got %s", i.Principal.String())
	}
	if i.Profit.IsNegative() {
		return fmt.Errorf("profit must not be negative, got %s", i.Profit.String())
	}
	return nil
}

// AccruedOn reports whether profit was already credited on the calendar day of t,
// evaluated in loc.
func (i Investment) AccruedOn(t time.Time, loc *time.Location) bool {
	if i.LastAccruedAt == nil {
		return false
	}
	return SameCalendarDay(*i.LastAccruedAt, t, loc)
}

// DailyProfit computes principal * percent / 100.
func (i Investment) DailyProfit(percent decimal.Decimal) decimal.Decimal {
	return i.Principal.Mul(percent).Div(decimal.NewFromInt(100))
}

func (i Investment) clone() Investment {
	c := i
	if i.LastAccruedAt != nil {
		t := *i.LastAccruedAt
		c.LastAccruedAt = &t
	}
	return c
}

// SameCalendarDay reports whether a and b fall on the same date in loc.
func SameCalendarDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
