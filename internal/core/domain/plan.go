package domain

import (
	"github.com/shopspring/decimal"
)

// Plan is a named investment product with a daily profit rate.
type Plan struct {
	Name               string          `json:"name"`
	DailyProfitPercent decimal.Decimal `json:"dailyProfitPercent"`
	AuditFields
}

// DefaultPlans is the built-in rate table used to seed an empty catalog.
func DefaultPlans() []Plan {
	rates := []struct {
		name    string
		percent string
	}{
		{"1 year", "0.50"},
		{"2 year", "1.00"},
		{"3 year", "2.00"},
		{"flat 3 year", "2.50"},
		{"flat 4 year", "3.50"},
		{"flat 5 year", "4.50"},
		{"home 3 year", "2.50"},
		{"home 4 year", "3.50"},
		{"home 5 year", "4.50"},
		{"land 3 year", "2.50"},
		{"land 4 year", "3.50"},
		{"land 5 year", "4.50"},
	}
	plans := make([]Plan, 0, len(rates))
	for _, r := range rates {
		plans = append(plans, Plan{Name: r.name, DailyProfitPercent: decimal.RequireFromString(r.percent)})
	}
	return plans
}

// PlanRates indexes plans by name.
func PlanRates(plans []Plan) map[string]decimal.Decimal {
	rates := make(map[string]decimal.Decimal, len(plans))
	for _, p := range plans {
		rates[p.Name] = p.DailyProfitPercent
	}
	return rates
}
