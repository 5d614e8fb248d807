package models

import "github.com/shopspring/decimal"

// Plan is one row of the plans table.
type Plan struct {
	Name               string          `db:"name"`
	DailyProfitPercent decimal.Decimal `db:"daily_profit_percent"`
	AuditFields
}
