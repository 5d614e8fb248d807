package dto

import "github.com/shopspring/decimal"

// UpsertPlanRequest creates a plan or changes its daily rate.
type UpsertPlanRequest struct {
	Name               string          `json:"name" binding:"required" validate:"required,max=64"`
	DailyProfitPercent decimal.Decimal `json:"dailyProfitPercent"`
}
