package mapping

import (
	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	"github.com/SscSPs/investment_ledger_app/internal/models"
)

// ToModelPlan converts a domain Plan to a model Plan
func ToModelPlan(d domain.Plan) models.Plan {
	return models.Plan{
		Name:               d.Name,
		DailyProfitPercent: d.DailyProfitPercent,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPlan converts a model Plan to a domain Plan
func ToDomainPlan(m models.Plan) domain.Plan {
	return domain.Plan{
		Name:               m.Name,
		DailyProfitPercent: m.DailyProfitPercent,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPlanSlice converts a slice of model Plans to a slice of domain Plans
func ToDomainPlanSlice(ms []models.Plan) []domain.Plan {
	ds := make([]domain.Plan, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPlan(m)
	}
	return ds
}
