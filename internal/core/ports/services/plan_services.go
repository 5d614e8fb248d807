package services

import (
	"context"

	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	"github.com/SscSPs/investment_ledger_app/internal/dto"
)

// PlanSvcFacade manages the plan catalog.
type PlanSvcFacade interface {
	StaticDataService
	ListPlans(ctx context.Context) ([]domain.Plan, error)
	UpsertPlan(ctx context.Context, req dto.UpsertPlanRequest) (*domain.Plan, error)
}
