package repositories

import (
	"context"

	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
)

// PlanReader defines read operations for the plan catalog
type PlanReader interface {
	// FindPlanByName retrieves a plan by its unique name.
	FindPlanByName(ctx context.Context, name string) (*domain.Plan, error)

	// ListPlans retrieves the whole catalog ordered by name.
	ListPlans(ctx context.Context) ([]domain.Plan, error)
}

// PlanWriter defines write operations for the plan catalog
type PlanWriter interface {
	// UpsertPlan creates the plan or replaces its daily rate.
	UpsertPlan(ctx context.Context, plan domain.Plan) error

	// InsertPlanIfMissing creates the plan only when no plan with that name exists.
	// It reports whether a row was inserted.
	InsertPlanIfMissing(ctx context.Context, plan domain.Plan) (bool, error)
}

// PlanRepositoryFacade combines all plan-related repository interfaces
type PlanRepositoryFacade interface {
	PlanReader
	PlanWriter
}
