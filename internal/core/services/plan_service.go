package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/investment_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/investment_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/investment_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

var maxDailyProfitPercent = decimal.NewFromInt(100)

type planService struct {
	BaseService
	planRepo portsrepo.PlanRepositoryFacade
	defaults []domain.Plan
}

// NewPlanService creates the plan catalog service. InitializeStaticData seeds the
// given defaults, or domain.DefaultPlans when none are passed.
func NewPlanService(planRepo portsrepo.PlanRepositoryFacade, defaults ...domain.Plan) portssvc.PlanSvcFacade {
	if len(defaults) == 0 {
		defaults = domain.DefaultPlans()
	}
	return &planService{BaseService: newBaseService(), planRepo: planRepo, defaults: defaults}
}

var _ portssvc.PlanSvcFacade = (*planService)(nil)

// InitializeStaticData inserts every default plan that is missing. Existing rates
// are never overwritten.
func (s *planService) InitializeStaticData(ctx context.Context) error {
	now := s.now()
	inserted := 0
	for _, p := range s.defaults {
		p.CreatedAt, p.LastUpdatedAt = now, now
		created, err := s.planRepo.InsertPlanIfMissing(ctx, p)
		if err != nil {
			s.LogError(ctx, err, "Failed to seed plan", slog.String("plan", p.Name))
			return fmt.Errorf("failed to seed plan %q: %w", p.Name, err)
		}
		if created {
			inserted++
		}
	}
	s.LogInfo(ctx, "Plan catalog initialized", slog.Int("inserted", inserted), slog.Int("defaults", len(s.defaults)))
	return nil
}

func (s *planService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	plans, err := s.planRepo.ListPlans(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list plans")
		return nil, err
	}
	return plans, nil
}

func (s *planService) UpsertPlan(ctx context.Context, req dto.UpsertPlanRequest) (*domain.Plan, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: plan name is required", apperrors.ErrValidation)
	}
	if req.DailyProfitPercent.IsNegative() || req.DailyProfitPercent.GreaterThan(maxDailyProfitPercent) {
		return nil, fmt.Errorf("%w: daily profit percent must be between 0 and 100", apperrors.ErrValidation)
	}

	now := s.now()
	plan := domain.Plan{
		Name:               name,
		DailyProfitPercent: req.DailyProfitPercent,
		AuditFields:        domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.planRepo.UpsertPlan(ctx, plan); err != nil {
		s.LogError(ctx, err, "Failed to upsert plan", slog.String("plan", name))
		return nil, err
	}
	s.LogInfo(ctx, "Plan rate updated", slog.String("plan", name), slog.String("daily_profit_percent", req.DailyProfitPercent.String()))
	return &plan, nil
}
