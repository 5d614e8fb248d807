package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/investment_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/investment_ledger_app/internal/models"
	"github.com/SscSPs/investment_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxPlanRepository struct {
	BaseRepository
}

func newPgxPlanRepository(base BaseRepository) portsrepo.PlanRepositoryFacade {
	return &PgxPlanRepository{BaseRepository: base}
}

// Ensure implementation matches interface
var _ portsrepo.PlanRepositoryFacade = (*PgxPlanRepository)(nil)

// FindPlanByName retrieves a plan by its name.
func (r *PgxPlanRepository) FindPlanByName(ctx context.Context, name string) (*domain.Plan, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT name, daily_profit_percent, created_at, last_updated_at
		FROM plans
		WHERE name = $1;
	`
	var m models.Plan
	err := r.Pool.QueryRow(ctx, query, name).Scan(&m.Name, &m.DailyProfitPercent, &m.CreatedAt, &m.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: plan %s", apperrors.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to find plan %s: %w", name, classify(err))
	}
	plan := mapping.ToDomainPlan(m)
	return &plan, nil
}

// ListPlans retrieves all plans ordered by name.
func (r *PgxPlanRepository) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT name, daily_profit_percent, created_at, last_updated_at
		FROM plans
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", classify(err))
	}
	defer rows.Close()

	modelPlans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Plan, error) {
		var p models.Plan
		err := row.Scan(&p.Name, &p.DailyProfitPercent, &p.CreatedAt, &p.LastUpdatedAt)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan plans: %w", classify(err))
	}
	return mapping.ToDomainPlanSlice(modelPlans), nil
}

// UpsertPlan inserts a plan or updates the rate of an existing one.
func (r *PgxPlanRepository) UpsertPlan(ctx context.Context, plan domain.Plan) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelPlan(plan)
	query := `
		INSERT INTO plans (name, daily_profit_percent, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET
			daily_profit_percent = EXCLUDED.daily_profit_percent,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	if _, err := r.Pool.Exec(ctx, query, m.Name, m.DailyProfitPercent, m.CreatedAt, m.LastUpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert plan %s: %w", m.Name, classify(err))
	}
	return nil
}

// InsertPlanIfMissing inserts plan unless a plan with the same name exists.
func (r *PgxPlanRepository) InsertPlanIfMissing(ctx context.Context, plan domain.Plan) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelPlan(plan)
	query := `
		INSERT INTO plans (name, daily_profit_percent, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Name, m.DailyProfitPercent, m.CreatedAt, m.LastUpdatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to seed plan %s: %w", m.Name, classify(err))
	}
	return tag.RowsAffected() == 1, nil
}
