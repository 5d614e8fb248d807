package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/investment_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres repositories. operationTimeout bounds
// every individual store call.
func NewRepositoryProvider(dbPool *pgxpool.Pool, operationTimeout time.Duration) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool, Timeout: operationTimeout}
	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(base),
		PlanRepo:    newPgxPlanRepository(base),
	}
}
