package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/investment_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/investment_ledger_app/internal/models"
	"github.com/SscSPs/investment_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `account_id, national_id, name, email, phone, referral_code, referred_by,
	referral_status, balance, investments, transactions, withdrawal_request, version,
	created_at, last_updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(base BaseRepository) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: base}
}

// Ensure implementation matches interface
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.NationalID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.ReferralCode,
		&m.ReferredBy,
		&m.ReferralStatus,
		&m.Balance,
		&m.Investments,
		&m.Transactions,
		&m.WithdrawalRequest,
		&m.Version,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func refPredicate(ref domain.AccountRef) (string, string) {
	if ref.AccountID != "" {
		return "account_id = $1", ref.AccountID
	}
	return "national_id = $1", ref.NationalID
}

// CreateAccount inserts a new account row.
func (r *PgxAccountRepository) CreateAccount(ctx context.Context, account domain.Account) error {
	if err := account.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelAccount(account)
	m.Version = 1
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.NationalID,
		m.Name,
		m.Email,
		m.Phone,
		m.ReferralCode,
		m.ReferredBy,
		m.ReferralStatus,
		m.Balance,
		m.Investments,
		m.Transactions,
		m.WithdrawalRequest,
		m.Version,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		if pgErr, ok := isUniqueViolation(err); ok {
			switch pgErr.ConstraintName {
			case "accounts_national_id_key":
				return portsrepo.ErrNationalIDTaken
			case "accounts_referral_code_key":
				return portsrepo.ErrReferralCodeTaken
			}
			return fmt.Errorf("%w: account %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to create account %s: %w", m.AccountID, classify(err))
	}
	return nil
}

// FindAccount retrieves an account by ID or national ID.
func (r *PgxAccountRepository) FindAccount(ctx context.Context, ref domain.AccountRef) (*domain.Account, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	predicate, arg := refPredicate(ref)
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + predicate + `;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, ref)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", ref, classify(err))
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountByReferralCode retrieves the account owning code.
func (r *PgxAccountRepository) FindAccountByReferralCode(ctx context.Context, code string) (*domain.Account, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE referral_code = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: referral code %s", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to find account by referral code %s: %w", code, classify(err))
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// ReferralCodeExists reports whether code is already assigned.
func (r *PgxAccountRepository) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE referral_code = $1);`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check referral code %s: %w", code, classify(err))
	}
	return exists, nil
}

// buildAccountFilter renders the WHERE clause for filter. Investment conditions
// use jsonb containment against the investments document.
func buildAccountFilter(filter portsrepo.AccountFilter) (string, []any) {
	var conds []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	match := map[string]string{}
	if filter.InvestmentStatus != "" {
		match["status"] = string(filter.InvestmentStatus)
	}
	if filter.Plan != "" {
		match["plan"] = filter.Plan
	}
	if len(match) > 0 {
		conds = append(conds, "investments @> "+next([]map[string]string{match})+"::jsonb")
	}
	if filter.InvestedSince != nil {
		conds = append(conds, "EXISTS (SELECT 1 FROM jsonb_array_elements(investments) AS inv WHERE (inv->>'createdAt')::timestamptz >= "+next(*filter.InvestedSince)+")")
	}
	if filter.ReferralStatus != "" {
		conds = append(conds, "referral_status = "+next(string(filter.ReferralStatus)))
	}
	if filter.HasWithdrawal {
		conds = append(conds, "COALESCE(withdrawal_request->>'status', 'None') <> 'None'")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListAccounts returns accounts matching filter, newest first.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	where, args := buildAccountFilter(filter)
	query := `SELECT ` + accountColumns + ` FROM accounts` + where + ` ORDER BY created_at DESC, account_id;`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", classify(err))
	}
	defer rows.Close()

	modelAccounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Account, error) {
		return scanAccount(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", classify(err))
	}
	return mapping.ToDomainAccountSlice(modelAccounts), nil
}

// UpdateAccount locks the row with SELECT ... FOR UPDATE, applies mutate and writes
// the result back guarded by the version it read.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, ref domain.AccountRef, mutate portsrepo.AccountMutation) (*domain.Account, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	predicate, arg := refPredicate(ref)
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + predicate + ` FOR UPDATE;`
	m, err := scanAccount(tx.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, ref)
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", ref, classify(err))
	}

	current := mapping.ToDomainAccount(m)
	working := current.Clone()
	if err := mutate(&working); err != nil {
		return nil, err
	}
	if err := working.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if working.AccountID != current.AccountID || working.NationalID != current.NationalID || working.ReferralCode != current.ReferralCode {
		return nil, fmt.Errorf("%w: identity fields are immutable", apperrors.ErrValidation)
	}

	working.Version = current.Version + 1
	working.LastUpdatedAt = time.Now().UTC()
	out := mapping.ToModelAccount(working)

	update := `
		UPDATE accounts SET
			name = $3,
			email = $4,
			phone = $5,
			referred_by = $6,
			referral_status = $7,
			balance = $8,
			investments = $9,
			transactions = $10,
			withdrawal_request = $11,
			version = $12,
			last_updated_at = $13
		WHERE account_id = $1 AND version = $2;
	`
	tag, err := tx.Exec(ctx, update,
		out.AccountID,
		current.Version,
		out.Name,
		out.Email,
		out.Phone,
		out.ReferredBy,
		out.ReferralStatus,
		out.Balance,
		out.Investments,
		out.Transactions,
		out.WithdrawalRequest,
		out.Version,
		out.LastUpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update account %s: %w", out.AccountID, classify(err))
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: account %s changed concurrently", apperrors.ErrPersistence, out.AccountID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &working, nil
}
