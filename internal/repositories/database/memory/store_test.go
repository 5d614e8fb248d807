package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/investment_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/investment_ledger_app/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(id, nationalID, code string, created time.Time) domain.Account {
	return domain.Account{
		AccountID:         id,
		NationalID:        nationalID,
		ReferralCode:      code,
		ReferralStatus:    domain.ReferralNone,
		WithdrawalRequest: domain.WithdrawalRequest{Status: domain.WithdrawalNone},
		AuditFields:       domain.AuditFields{CreatedAt: created, LastUpdatedAt: created},
	}
}

func TestStore_CreateAccountUniqueness(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now()

	require.NoError(t, store.CreateAccount(ctx, newAccount("a1", "111", "RAVI1234", now)))

	err := store.CreateAccount(ctx, newAccount("a2", "111", "ASHA1111", now))
	assert.ErrorIs(t, err, portsrepo.ErrNationalIDTaken)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	err = store.CreateAccount(ctx, newAccount("a3", "222", "RAVI1234", now))
	assert.ErrorIs(t, err, portsrepo.ErrReferralCodeTaken)

	exists, err := store.ReferralCodeExists(ctx, "RAVI1234")
	require.NoError(t, err)
	assert.True(t, exists)

	acc, err := store.FindAccount(ctx, domain.ByNationalID("111"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), acc.Version)

	_, err = store.FindAccount(ctx, domain.ByAccountID("missing"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_UpdateAccountAbortsOnMutationError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.CreateAccount(ctx, newAccount("a1", "111", "RAVI1234", time.Now())))

	boom := errors.New("boom")
	_, err := store.UpdateAccount(ctx, domain.ByAccountID("a1"), func(a *domain.Account) error {
		a.Balance = decimal.NewFromInt(999)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	acc, err := store.FindAccount(ctx, domain.ByAccountID("a1"))
	require.NoError(t, err)
	assert.True(t, acc.Balance.IsZero())
	assert.Equal(t, int64(1), acc.Version)
}

func TestStore_UpdateAccountRejectsNegativeBalance(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.CreateAccount(ctx, newAccount("a1", "111", "RAVI1234", time.Now())))

	_, err := store.UpdateAccount(ctx, domain.ByAccountID("a1"), func(a *domain.Account) error {
		a.Balance = decimal.NewFromInt(-1)
		return nil
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestStore_UpdateAccountSerializesWriters(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.CreateAccount(ctx, newAccount("a1", "111", "RAVI1234", time.Now())))

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)
	for range writers {
		go func() {
			defer wg.Done()
			_, err := store.UpdateAccount(ctx, domain.ByNationalID("111"), func(a *domain.Account) error {
				a.Balance = a.Balance.Add(decimal.NewFromInt(1))
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	acc, err := store.FindAccount(ctx, domain.ByAccountID("a1"))
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(writers)))
	assert.Equal(t, int64(writers+1), acc.Version)
}

func TestStore_ReturnedAccountsAreCopies(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	acc := newAccount("a1", "111", "RAVI1234", time.Now())
	acc.ReferredBy = []string{"ASHA1111"}
	require.NoError(t, store.CreateAccount(ctx, acc))

	got, err := store.FindAccount(ctx, domain.ByAccountID("a1"))
	require.NoError(t, err)
	got.ReferredBy[0] = "CHANGED"

	again, err := store.FindAccount(ctx, domain.ByAccountID("a1"))
	require.NoError(t, err)
	assert.Equal(t, "ASHA1111", again.ReferredBy[0])
}

func TestStore_ListAccountsFilters(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	older := newAccount("a1", "111", "A1000", base)
	older.Investments = []domain.Investment{domain.NewInvestment("1 year", decimal.NewFromInt(100), "f", "b", base)}
	older.Investments[0].Status = domain.InvestmentEarning

	newer := newAccount("a2", "222", "B1000", base.Add(time.Hour))
	newer.Investments = []domain.Investment{domain.NewInvestment("2 year", decimal.NewFromInt(100), "f", "b", base.Add(time.Hour))}
	newer.ReferralStatus = domain.ReferralPending

	require.NoError(t, store.CreateAccount(ctx, older))
	require.NoError(t, store.CreateAccount(ctx, newer))

	all, err := store.ListAccounts(ctx, portsrepo.AccountFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a2", all[0].AccountID, "newest first")

	earning, err := store.ListAccounts(ctx, portsrepo.AccountFilter{InvestmentStatus: domain.InvestmentEarning})
	require.NoError(t, err)
	require.Len(t, earning, 1)
	assert.Equal(t, "a1", earning[0].AccountID)

	byPlan, err := store.ListAccounts(ctx, portsrepo.AccountFilter{Plan: "2 year"})
	require.NoError(t, err)
	require.Len(t, byPlan, 1)
	assert.Equal(t, "a2", byPlan[0].AccountID)

	since := base.Add(30 * time.Minute)
	recent, err := store.ListAccounts(ctx, portsrepo.AccountFilter{InvestedSince: &since})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "a2", recent[0].AccountID)

	pending, err := store.ListAccounts(ctx, portsrepo.AccountFilter{ReferralStatus: domain.ReferralPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)

	withdrawals, err := store.ListAccounts(ctx, portsrepo.AccountFilter{HasWithdrawal: true})
	require.NoError(t, err)
	assert.Empty(t, withdrawals)
}

func TestStore_Plans(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	created, err := store.InsertPlanIfMissing(ctx, domain.Plan{Name: "1 year", DailyProfitPercent: decimal.RequireFromString("0.5")})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.InsertPlanIfMissing(ctx, domain.Plan{Name: "1 year", DailyProfitPercent: decimal.RequireFromString("9")})
	require.NoError(t, err)
	assert.False(t, created)

	p, err := store.FindPlanByName(ctx, "1 year")
	require.NoError(t, err)
	assert.True(t, p.DailyProfitPercent.Equal(decimal.RequireFromString("0.5")))

	require.NoError(t, store.UpsertPlan(ctx, domain.Plan{Name: "1 year", DailyProfitPercent: decimal.RequireFromString("0.75")}))
	p, err = store.FindPlanByName(ctx, "1 year")
	require.NoError(t, err)
	assert.True(t, p.DailyProfitPercent.Equal(decimal.RequireFromString("0.75")))

	_, err = store.FindPlanByName(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
