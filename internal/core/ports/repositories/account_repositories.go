package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
)

// ErrNationalIDTaken is returned by CreateAccount when the national ID is already registered.
var ErrNationalIDTaken = fmt.Errorf("%w: national ID already registered", apperrors.ErrDuplicate)

// ErrReferralCodeTaken is returned by CreateAccount when the referral code is already in use.
var ErrReferralCodeTaken = fmt.Errorf("%w: referral code already in use", apperrors.ErrDuplicate)

// AccountMutation mutates an account loaded under exclusive access. Returning an
// error aborts the write and leaves the stored account untouched.
type AccountMutation func(account *domain.Account) error

// AccountFilter narrows ListAccounts. Zero-valued fields do not filter.
type AccountFilter struct {
	InvestmentStatus domain.InvestmentStatus
	Plan             string
	ReferralStatus   domain.ReferralStatus
	InvestedSince    *time.Time
	HasWithdrawal    bool
}

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccount resolves an account by ID or national ID.
	FindAccount(ctx context.Context, ref domain.AccountRef) (*domain.Account, error)

	// FindAccountByReferralCode resolves the account owning the given referral code.
	FindAccountByReferralCode(ctx context.Context, code string) (*domain.Account, error)

	// ReferralCodeExists reports whether any account already uses code.
	ReferralCodeExists(ctx context.Context, code string) (bool, error)

	// ListAccounts returns accounts matching the filter, newest first. Matching is a
	// coarse pre-filter; callers re-check investment-level conditions.
	ListAccounts(ctx context.Context, filter AccountFilter) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// CreateAccount persists a new account. Returns ErrNationalIDTaken or
	// ErrReferralCodeTaken on unique violations.
	CreateAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount loads the account under per-account exclusivity, applies mutate and
	// persists the result as one atomic write with a version bump. Lost-update races
	// surface as apperrors.ErrPersistence.
	UpdateAccount(ctx context.Context, ref domain.AccountRef, mutate AccountMutation) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
