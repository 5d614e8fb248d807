// Package memory is an in-process ledger store used when no database is
// configured and in tests. It honors the same per-account exclusivity contract as
// the Postgres store.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/investment_ledger_app/internal/core/ports/repositories"
)

// Store keeps accounts and plans in maps guarded by a store-wide RWMutex, plus one
// mutex per account that serializes UpdateAccount calls on that account.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]domain.Account
	byNationalID map[string]string
	byCode       map[string]string
	plans        map[string]domain.Plan

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]domain.Account),
		byNationalID: make(map[string]string),
		byCode:       make(map[string]string),
		plans:        make(map[string]domain.Plan),
		locks:        make(map[string]*sync.Mutex),
	}
}

var (
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.PlanRepositoryFacade    = (*Store)(nil)
)

// NewRepositoryProvider exposes the store through the repository ports.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: store,
		PlanRepo:    store,
	}
}

func (s *Store) resolveID(ref domain.AccountRef) (string, bool) {
	if ref.AccountID != "" {
		_, ok := s.accounts[ref.AccountID]
		return ref.AccountID, ok
	}
	id, ok := s.byNationalID[ref.NationalID]
	return id, ok
}

func (s *Store) accountLock(id string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func (s *Store) FindAccount(ctx context.Context, ref domain.AccountRef) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.resolveID(ref)
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, ref)
	}
	acc := s.accounts[id].Clone()
	return &acc, nil
}

func (s *Store) FindAccountByReferralCode(ctx context.Context, code string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byCode[code]
	if !ok {
		return nil, fmt.Errorf("%w: referral code %s", apperrors.ErrNotFound, code)
	}
	acc := s.accounts[id].Clone()
	return &acc, nil
}

func (s *Store) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byCode[code]
	return ok, nil
}

func (s *Store) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		if matches(acc, filter) {
			out = append(out, acc.Clone())
		}
	}
	slices.SortFunc(out, func(a, b domain.Account) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.AccountID, b.AccountID)
	})
	return out, nil
}

func matches(acc domain.Account, f portsrepo.AccountFilter) bool {
	if f.ReferralStatus != "" && acc.ReferralStatus != f.ReferralStatus {
		return false
	}
	if f.HasWithdrawal && acc.WithdrawalRequest.IsEmpty() {
		return false
	}
	if f.InvestmentStatus == "" && f.Plan == "" && f.InvestedSince == nil {
		return true
	}
	for _, inv := range acc.Investments {
		if f.InvestmentStatus != "" && inv.Status != f.InvestmentStatus {
			continue
		}
		if f.Plan != "" && inv.Plan != f.Plan {
			continue
		}
		if f.InvestedSince != nil && inv.CreatedAt.Before(*f.InvestedSince) {
			continue
		}
		return true
	}
	return false
}

func (s *Store) CreateAccount(ctx context.Context, account domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := account.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byNationalID[account.NationalID]; ok {
		return portsrepo.ErrNationalIDTaken
	}
	if _, ok := s.byCode[account.ReferralCode]; ok {
		return portsrepo.ErrReferralCodeTaken
	}
	if _, ok := s.accounts[account.AccountID]; ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
	}
	stored := account.Clone()
	stored.Version = 1
	s.accounts[stored.AccountID] = stored
	s.byNationalID[stored.NationalID] = stored.AccountID
	s.byCode[stored.ReferralCode] = stored.AccountID
	return nil
}

// UpdateAccount runs mutate on a private copy while holding the account's mutex
// and publishes the copy with a bumped version.
func (s *Store) UpdateAccount(ctx context.Context, ref domain.AccountRef, mutate portsrepo.AccountMutation) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	id, ok := s.resolveID(ref)
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, ref)
	}

	lock := s.accountLock(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	current, ok := s.accounts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, ref)
	}

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

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.accounts[id].Version != current.Version {
		return nil, fmt.Errorf("%w: account %s changed concurrently", apperrors.ErrPersistence, id)
	}
	working.Version = current.Version + 1
	working.LastUpdatedAt = time.Now()
	s.accounts[id] = working.Clone()
	return &working, nil
}

func (s *Store) FindPlanByName(ctx context.Context, name string) (*domain.Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plans[name]
	if !ok {
		return nil, fmt.Errorf("%w: plan %s", apperrors.ErrNotFound, name)
	}
	return &p, nil
}

func (s *Store) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Plan, 0, len(s.plans))
	for _, p := range s.plans {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b domain.Plan) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (s *Store) UpsertPlan(ctx context.Context, plan domain.Plan) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.plans[plan.Name]; ok {
		plan.CreatedAt = existing.CreatedAt
	}
	s.plans[plan.Name] = plan
	return nil
}

func (s *Store) InsertPlanIfMissing(ctx context.Context, plan domain.Plan) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[plan.Name]; ok {
		return false, nil
	}
	s.plans[plan.Name] = plan
	return true, nil
}
