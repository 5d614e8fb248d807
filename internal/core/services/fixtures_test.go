package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/investment_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/investment_ledger_app/internal/core/services"
	"github.com/SscSPs/investment_ledger_app/internal/dto"
	"github.com/SscSPs/investment_ledger_app/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPaymentSecret = "test-gateway-secret"

// testClock is a settable time source.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock(t time.Time) *testClock { return &testClock{t: t} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newSeededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	plans := services.NewPlanService(store)
	require.NoError(t, plans.InitializeStaticData(context.Background()))
	return store
}

// signedSubmission builds a valid submission carrying a correctly signed payment.
func signedSubmission(nationalID, name, plan string, amount int64, referral string) dto.SubmitInvestmentRequest {
	orderID := "order_" + nationalID
	paymentID := "pay_" + nationalID
	return dto.SubmitInvestmentRequest{
		NationalID:    nationalID,
		Name:          name,
		Email:         "someone@example.com",
		Phone:         "9000000000",
		Plan:          plan,
		Amount:        decimal.NewFromInt(amount),
		FrontProofRef: "https://storage.example/front.png",
		BackProofRef:  "https://storage.example/back.png",
		ReferralCode:  referral,
		Payment: &dto.PaymentConfirmation{
			OrderID:   orderID,
			PaymentID: paymentID,
			Signature: services.SignPayment(orderID, paymentID, testPaymentSecret),
		},
	}
}

func countTransactions(acc *domain.Account, kind domain.TransactionKind) int {
	n := 0
	for _, txn := range acc.Transactions {
		if txn.Kind == kind {
			n++
		}
	}
	return n
}

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccount(ctx context.Context, ref domain.AccountRef) (*domain.Account, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByReferralCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// UpdateAccount applies mutate to the configured account in place, so the mutation's
// own error is returned just as a real store would.
func (m *MockAccountRepository) UpdateAccount(ctx context.Context, ref domain.AccountRef, mutate portsrepo.AccountMutation) (*domain.Account, error) {
	args := m.Called(ctx, ref, mutate)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	acc, _ := args.Get(0).(*domain.Account)
	if acc == nil {
		return nil, apperrors.ErrNotFound
	}
	if err := mutate(acc); err != nil {
		return nil, err
	}
	return acc, nil
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)
