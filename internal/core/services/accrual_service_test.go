package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/investment_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/investment_ledger_app/internal/core/services"
	"github.com/SscSPs/investment_ledger_app/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccrualServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	plans    *memory.Store
	clock    *testClock
}

func (suite *AccrualServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.plans = newSeededStore(suite.T())
	suite.clock = newTestClock(time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC))
}

func (suite *AccrualServiceTestSuite) earningAccount(id string, plans ...string) domain.Account {
	acc := domain.Account{AccountID: id, NationalID: "nid-" + id, ReferralCode: "CODE" + id}
	for _, p := range plans {
		inv := domain.NewInvestment(p, decimal.NewFromInt(1000), "f", "b", suite.clock.Now().Add(-48*time.Hour))
		inv.Status = domain.InvestmentEarning
		acc.Investments = append(acc.Investments, inv)
	}
	return acc
}

func (suite *AccrualServiceTestSuite) TestRunDailyAccrual_FailingAccountDoesNotStopRun() {
	bad := suite.earningAccount("bad", "1 year")
	good := suite.earningAccount("good", "2 year")

	suite.mockRepo.On("ListAccounts", mock.Anything, portsrepo.AccountFilter{InvestmentStatus: domain.InvestmentEarning}).
		Return([]domain.Account{bad, good}, nil).Once()
	suite.mockRepo.On("UpdateAccount", mock.Anything, domain.ByAccountID("bad"), mock.Anything).
		Return(nil, errors.New("disk full")).Once()
	suite.mockRepo.On("UpdateAccount", mock.Anything, domain.ByAccountID("good"), mock.Anything).
		Return(&good, nil).Once()

	svc := services.NewAccrualService(suite.mockRepo, suite.plans, services.WithAccrualClock(suite.clock.Now))
	report, err := svc.RunDailyAccrual(context.Background())

	suite.NoError(err)
	suite.Equal(2, report.AccountsScanned)
	suite.Equal(1, report.AccountsFailed)
	suite.Equal(1, report.AccountsUpdated)
	suite.True(report.TotalCredited.Equal(decimal.NewFromInt(10)), report.TotalCredited.String())
	suite.True(good.Investments[0].Profit.Equal(decimal.NewFromInt(10)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccrualServiceTestSuite) TestRunDailyAccrual_RetriesLostRace() {
	acc := suite.earningAccount("a1", "1 year")
	suite.mockRepo.On("ListAccounts", mock.Anything, mock.Anything).Return([]domain.Account{acc}, nil).Once()
	suite.mockRepo.On("UpdateAccount", mock.Anything, domain.ByAccountID("a1"), mock.Anything).
		Return(nil, fmt.Errorf("%w: version moved", apperrors.ErrPersistence)).Once()
	suite.mockRepo.On("UpdateAccount", mock.Anything, domain.ByAccountID("a1"), mock.Anything).
		Return(&acc, nil).Once()

	svc := services.NewAccrualService(suite.mockRepo, suite.plans,
		services.WithAccrualClock(suite.clock.Now),
		services.WithAccrualRetry(services.RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}))
	report, err := svc.RunDailyAccrual(context.Background())

	suite.NoError(err)
	suite.Equal(1, report.AccountsUpdated)
	suite.Equal(0, report.AccountsFailed)
	suite.True(acc.Investments[0].Profit.Equal(decimal.NewFromInt(5)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccrualServiceTestSuite) TestRunDailyAccrual_SkipsUnknownPlanAndNonEarning() {
	acc := suite.earningAccount("a1", "retired plan", "1 year")
	acc.Investments[1].Status = domain.InvestmentLocked

	suite.mockRepo.On("ListAccounts", mock.Anything, mock.Anything).Return([]domain.Account{acc}, nil).Once()
	suite.mockRepo.On("UpdateAccount", mock.Anything, domain.ByAccountID("a1"), mock.Anything).
		Return(&acc, nil).Once()

	svc := services.NewAccrualService(suite.mockRepo, suite.plans, services.WithAccrualClock(suite.clock.Now))
	report, err := svc.RunDailyAccrual(context.Background())

	suite.NoError(err)
	suite.Equal(0, report.AccountsUpdated, "a write with nothing credited is aborted")
	suite.Equal(0, report.AccountsFailed)
	suite.Equal(1, report.InvestmentsSkipped)
	suite.True(acc.Investments[0].Profit.IsZero())
	suite.True(acc.Investments[1].Profit.IsZero())
}

func (suite *AccrualServiceTestSuite) TestRunDailyAccrual_CalendarDayInConfiguredZone() {
	loc, err := time.LoadLocation("Asia/Kolkata")
	suite.Require().NoError(err)
	store := newSeededStore(suite.T())
	ctx := context.Background()

	acc := suite.earningAccount("a1", "1 year")
	acc.WithdrawalRequest.Status = domain.WithdrawalNone
	suite.Require().NoError(store.CreateAccount(ctx, acc))

	// 23:00 IST on 1 April, then 00:30 IST on 2 April: two calendar days, 90 minutes apart.
	clock := newTestClock(time.Date(2026, 4, 1, 17, 30, 0, 0, time.UTC))
	svc := services.NewAccrualService(store, store, services.WithAccrualClock(clock.Now), services.WithAccrualLocation(loc))

	_, err = svc.RunDailyAccrual(ctx)
	suite.Require().NoError(err)
	clock.Advance(90 * time.Minute)
	report, err := svc.RunDailyAccrual(ctx)
	suite.Require().NoError(err)
	suite.Equal(1, report.InvestmentsCredited)

	got, err := store.FindAccount(ctx, domain.ByAccountID("a1"))
	suite.Require().NoError(err)
	suite.True(got.Investments[0].Profit.Equal(decimal.NewFromInt(10)))
}

func (suite *AccrualServiceTestSuite) TestRunDailyAccrual_ListFailure() {
	suite.mockRepo.On("ListAccounts", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()
	svc := services.NewAccrualService(suite.mockRepo, suite.plans)
	_, err := svc.RunDailyAccrual(context.Background())
	suite.Error(err)
}

func TestAccrualService(t *testing.T) {
	suite.Run(t, new(AccrualServiceTestSuite))
}
