package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/investment_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/investment_ledger_app/internal/core/services"
	"github.com/SscSPs/investment_ledger_app/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type WithdrawalServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	clock   *testClock
	service portssvc.WithdrawalSvcFacade
	ctx     context.Context
}

func (suite *WithdrawalServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.clock = newTestClock(time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC))
	suite.service = services.NewWithdrawalService(suite.store,
		services.WithMinimumBalance(decimal.NewFromInt(150)),
		services.WithWithdrawalClock(suite.clock.Now))
}

func (suite *WithdrawalServiceTestSuite) seed(id string, balance int64) {
	now := suite.clock.Now()
	suite.Require().NoError(suite.store.CreateAccount(suite.ctx, domain.Account{
		AccountID:         id,
		NationalID:        "nid-" + id,
		ReferralCode:      "CODE" + id,
		ReferralStatus:    domain.ReferralApproved,
		Balance:           decimal.NewFromInt(balance),
		WithdrawalRequest: domain.WithdrawalRequest{Status: domain.WithdrawalNone},
		AuditFields:       domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}))
}

func (suite *WithdrawalServiceTestSuite) TestRequestWithdrawal_BelowThresholdLeavesAccountUntouched() {
	suite.seed("a1", 149)
	_, err := suite.service.RequestWithdrawal(suite.ctx, domain.ByNationalID("nid-a1"), domain.PayoutDestination{UPI: "a1@upi"})
	suite.ErrorIs(err, apperrors.ErrBelowThreshold)

	acc, err := suite.store.FindAccount(suite.ctx, domain.ByAccountID("a1"))
	suite.Require().NoError(err)
	suite.Equal(domain.WithdrawalNone, acc.WithdrawalRequest.Status)
	suite.Equal(domain.ReferralApproved, acc.ReferralStatus)
	suite.Equal(int64(1), acc.Version)
}

func (suite *WithdrawalServiceTestSuite) TestRequestWithdrawal_ExactlyAtThreshold() {
	suite.seed("a1", 150)
	req, err := suite.service.RequestWithdrawal(suite.ctx, domain.ByNationalID("nid-a1"), domain.PayoutDestination{BankAccount: " 001122 ", IFSC: "sbin0000001"})
	suite.Require().NoError(err)
	suite.True(req.Amount.Equal(decimal.NewFromInt(150)))
	suite.Equal("SBIN0000001", req.Destination.IFSC)
	suite.Equal("001122", req.Destination.BankAccount)

	acc, err := suite.store.FindAccount(suite.ctx, domain.ByAccountID("a1"))
	suite.Require().NoError(err)
	suite.True(acc.Balance.Equal(decimal.NewFromInt(150)), "balance is only deducted on approval")
	suite.Equal(domain.ReferralWithdrawalRequested, acc.ReferralStatus)
}

func (suite *WithdrawalServiceTestSuite) TestRequestWithdrawal_ConflictLeavesPendingRequestUntouched() {
	suite.seed("a1", 300)
	first, err := suite.service.RequestWithdrawal(suite.ctx, domain.ByNationalID("nid-a1"), domain.PayoutDestination{UPI: "a1@upi"})
	suite.Require().NoError(err)

	suite.clock.Advance(time.Hour)
	_, err = suite.service.RequestWithdrawal(suite.ctx, domain.ByNationalID("nid-a1"), domain.PayoutDestination{UPI: "other@upi"})
	suite.ErrorIs(err, apperrors.ErrConflict)

	acc, err := suite.store.FindAccount(suite.ctx, domain.ByAccountID("a1"))
	suite.Require().NoError(err)
	suite.Equal("a1@upi", acc.WithdrawalRequest.Destination.UPI)
	suite.Equal(first.RequestedAt.Unix(), acc.WithdrawalRequest.RequestedAt.Unix())
}

func (suite *WithdrawalServiceTestSuite) TestRequestWithdrawal_Validation() {
	suite.seed("a1", 300)
	tests := []domain.PayoutDestination{
		{},
		{UPI: "no-at-sign"},
		{UPI: "a1@upi", BankAccount: "1", IFSC: "X"},
		{BankAccount: "1"},
	}
	for _, dest := range tests {
		_, err := suite.service.RequestWithdrawal(suite.ctx, domain.ByNationalID("nid-a1"), dest)
		suite.ErrorIs(err, apperrors.ErrValidation, "%+v", dest)
	}
	_, err := suite.service.RequestWithdrawal(suite.ctx, domain.ByNationalID("nobody"), domain.PayoutDestination{UPI: "x@upi"})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *WithdrawalServiceTestSuite) TestResolveWithdrawal_Reject() {
	suite.seed("a1", 300)
	_, err := suite.service.RequestWithdrawal(suite.ctx, domain.ByNationalID("nid-a1"), domain.PayoutDestination{UPI: "a1@upi"})
	suite.Require().NoError(err)

	acc, err := suite.service.ResolveWithdrawal(suite.ctx, domain.ByAccountID("a1"), "rejected")
	suite.Require().NoError(err)
	suite.True(acc.Balance.Equal(decimal.NewFromInt(300)))
	suite.Equal(domain.WithdrawalRejected, acc.WithdrawalRequest.Status)
	suite.Equal(domain.ReferralRejected, acc.ReferralStatus)
	suite.NotNil(acc.WithdrawalRequest.ResolvedAt)
	suite.Equal(0, countTransactions(acc, domain.TransactionWithdrawal))

	_, err = suite.service.ResolveWithdrawal(suite.ctx, domain.ByAccountID("a1"), "Approved")
	suite.ErrorIs(err, apperrors.ErrNotFound, "nothing left to resolve")

	// A new request may follow a resolved one.
	_, err = suite.service.RequestWithdrawal(suite.ctx, domain.ByNationalID("nid-a1"), domain.PayoutDestination{UPI: "a1@upi"})
	suite.NoError(err)
}

func (suite *WithdrawalServiceTestSuite) TestResolveWithdrawal_ApproveZeroesBalanceAndRecordsRequestedAmount() {
	suite.seed("a1", 300)
	_, err := suite.service.RequestWithdrawal(suite.ctx, domain.ByNationalID("nid-a1"), domain.PayoutDestination{UPI: "a1@upi"})
	suite.Require().NoError(err)

	// A credit lands between request and approval.
	_, err = suite.store.UpdateAccount(suite.ctx, domain.ByAccountID("a1"), func(a *domain.Account) error {
		a.Balance = a.Balance.Add(decimal.NewFromInt(50))
		return nil
	})
	suite.Require().NoError(err)

	acc, err := suite.service.ResolveWithdrawal(suite.ctx, domain.ByAccountID("a1"), "approved")
	suite.Require().NoError(err)
	suite.True(acc.Balance.IsZero())
	suite.Equal(domain.WithdrawalApproved, acc.WithdrawalRequest.Status)
	suite.Equal(domain.ReferralCompleted, acc.ReferralStatus)
	suite.Require().Equal(1, countTransactions(acc, domain.TransactionWithdrawal))
	for _, txn := range acc.Transactions {
		if txn.Kind == domain.TransactionWithdrawal {
			suite.True(txn.Amount.Equal(decimal.NewFromInt(300)), "snapshot amount, got %s", txn.Amount)
		}
	}
}

func (suite *WithdrawalServiceTestSuite) TestResolveWithdrawal_InvalidDecision() {
	suite.seed("a1", 300)
	_, err := suite.service.RequestWithdrawal(suite.ctx, domain.ByNationalID("nid-a1"), domain.PayoutDestination{UPI: "a1@upi"})
	suite.Require().NoError(err)
	_, err = suite.service.ResolveWithdrawal(suite.ctx, domain.ByAccountID("a1"), "Pending")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *WithdrawalServiceTestSuite) TestListWithdrawalRequests_NewestFirst() {
	suite.seed("a1", 300)
	suite.seed("a2", 400)
	suite.seed("a3", 500)
	_, err := suite.service.RequestWithdrawal(suite.ctx, domain.ByNationalID("nid-a1"), domain.PayoutDestination{UPI: "a1@upi"})
	suite.Require().NoError(err)
	suite.clock.Advance(time.Minute)
	_, err = suite.service.RequestWithdrawal(suite.ctx, domain.ByNationalID("nid-a2"), domain.PayoutDestination{UPI: "a2@upi"})
	suite.Require().NoError(err)

	views, err := suite.service.ListWithdrawalRequests(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.Equal("a2", views[0].AccountID)
	suite.Equal("a1", views[1].AccountID)
}

func TestWithdrawalService(t *testing.T) {
	suite.Run(t, new(WithdrawalServiceTestSuite))
}
