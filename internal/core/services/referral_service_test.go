package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/investment_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/investment_ledger_app/internal/core/services"
	"github.com/SscSPs/investment_ledger_app/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReferralServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	service portssvc.ReferralSvcFacade
	ctx     context.Context
}

func (suite *ReferralServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.service = services.NewReferralService(suite.store, services.WithReferralBonus(decimal.NewFromInt(100)))
}

func (suite *ReferralServiceTestSuite) seed(id, code string, status domain.ReferralStatus, referredBy ...string) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	suite.Require().NoError(suite.store.CreateAccount(suite.ctx, domain.Account{
		AccountID:         id,
		NationalID:        "nid-" + id,
		Profile:           domain.Profile{Name: "Name " + id},
		ReferralCode:      code,
		ReferredBy:        referredBy,
		ReferralStatus:    status,
		WithdrawalRequest: domain.WithdrawalRequest{Status: domain.WithdrawalNone},
		AuditFields:       domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}))
}

func (suite *ReferralServiceTestSuite) TestApproveReferral_CreditsOnce() {
	suite.seed("referrer", "MANI1000", domain.ReferralNone)
	suite.seed("referee", "NINA2000", domain.ReferralPending, "MANI1000")

	approved, err := suite.service.ApproveReferral(suite.ctx, "referee")
	suite.Require().NoError(err)
	suite.Equal(domain.ReferralApproved, approved.ReferralStatus)

	referrer, err := suite.store.FindAccount(suite.ctx, domain.ByAccountID("referrer"))
	suite.Require().NoError(err)
	suite.True(referrer.Balance.Equal(decimal.NewFromInt(100)))
	suite.Require().Equal(1, countTransactions(referrer, domain.TransactionReferralBonus))
	suite.Equal("Referral from Name referee", referrer.Transactions[0].Detail)
	suite.Equal("referee", referrer.Transactions[0].Reference)

	_, err = suite.service.ApproveReferral(suite.ctx, "referee")
	suite.ErrorIs(err, apperrors.ErrConflict)

	referrer, err = suite.store.FindAccount(suite.ctx, domain.ByAccountID("referrer"))
	suite.Require().NoError(err)
	suite.True(referrer.Balance.Equal(decimal.NewFromInt(100)), "second approval credits nothing")
}

func (suite *ReferralServiceTestSuite) TestApproveReferral_MissingReferrerApprovesWithoutBonus() {
	suite.seed("referee", "NINA2000", domain.ReferralPending, "GONE9999")
	approved, err := suite.service.ApproveReferral(suite.ctx, "referee")
	suite.Require().NoError(err)
	suite.Equal(domain.ReferralApproved, approved.ReferralStatus)
}

func (suite *ReferralServiceTestSuite) TestApproveReferral_Errors() {
	suite.seed("loner", "OM1000", domain.ReferralNone)
	suite.seed("referrer", "MANI1000", domain.ReferralNone)
	suite.seed("rejected", "PIA1000", domain.ReferralRejected, "MANI1000")

	_, err := suite.service.ApproveReferral(suite.ctx, "loner")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.ApproveReferral(suite.ctx, "nobody")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.ApproveReferral(suite.ctx, " ")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ApproveReferral(suite.ctx, "rejected")
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ReferralServiceTestSuite) TestRejectReferral() {
	suite.seed("referrer", "MANI1000", domain.ReferralNone)
	suite.seed("referee", "NINA2000", domain.ReferralPending, "MANI1000")

	rejected, err := suite.service.RejectReferral(suite.ctx, "referee")
	suite.Require().NoError(err)
	suite.Equal(domain.ReferralRejected, rejected.ReferralStatus)

	_, err = suite.service.ApproveReferral(suite.ctx, "referee")
	suite.ErrorIs(err, apperrors.ErrConflict)

	referrer, err := suite.store.FindAccount(suite.ctx, domain.ByAccountID("referrer"))
	suite.Require().NoError(err)
	suite.True(referrer.Balance.IsZero())
}

func (suite *ReferralServiceTestSuite) TestListPendingReferrals() {
	suite.seed("referrer", "MANI1000", domain.ReferralNone)
	suite.seed("referee", "NINA2000", domain.ReferralPending, "MANI1000")
	suite.seed("orphan", "QUI1000", domain.ReferralPending)

	pending, err := suite.service.ListPendingReferrals(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal("referee", pending[0].AccountID)
}

func (suite *ReferralServiceTestSuite) TestApproveReferral_BonusFailureLeavesRefereePending() {
	repo := new(MockAccountRepository)
	referee := &domain.Account{AccountID: "referee", NationalID: "n1", ReferralCode: "NINA2000", ReferralStatus: domain.ReferralPending, ReferredBy: []string{"MANI1000"}}
	referrer := &domain.Account{AccountID: "referrer", NationalID: "n2", ReferralCode: "MANI1000"}
	repo.On("FindAccount", mock.Anything, domain.ByAccountID("referee")).Return(referee, nil)
	repo.On("FindAccountByReferralCode", mock.Anything, "MANI1000").Return(referrer, nil)
	repo.On("UpdateAccount", mock.Anything, domain.ByAccountID("referrer"), mock.Anything).Return(nil, errors.New("store offline"))

	svc := services.NewReferralService(repo)
	_, err := svc.ApproveReferral(suite.ctx, "referee")
	suite.Error(err)
	repo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, domain.ByAccountID("referee"), mock.Anything)
	suite.Equal(domain.ReferralPending, referee.ReferralStatus)
}

func TestReferralService(t *testing.T) {
	suite.Run(t, new(ReferralServiceTestSuite))
}
