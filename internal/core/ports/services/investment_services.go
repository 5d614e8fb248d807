package services

import (
	"context"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	"github.com/SscSPs/investment_ledger_app/internal/dto"
)

// InvestmentReaderSvc defines read operations over accounts and their investments.
type InvestmentReaderSvc interface {
	// GetAccount resolves an account by ID or national ID.
	GetAccount(ctx context.Context, ref domain.AccountRef) (*domain.Account, error)

	// ListInvestments returns every account with investments, newest investment first.
	ListInvestments(ctx context.Context) ([]domain.AccountInvestments, error)

	// ListInvestmentsByPlan returns the investments of a single plan grouped by account.
	ListInvestmentsByPlan(ctx context.Context, plan string) ([]domain.AccountInvestments, error)

	// ListRecentInvestments returns investments created within the given window.
	ListRecentInvestments(ctx context.Context, window time.Duration) ([]domain.AccountInvestments, error)
}

// InvestmentWriterSvc defines the investment lifecycle operations.
type InvestmentWriterSvc interface {
	// PrecheckSubmission rejects a submission whose amount, plan or payment
	// confirmation is invalid. It runs before proof documents are uploaded.
	PrecheckSubmission(ctx context.Context, req dto.SubmitInvestmentRequest) error

	// SubmitInvestment records a new investment, creating the account on first use.
	SubmitInvestment(ctx context.Context, req dto.SubmitInvestmentRequest) (*domain.Account, error)

	// AdminSetInvestmentState overrides status, profit or lock flag of one investment.
	AdminSetInvestmentState(ctx context.Context, ref domain.AccountRef, index int, req dto.UpdateInvestmentRequest) (*domain.Account, error)
}

// InvestmentSvcFacade combines all investment-related service interfaces
type InvestmentSvcFacade interface {
	InvestmentReaderSvc
	InvestmentWriterSvc
}

// AccrualSvc runs the daily profit accrual.
type AccrualSvc interface {
	RunDailyAccrual(ctx context.Context) (domain.AccrualReport, error)
}
