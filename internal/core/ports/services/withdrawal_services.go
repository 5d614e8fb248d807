package services

import (
	"context"

	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
)

// WithdrawalReaderSvc defines read operations for withdrawals.
type WithdrawalReaderSvc interface {
	// ListWithdrawalRequests returns every account's current request, newest first.
	ListWithdrawalRequests(ctx context.Context) ([]domain.WithdrawalView, error)
}

// WithdrawalWriterSvc defines the withdrawal workflow.
type WithdrawalWriterSvc interface {
	// RequestWithdrawal snapshots the balance into a pending request.
	RequestWithdrawal(ctx context.Context, ref domain.AccountRef, dest domain.PayoutDestination) (*domain.WithdrawalRequest, error)

	// ResolveWithdrawal approves or rejects the pending request.
	ResolveWithdrawal(ctx context.Context, ref domain.AccountRef, decision string) (*domain.Account, error)
}

// WithdrawalSvcFacade combines all withdrawal-related service interfaces
type WithdrawalSvcFacade interface {
	WithdrawalReaderSvc
	WithdrawalWriterSvc
}
