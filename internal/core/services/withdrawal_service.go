package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	"github.com/SscSPs/investment_ledger_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/investment_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/investment_ledger_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type withdrawalService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	minBalance  decimal.Decimal
	events      gateways.EventPublisher
}

// WithdrawalOption is a functional option for configuring the withdrawal service
type WithdrawalOption func(*withdrawalService)

// WithMinimumBalance sets the smallest balance that may be withdrawn.
func WithMinimumBalance(amount decimal.Decimal) WithdrawalOption {
	return func(s *withdrawalService) {
		s.minBalance = amount
	}
}

// WithWithdrawalClock overrides the time source.
func WithWithdrawalClock(clock Clock) WithdrawalOption {
	return func(s *withdrawalService) {
		s.Now = clock
	}
}

// WithWithdrawalRetry overrides the store retry policy.
func WithWithdrawalRetry(policy RetryPolicy) WithdrawalOption {
	return func(s *withdrawalService) {
		s.Retry = policy
	}
}

// WithWithdrawalEvents publishes withdrawal lifecycle events.
func WithWithdrawalEvents(publisher gateways.EventPublisher) WithdrawalOption {
	return func(s *withdrawalService) {
		s.events = publisher
	}
}

// NewWithdrawalService creates the withdrawal workflow.
func NewWithdrawalService(accountRepo portsrepo.AccountRepositoryFacade, options ...WithdrawalOption) portssvc.WithdrawalSvcFacade {
	svc := &withdrawalService{
		BaseService: newBaseService(),
		accountRepo: accountRepo,
		minBalance:  decimal.NewFromInt(150),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.WithdrawalSvcFacade = (*withdrawalService)(nil)

// RequestWithdrawal snapshots the whole balance into a pending request. The balance
// itself is only deducted when the request is approved.
func (s *withdrawalService) RequestWithdrawal(ctx context.Context, ref domain.AccountRef, dest domain.PayoutDestination) (*domain.WithdrawalRequest, error) {
	if ref.IsZero() {
		return nil, fmt.Errorf("%w: account reference is required", apperrors.ErrValidation)
	}
	dest = dest.Normalize()
	if err := dest.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := s.now()
	var request domain.WithdrawalRequest
	var accountID string
	err := s.withRetry(ctx, "RequestWithdrawal", func() error {
		updated, err := s.accountRepo.UpdateAccount(ctx, ref, func(a *domain.Account) error {
			if a.HasPendingWithdrawal() {
				return fmt.Errorf("%w: account %s already has a pending withdrawal", apperrors.ErrConflict, a.AccountID)
			}
			if a.Balance.LessThan(s.minBalance) {
				return fmt.Errorf("%w: balance %s is below the minimum of %s", apperrors.ErrBelowThreshold, a.Balance.String(), s.minBalance.String())
			}
			requestedAt := now
			a.WithdrawalRequest = domain.WithdrawalRequest{
				Amount:      a.Balance,
				Status:      domain.WithdrawalPending,
				RequestedAt: &requestedAt,
				Destination: dest,
			}
			a.ReferralStatus = domain.ReferralWithdrawalRequested
			return nil
		})
		if err != nil {
			return err
		}
		request = updated.WithdrawalRequest
		accountID = updated.AccountID
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, "Withdrawal request refused",
			slog.String("account", ref.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal requested",
		slog.String("account_id", accountID),
		slog.String("amount", request.Amount.String()))
	if s.events != nil {
		s.events.Publish(ctx, accountID, "withdrawal_requested", map[string]any{"amount": request.Amount.String()})
	}
	return &request, nil
}

// ResolveWithdrawal applies an admin decision to the pending request.
func (s *withdrawalService) ResolveWithdrawal(ctx context.Context, ref domain.AccountRef, decision string) (*domain.Account, error) {
	if ref.IsZero() {
		return nil, fmt.Errorf("%w: account reference is required", apperrors.ErrValidation)
	}
	status, err := domain.ParseWithdrawalDecision(decision)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := s.now()
	var account *domain.Account
	err = s.withRetry(ctx, "ResolveWithdrawal", func() error {
		updated, err := s.accountRepo.UpdateAccount(ctx, ref, func(a *domain.Account) error {
			if !a.HasPendingWithdrawal() {
				return fmt.Errorf("%w: account %s has no pending withdrawal", apperrors.ErrNotFound, a.AccountID)
			}
			resolvedAt := now
			switch status {
			case domain.WithdrawalApproved:
				// The payout takes the whole balance, including credits made after the
				// request. The transaction records the requested amount.
				a.Balance = decimal.Zero
				a.ReferralStatus = domain.ReferralCompleted
				a.Transactions = append(a.Transactions, domain.NewTransaction(
					domain.TransactionWithdrawal,
					a.WithdrawalRequest.Amount,
					"Withdrawal approved",
					"",
					now,
				))
			case domain.WithdrawalRejected:
				a.ReferralStatus = domain.ReferralRejected
			}
			a.WithdrawalRequest.Status = status
			a.WithdrawalRequest.ResolvedAt = &resolvedAt
			return nil
		})
		account = updated
		return err
	})
	if err != nil {
		s.LogWarn(ctx, "Withdrawal resolution failed",
			slog.String("account", ref.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal resolved",
		slog.String("account_id", account.AccountID),
		slog.String("decision", string(status)),
		slog.String("amount", account.WithdrawalRequest.Amount.String()))
	if s.events != nil {
		s.events.Publish(ctx, account.AccountID, "withdrawal_resolved", map[string]any{"decision": string(status)})
	}
	return account, nil
}

func (s *withdrawalService) ListWithdrawalRequests(ctx context.Context) ([]domain.WithdrawalView, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, portsrepo.AccountFilter{HasWithdrawal: true})
	if err != nil {
		s.LogError(ctx, err, "Failed to list withdrawal requests")
		return nil, err
	}
	views := make([]domain.WithdrawalView, 0, len(accounts))
	for _, acc := range accounts {
		if acc.WithdrawalRequest.IsEmpty() || acc.WithdrawalRequest.RequestedAt == nil {
			continue
		}
		views = append(views, domain.WithdrawalView{AccountSummary: acc.Summary(), WithdrawalRequest: acc.WithdrawalRequest})
	}
	slices.SortStableFunc(views, func(a, b domain.WithdrawalView) int {
		return b.RequestedAt.Compare(*a.RequestedAt)
	})
	return views, nil
}
