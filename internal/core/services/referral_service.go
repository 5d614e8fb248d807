package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	"github.com/SscSPs/investment_ledger_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/investment_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/investment_ledger_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type referralService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	bonus       decimal.Decimal
	events      gateways.EventPublisher
}

// ReferralOption is a functional option for configuring the referral service
type ReferralOption func(*referralService)

// WithReferralBonus sets the amount credited to a referrer on approval.
func WithReferralBonus(amount decimal.Decimal) ReferralOption {
	return func(s *referralService) {
		s.bonus = amount
	}
}

// WithReferralClock overrides the time source.
func WithReferralClock(clock Clock) ReferralOption {
	return func(s *referralService) {
		s.Now = clock
	}
}

// WithReferralRetry overrides the store retry policy.
func WithReferralRetry(policy RetryPolicy) ReferralOption {
	return func(s *referralService) {
		s.Retry = policy
	}
}

// WithReferralEvents publishes referral decisions.
func WithReferralEvents(publisher gateways.EventPublisher) ReferralOption {
	return func(s *referralService) {
		s.events = publisher
	}
}

// NewReferralService creates the referral engine.
func NewReferralService(accountRepo portsrepo.AccountRepositoryFacade, options ...ReferralOption) portssvc.ReferralSvcFacade {
	svc := &referralService{
		BaseService: newBaseService(),
		accountRepo: accountRepo,
		bonus:       decimal.NewFromInt(100),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReferralSvcFacade = (*referralService)(nil)

// checkReferralDecidable rejects referees that have no referrer or whose referral
// was already decided.
func checkReferralDecidable(a *domain.Account) error {
	if len(a.ReferredBy) == 0 {
		return fmt.Errorf("%w: account %s has no referrer", apperrors.ErrNotFound, a.AccountID)
	}
	switch a.ReferralStatus {
	case domain.ReferralApproved, domain.ReferralWithdrawalRequested, domain.ReferralCompleted, domain.ReferralRejected:
		return fmt.Errorf("%w: referral of account %s is already %s", apperrors.ErrConflict, a.AccountID, a.ReferralStatus)
	}
	return nil
}

// ApproveReferral credits the referrer once and then marks the referee Approved.
// The two accounts are written separately; the bonus transaction references the
// referee so a retried approval never credits twice.
func (s *referralService) ApproveReferral(ctx context.Context, accountID string) (*domain.Account, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, fmt.Errorf("%w: account ID is required", apperrors.ErrValidation)
	}

	referee, err := s.accountRepo.FindAccount(ctx, domain.ByAccountID(accountID))
	if err != nil {
		return nil, err
	}
	if err := checkReferralDecidable(referee); err != nil {
		return nil, err
	}

	code := referee.ReferredBy[0]
	referrer, err := s.accountRepo.FindAccountByReferralCode(ctx, code)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		s.LogWarn(ctx, "Referrer no longer exists, approving without bonus",
			slog.String("account_id", accountID),
			slog.String("referral_code", code))
		referrer = nil
	case err != nil:
		s.LogError(ctx, err, "Failed to resolve referrer", slog.String("referral_code", code))
		return nil, err
	}

	if referrer != nil {
		if err := s.creditReferrer(ctx, referrer.AccountID, referee); err != nil {
			s.LogError(ctx, err, "Failed to credit referral bonus",
				slog.String("referrer_id", referrer.AccountID),
				slog.String("referee_id", accountID))
			return nil, err
		}
	}

	var approved *domain.Account
	err = s.withRetry(ctx, "ApproveReferral", func() error {
		updated, err := s.accountRepo.UpdateAccount(ctx, domain.ByAccountID(accountID), func(a *domain.Account) error {
			if err := checkReferralDecidable(a); err != nil {
				return err
			}
			a.ReferralStatus = domain.ReferralApproved
			return nil
		})
		approved = updated
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to mark referral approved", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Referral approved",
		slog.String("account_id", accountID),
		slog.String("referral_code", code),
		slog.String("bonus", s.bonus.String()))
	if s.events != nil {
		s.events.Publish(ctx, accountID, "referral_approved", map[string]any{"referral_code": code})
	}
	return approved, nil
}

func (s *referralService) creditReferrer(ctx context.Context, referrerID string, referee *domain.Account) error {
	now := s.now()
	return s.withRetry(ctx, "CreditReferralBonus", func() error {
		_, err := s.accountRepo.UpdateAccount(ctx, domain.ByAccountID(referrerID), func(a *domain.Account) error {
			if a.HasReferralBonusFor(referee.AccountID) {
				s.LogInfo(ctx, "Referral bonus already credited",
					slog.String("referrer_id", a.AccountID),
					slog.String("referee_id", referee.AccountID))
				return nil
			}
			name := referee.Profile.Name
			if name == "" {
				name = referee.ReferralCode
			}
			a.Balance = a.Balance.Add(s.bonus)
			a.Transactions = append(a.Transactions, domain.NewTransaction(
				domain.TransactionReferralBonus,
				s.bonus,
				"Referral from "+name,
				referee.AccountID,
				now,
			))
			return nil
		})
		return err
	})
}

// RejectReferral closes a pending referral without crediting anyone.
func (s *referralService) RejectReferral(ctx context.Context, accountID string) (*domain.Account, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, fmt.Errorf("%w: account ID is required", apperrors.ErrValidation)
	}

	var rejected *domain.Account
	err := s.withRetry(ctx, "RejectReferral", func() error {
		updated, err := s.accountRepo.UpdateAccount(ctx, domain.ByAccountID(accountID), func(a *domain.Account) error {
			if err := checkReferralDecidable(a); err != nil {
				return err
			}
			a.ReferralStatus = domain.ReferralRejected
			return nil
		})
		rejected = updated
		return err
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Referral rejected", slog.String("account_id", accountID))
	return rejected, nil
}

func (s *referralService) ListPendingReferrals(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, portsrepo.AccountFilter{ReferralStatus: domain.ReferralPending})
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending referrals")
		return nil, err
	}
	pending := make([]domain.Account, 0, len(accounts))
	for _, acc := range accounts {
		if acc.ReferralStatus == domain.ReferralPending && len(acc.ReferredBy) > 0 {
			pending = append(pending, acc)
		}
	}
	return pending, nil
}
