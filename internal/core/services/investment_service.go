package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	"github.com/SscSPs/investment_ledger_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/investment_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/investment_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/investment_ledger_app/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// investmentService implements the InvestmentSvcFacade interface
type investmentService struct {
	BaseService
	accountRepo         portsrepo.AccountRepositoryFacade
	planRepo            portsrepo.PlanReader
	validate            *validator.Validate
	codeGen             ReferralCodeGenerator
	events              gateways.EventPublisher
	paymentSecret       string
	requirePaymentProof bool
}

// InvestmentOption is a functional option for configuring the investment service
type InvestmentOption func(*investmentService)

// WithPaymentVerification sets the gateway secret and whether a confirmation is mandatory.
func WithPaymentVerification(secret string, required bool) InvestmentOption {
	return func(s *investmentService) {
		s.paymentSecret = secret
		s.requirePaymentProof = required
	}
}

// WithReferralCodeGenerator replaces the random referral code generator.
func WithReferralCodeGenerator(gen ReferralCodeGenerator) InvestmentOption {
	return func(s *investmentService) {
		s.codeGen = gen
	}
}

// WithInvestmentEvents publishes lifecycle events.
func WithInvestmentEvents(publisher gateways.EventPublisher) InvestmentOption {
	return func(s *investmentService) {
		s.events = publisher
	}
}

// WithInvestmentClock overrides the time source.
func WithInvestmentClock(clock Clock) InvestmentOption {
	return func(s *investmentService) {
		s.Now = clock
	}
}

// WithInvestmentRetry overrides the store retry policy.
func WithInvestmentRetry(policy RetryPolicy) InvestmentOption {
	return func(s *investmentService) {
		s.Retry = policy
	}
}

// NewInvestmentService creates a new investment service with the provided options
func NewInvestmentService(accountRepo portsrepo.AccountRepositoryFacade, planRepo portsrepo.PlanReader, options ...InvestmentOption) portssvc.InvestmentSvcFacade {
	svc := &investmentService{
		BaseService:         newBaseService(),
		accountRepo:         accountRepo,
		planRepo:            planRepo,
		validate:            validator.New(validator.WithRequiredStructEnabled()),
		codeGen:             NewReferralCode,
		requirePaymentProof: true,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure investmentService implements the InvestmentSvcFacade interface
var _ portssvc.InvestmentSvcFacade = (*investmentService)(nil)

func (s *investmentService) SubmitInvestment(ctx context.Context, req dto.SubmitInvestmentRequest) (*domain.Account, error) {
	req.NationalID = strings.TrimSpace(req.NationalID)
	req.Plan = strings.TrimSpace(req.Plan)
	req.ReferralCode = strings.ToUpper(strings.TrimSpace(req.ReferralCode))

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := s.checkPlanAndPayment(ctx, req); err != nil {
		return nil, err
	}

	referrer, err := s.resolveReferrer(ctx, req.ReferralCode, req.NationalID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var account *domain.Account
	err = s.withRetry(ctx, "SubmitInvestment", func() error {
		updated, err := s.accountRepo.UpdateAccount(ctx, domain.ByNationalID(req.NationalID), func(a *domain.Account) error {
			applySubmission(a, req, referrer, now)
			if err := a.Validate(); err != nil {
				return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
			}
			return nil
		})
		if err == nil {
			account = updated
			return nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		created, err := s.createAccount(ctx, req, referrer, now)
		switch {
		case errors.Is(err, portsrepo.ErrNationalIDTaken), errors.Is(err, portsrepo.ErrReferralCodeTaken):
			// Lost a creation race; the next attempt appends to the winner or draws a new code.
			return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		case err != nil:
			return err
		}
		account = created
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to submit investment",
			slog.String("national_id", req.NationalID),
			slog.String("plan", req.Plan))
		return nil, err
	}

	s.LogInfo(ctx, "Investment submitted",
		slog.String("account_id", account.AccountID),
		slog.String("plan", req.Plan),
		slog.String("amount", req.Amount.String()),
		slog.Bool("referred", referrer != nil))
	s.publish(ctx, account.AccountID, "investment_submitted", map[string]any{
		"plan":   req.Plan,
		"amount": req.Amount.String(),
	})
	return account, nil
}

func (s *investmentService) PrecheckSubmission(ctx context.Context, req dto.SubmitInvestmentRequest) error {
	req.NationalID = strings.TrimSpace(req.NationalID)
	req.Plan = strings.TrimSpace(req.Plan)
	if req.NationalID == "" {
		return fmt.Errorf("%w: national ID is required", apperrors.ErrValidation)
	}
	if req.Plan == "" {
		return fmt.Errorf("%w: plan is required", apperrors.ErrValidation)
	}
	return s.checkPlanAndPayment(ctx, req)
}

// checkPlanAndPayment validates the amount, requires a known plan and verifies the
// payment confirmation.
func (s *investmentService) checkPlanAndPayment(ctx context.Context, req dto.SubmitInvestmentRequest) error {
	if !req.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if _, err := s.planRepo.FindPlanByName(ctx, req.Plan); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: unknown plan %q", apperrors.ErrValidation, req.Plan)
		}
		s.LogError(ctx, err, "Failed to look up plan", slog.String("plan", req.Plan))
		return err
	}
	if err := verifyConfirmation(req.Payment, s.paymentSecret, s.requirePaymentProof); err != nil {
		s.LogWarn(ctx, "Payment verification failed", slog.String("national_id", req.NationalID), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// resolveReferrer returns the account owning code, or nil when the code is empty,
// unknown, or belongs to the submitting identity.
func (s *investmentService) resolveReferrer(ctx context.Context, code, nationalID string) (*domain.Account, error) {
	if code == "" {
		return nil, nil
	}
	referrer, err := s.accountRepo.FindAccountByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "Referral code not found", slog.String("referral_code", code))
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to resolve referral code", slog.String("referral_code", code))
		return nil, err
	}
	if referrer.NationalID == nationalID {
		s.LogInfo(ctx, "Ignoring self referral", slog.String("referral_code", code))
		return nil, nil
	}
	return referrer, nil
}

func (s *investmentService) createAccount(ctx context.Context, req dto.SubmitInvestmentRequest, referrer *domain.Account, now time.Time) (*domain.Account, error) {
	code, err := s.uniqueReferralCode(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	account := domain.Account{
		AccountID:         uuid.NewString(),
		NationalID:        req.NationalID,
		ReferralCode:      code,
		ReferralStatus:    domain.ReferralNone,
		WithdrawalRequest: domain.WithdrawalRequest{Status: domain.WithdrawalNone},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	applySubmission(&account, req, referrer, now)
	if err := account.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := s.accountRepo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return &account, nil
}

// applySubmission appends the investment and its deposit, refreshes the profile and
// applies the referral rules.
func applySubmission(a *domain.Account, req dto.SubmitInvestmentRequest, referrer *domain.Account, now time.Time) {
	if req.Name != "" {
		a.Profile.Name = req.Name
	}
	if req.Email != "" {
		a.Profile.Email = req.Email
	}
	if req.Phone != "" {
		a.Profile.Phone = req.Phone
	}

	inv := domain.NewInvestment(req.Plan, req.Amount, req.FrontProofRef, req.BackProofRef, now)
	a.Investments = append(a.Investments, inv)
	a.Transactions = append(a.Transactions, domain.NewTransaction(
		domain.TransactionDeposit,
		req.Amount,
		req.Plan+" Investment",
		fmt.Sprintf("investment:%d", len(a.Investments)-1),
		now,
	))

	if req.ReferralCode == "" {
		if a.ReferralStatus == "" {
			a.ReferralStatus = domain.ReferralNone
		}
		return
	}
	open := a.ReferralStatus == "" || a.ReferralStatus == domain.ReferralNone || a.ReferralStatus == domain.ReferralPending
	if referrer != nil {
		a.AddReferrer(referrer.ReferralCode)
		if open {
			a.ReferralStatus = domain.ReferralPending
		}
		return
	}
	if open {
		a.ReferralStatus = domain.ReferralNone
	}
}

func (s *investmentService) AdminSetInvestmentState(ctx context.Context, ref domain.AccountRef, index int, req dto.UpdateInvestmentRequest) (*domain.Account, error) {
	if ref.IsZero() {
		return nil, fmt.Errorf("%w: account reference is required", apperrors.ErrValidation)
	}
	if req.Status == nil && req.Profit == nil && req.Locked == nil {
		return nil, fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}

	var status domain.InvestmentStatus
	if req.Status != nil {
		parsed, err := domain.ParseInvestmentStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		status = parsed
	}
	if req.Profit != nil && req.Profit.IsNegative() {
		return nil, fmt.Errorf("%w: profit must not be negative", apperrors.ErrValidation)
	}

	now := s.now()
	var account *domain.Account
	err := s.withRetry(ctx, "AdminSetInvestmentState", func() error {
		updated, err := s.accountRepo.UpdateAccount(ctx, ref, func(a *domain.Account) error {
			if index < 0 || index >= len(a.Investments) {
				return fmt.Errorf("%w: investment %d on account %s", apperrors.ErrNotFound, index, a.AccountID)
			}
			inv := &a.Investments[index]
			if req.Status != nil {
				inv.Status = status
			}
			if req.Locked != nil {
				inv.Locked = *req.Locked
			}
			if req.Profit != nil {
				delta := req.Profit.Sub(inv.Profit)
				inv.Profit = *req.Profit
				if !delta.IsZero() {
					a.Transactions = append(a.Transactions, domain.NewTransaction(
						domain.TransactionProfitCredit,
						delta,
						"Admin profit adjustment for "+inv.Plan,
						fmt.Sprintf("investment:%d", index),
						now,
					))
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		account = updated
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update investment",
				slog.String("account", ref.String()),
				slog.Int("index", index))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Investment updated by admin",
		slog.String("account_id", account.AccountID),
		slog.Int("index", index),
		slog.String("status", string(account.Investments[index].Status)))
	return account, nil
}

func (s *investmentService) GetAccount(ctx context.Context, ref domain.AccountRef) (*domain.Account, error) {
	if ref.IsZero() {
		return nil, fmt.Errorf("%w: account reference is required", apperrors.ErrValidation)
	}
	account, err := s.accountRepo.FindAccount(ctx, ref)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account", ref.String()))
		}
		return nil, err
	}
	return account, nil
}

func (s *investmentService) ListInvestments(ctx context.Context) ([]domain.AccountInvestments, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, portsrepo.AccountFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return groupInvestments(accounts, func(domain.Investment) bool { return true }), nil
}

func (s *investmentService) ListInvestmentsByPlan(ctx context.Context, plan string) ([]domain.AccountInvestments, error) {
	plan = strings.TrimSpace(plan)
	if plan == "" {
		return nil, fmt.Errorf("%w: plan is required", apperrors.ErrValidation)
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, portsrepo.AccountFilter{Plan: plan})
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts by plan", slog.String("plan", plan))
		return nil, err
	}
	return groupInvestments(accounts, func(inv domain.Investment) bool { return inv.Plan == plan }), nil
}

func (s *investmentService) ListRecentInvestments(ctx context.Context, window time.Duration) ([]domain.AccountInvestments, error) {
	if window <= 0 {
		window = 24 * time.Hour
	}
	since := s.now().Add(-window)
	accounts, err := s.accountRepo.ListAccounts(ctx, portsrepo.AccountFilter{InvestedSince: &since})
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent investments", slog.Time("since", since))
		return nil, err
	}
	return groupInvestments(accounts, func(inv domain.Investment) bool { return !inv.CreatedAt.Before(since) }), nil
}

// groupInvestments keeps the matching investments of every account, newest first
// within an account and across accounts by their newest match.
func groupInvestments(accounts []domain.Account, keep func(domain.Investment) bool) []domain.AccountInvestments {
	groups := make([]domain.AccountInvestments, 0, len(accounts))
	for _, acc := range accounts {
		var selected []domain.IndexedInvestment
		for i, inv := range acc.Investments {
			if keep(inv) {
				selected = append(selected, domain.IndexedInvestment{Index: i, Investment: inv})
			}
		}
		if len(selected) == 0 {
			continue
		}
		slices.SortStableFunc(selected, func(a, b domain.IndexedInvestment) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
		groups = append(groups, domain.AccountInvestments{AccountSummary: acc.Summary(), Investments: selected})
	}
	slices.SortStableFunc(groups, func(a, b domain.AccountInvestments) int {
		return b.Investments[0].CreatedAt.Compare(a.Investments[0].CreatedAt)
	})
	return groups
}

func (s *investmentService) publish(ctx context.Context, distinctID, event string, props map[string]any) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, distinctID, event, props)
}
