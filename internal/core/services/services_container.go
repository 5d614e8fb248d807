package services

import (
	"github.com/SscSPs/investment_ledger_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/investment_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/investment_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/investment_ledger_app/internal/platform/config"
)

// Collaborators are the external systems the services call out to.
type Collaborators struct {
	PaymentGateway gateways.PaymentGateway
	Events         gateways.EventPublisher
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, collab Collaborators) *portssvc.ServiceContainer {
	retry := RetryPolicy{MaxAttempts: cfg.PersistenceMaxAttempts, Backoff: cfg.PersistenceRetryBackoff}

	container := &portssvc.ServiceContainer{}

	container.Plan = NewPlanService(repos.PlanRepo)

	container.Investment = NewInvestmentService(
		repos.AccountRepo,
		repos.PlanRepo,
		WithPaymentVerification(cfg.RazorpayKeySecret, cfg.RequirePaymentVerification),
		WithInvestmentRetry(retry),
		WithInvestmentEvents(collab.Events),
	)

	container.Accrual = NewAccrualService(
		repos.AccountRepo,
		repos.PlanRepo,
		WithAccrualLocation(cfg.AccrualLocation),
		WithAccrualRetry(retry),
		WithAccrualEvents(collab.Events),
	)

	container.Referral = NewReferralService(
		repos.AccountRepo,
		WithReferralBonus(cfg.ReferralBonusAmount),
		WithReferralRetry(retry),
		WithReferralEvents(collab.Events),
	)

	container.Withdrawal = NewWithdrawalService(
		repos.AccountRepo,
		WithMinimumBalance(cfg.WithdrawalMinBalance),
		WithWithdrawalRetry(retry),
		WithWithdrawalEvents(collab.Events),
	)

	container.Payment = NewPaymentService(collab.PaymentGateway, cfg.PaymentCurrency)
	container.AdminAuth = NewAdminAuthService(cfg)

	return container
}
