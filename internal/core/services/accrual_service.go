package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	"github.com/SscSPs/investment_ledger_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/investment_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/investment_ledger_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// errNothingToAccrue aborts an account write when no investment was credited.
var errNothingToAccrue = errors.New("nothing to accrue")

type accrualService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	planRepo    portsrepo.PlanReader
	location    *time.Location
	events      gateways.EventPublisher
}

// AccrualOption is a functional option for configuring the accrual service
type AccrualOption func(*accrualService)

// WithAccrualLocation sets the time zone that defines a calendar day.
func WithAccrualLocation(loc *time.Location) AccrualOption {
	return func(s *accrualService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithAccrualClock overrides the time source.
func WithAccrualClock(clock Clock) AccrualOption {
	return func(s *accrualService) {
		s.Now = clock
	}
}

// WithAccrualRetry overrides the store retry policy.
func WithAccrualRetry(policy RetryPolicy) AccrualOption {
	return func(s *accrualService) {
		s.Retry = policy
	}
}

// WithAccrualEvents publishes a summary event after every run.
func WithAccrualEvents(publisher gateways.EventPublisher) AccrualOption {
	return func(s *accrualService) {
		s.events = publisher
	}
}

// NewAccrualService creates the daily profit accrual service.
func NewAccrualService(accountRepo portsrepo.AccountRepositoryFacade, planRepo portsrepo.PlanReader, options ...AccrualOption) portssvc.AccrualSvc {
	svc := &accrualService{
		BaseService: newBaseService(),
		accountRepo: accountRepo,
		planRepo:    planRepo,
		location:    time.UTC,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccrualSvc = (*accrualService)(nil)

type accountAccrual struct {
	credited int
	skipped  int
	total    decimal.Decimal
}

// RunDailyAccrual credits one day of profit to every Earning investment not yet
// credited on the current calendar day. A failing account is logged and counted
// and the run moves on.
func (s *accrualService) RunDailyAccrual(ctx context.Context) (domain.AccrualReport, error) {
	now := s.now()
	report := domain.AccrualReport{StartedAt: now, TotalCredited: decimal.Zero}

	plans, err := s.planRepo.ListPlans(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load plan catalog for accrual")
		return report, fmt.Errorf("failed to load plan catalog: %w", err)
	}
	rates := domain.PlanRates(plans)

	accounts, err := s.accountRepo.ListAccounts(ctx, portsrepo.AccountFilter{InvestmentStatus: domain.InvestmentEarning})
	if err != nil {
		s.LogError(ctx, err, "Failed to list earning accounts")
		return report, fmt.Errorf("failed to list earning accounts: %w", err)
	}

	for _, acc := range accounts {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = s.now()
			s.LogWarn(ctx, "Accrual run interrupted", slog.Int("accounts_scanned", report.AccountsScanned))
			return report, err
		}
		report.AccountsScanned++

		result, err := s.accrueAccount(ctx, acc.AccountID, rates, now)
		switch {
		case errors.Is(err, errNothingToAccrue):
			report.InvestmentsSkipped += result.skipped
		case err != nil:
			report.AccountsFailed++
			s.LogError(ctx, err, "Failed to accrue profit for account", slog.String("account_id", acc.AccountID))
		default:
			report.AccountsUpdated++
			report.InvestmentsCredited += result.credited
			report.InvestmentsSkipped += result.skipped
			report.TotalCredited = report.TotalCredited.Add(result.total)
		}
	}

	report.FinishedAt = s.now()
	s.LogInfo(ctx, "Daily accrual finished",
		slog.Int("accounts_scanned", report.AccountsScanned),
		slog.Int("accounts_updated", report.AccountsUpdated),
		slog.Int("accounts_failed", report.AccountsFailed),
		slog.Int("investments_credited", report.InvestmentsCredited),
		slog.String("total_credited", report.TotalCredited.String()))
	if s.events != nil {
		s.events.Publish(ctx, "accrual-job", "daily_accrual_completed", map[string]any{
			"accounts_updated":     report.AccountsUpdated,
			"accounts_failed":      report.AccountsFailed,
			"investments_credited": report.InvestmentsCredited,
			"total_credited":       report.TotalCredited.String(),
		})
	}
	return report, nil
}

func (s *accrualService) accrueAccount(ctx context.Context, accountID string, rates map[string]decimal.Decimal, now time.Time) (accountAccrual, error) {
	var result accountAccrual
	err := s.withRetry(ctx, "RunDailyAccrual", func() error {
		_, err := s.accountRepo.UpdateAccount(ctx, domain.ByAccountID(accountID), func(a *domain.Account) error {
			result = accountAccrual{total: decimal.Zero}
			for i := range a.Investments {
				inv := &a.Investments[i]
				if inv.Status != domain.InvestmentEarning {
					continue
				}
				if inv.AccruedOn(now, s.location) {
					result.skipped++
					continue
				}
				rate, ok := rates[inv.Plan]
				if !ok {
					s.LogWarn(ctx, "Skipping investment with unknown plan",
						slog.String("account_id", a.AccountID),
						slog.Int("index", i),
						slog.String("plan", inv.Plan))
					result.skipped++
					continue
				}

				profit := inv.DailyProfit(rate)
				inv.Profit = inv.Profit.Add(profit)
				accruedAt := now
				inv.LastAccruedAt = &accruedAt
				a.Transactions = append(a.Transactions, domain.NewTransaction(
					domain.TransactionProfitCredit,
					profit,
					"Daily profit for "+inv.Plan,
					fmt.Sprintf("investment:%d", i),
					now,
				))
				result.credited++
				result.total = result.total.Add(profit)
			}
			if result.credited == 0 {
				return errNothingToAccrue
			}
			return nil
		})
		return err
	})
	return result, err
}
