// Package scheduler runs the daily profit accrual on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/investment_ledger_app/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

// AccrualLockKey is the run lock held while an accrual is in progress.
const AccrualLockKey = "daily-accrual"

// Scheduler triggers RunDailyAccrual. Overlapping runs are prevented in-process by
// SkipIfStillRunning and across instances by the run locker.
type Scheduler struct {
	cron    *cron.Cron
	accrual portssvc.AccrualSvc
	locker  gateways.RunLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// New creates a scheduler whose cron expressions are evaluated in loc.
func New(accrual portssvc.AccrualSvc, locker gateways.RunLocker, lockTTL time.Duration, loc *time.Location, logger *slog.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	return &Scheduler{
		cron:    c,
		accrual: accrual,
		locker:  locker,
		lockTTL: lockTTL,
		logger:  logger,
	}
}

// Start registers the accrual job on schedule and starts the cron loop.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.runScheduled); err != nil {
		return fmt.Errorf("failed to schedule daily accrual %q: %w", schedule, err)
	}
	s.logger.Info("scheduled daily accrual job", slog.String("schedule", schedule))
	s.cron.Start()
	return nil
}

// Stop stops the cron loop and returns a context that is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), s.lockTTL)
	defer cancel()
	if _, err := s.RunOnce(ctx); err != nil {
		s.logger.Error("scheduled daily accrual failed", slog.String("error", err.Error()))
	}
}

// RunOnce runs the accrual under the run lock. ran is false when another holder
// owns the lock.
func (s *Scheduler) RunOnce(ctx context.Context) (ran bool, err error) {
	release, ok, err := s.locker.Acquire(ctx, AccrualLockKey, s.lockTTL)
	if err != nil {
		return false, err
	}
	if !ok {
		s.logger.Info("daily accrual already running elsewhere, skipping")
		return false, nil
	}
	defer func() {
		if relErr := release(context.WithoutCancel(ctx)); relErr != nil {
			s.logger.Warn("failed to release accrual lock", slog.String("error", relErr.Error()))
		}
	}()

	report, err := s.accrual.RunDailyAccrual(ctx)
	if err != nil {
		return true, err
	}
	s.logger.Info("daily accrual finished",
		slog.Int("accounts_scanned", report.AccountsScanned),
		slog.Int("accounts_updated", report.AccountsUpdated),
		slog.Int("accounts_failed", report.AccountsFailed),
		slog.String("total_credited", report.TotalCredited.String()))
	return true, nil
}
