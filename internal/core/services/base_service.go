package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/middleware"
)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// RetryPolicy bounds retries of store writes that lost a concurrency race.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultRetryPolicy is used when no policy is configured.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, Backoff: 50 * time.Millisecond}

// BaseService provides common functionality for all services
type BaseService struct {
	Now   Clock
	Retry RetryPolicy
}

func newBaseService() BaseService {
	return BaseService{Now: time.Now, Retry: DefaultRetryPolicy}
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

func (s *BaseService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// withRetry runs op until it succeeds, fails with an error other than
// apperrors.ErrPersistence, or the attempt budget is spent. The wait doubles after
// every failed attempt.
func (s *BaseService) withRetry(ctx context.Context, opName string, op func() error) error {
	attempts := s.Retry.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	wait := s.Retry.Backoff

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = op()
		if err == nil || !errors.Is(err, apperrors.ErrPersistence) {
			return err
		}
		if attempt == attempts {
			break
		}
		s.LogWarn(ctx, "Store write lost a concurrency race, retrying",
			slog.String("operation", opName),
			slog.Int("attempt", attempt),
			slog.Duration("backoff", wait))
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return errors.Join(err, ctx.Err())
			case <-timer.C:
			}
			wait *= 2
		}
	}
	return err
}
