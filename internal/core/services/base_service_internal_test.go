package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestWithRetry(t *testing.T) {
	ctx := context.Background()
	lostRace := fmt.Errorf("%w: version changed", apperrors.ErrPersistence)

	t.Run("retries persistence failures until success", func(t *testing.T) {
		s := BaseService{Retry: RetryPolicy{MaxAttempts: 3}}
		calls := 0
		err := s.withRetry(ctx, "op", func() error {
			calls++
			if calls < 3 {
				return lostRace
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after the attempt budget", func(t *testing.T) {
		s := BaseService{Retry: RetryPolicy{MaxAttempts: 2}}
		calls := 0
		err := s.withRetry(ctx, "op", func() error {
			calls++
			return lostRace
		})
		assert.ErrorIs(t, err, apperrors.ErrPersistence)
		assert.Equal(t, 2, calls)
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		s := BaseService{Retry: DefaultRetryPolicy}
		calls := 0
		err := s.withRetry(ctx, "op", func() error {
			calls++
			return apperrors.ErrConflict
		})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops waiting when the context ends", func(t *testing.T) {
		s := BaseService{Retry: RetryPolicy{MaxAttempts: 5, Backoff: time.Hour}}
		cctx, cancel := context.WithCancel(ctx)
		calls := 0
		err := s.withRetry(cctx, "op", func() error {
			calls++
			cancel()
			return lostRace
		})
		assert.True(t, errors.Is(err, context.Canceled))
		assert.ErrorIs(t, err, apperrors.ErrPersistence)
		assert.Equal(t, 1, calls)
	})
}
