package pgsql

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type retryableErr struct{ safe bool }

func (e retryableErr) Error() string     { return "conn busy" }
func (e retryableErr) SafeToRetry() bool { return e.safe }

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		persistence bool
	}{
		{"nil", nil, false},
		{"serialization failure", &pgconn.PgError{Code: pgSerializationFailure}, true},
		{"deadlock", &pgconn.PgError{Code: pgDeadlockDetected}, true},
		{"lock not available", &pgconn.PgError{Code: pgLockNotAvailable}, true},
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation}, false},
		{"operation deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), true},
		{"safe to retry", retryableErr{safe: true}, true},
		{"not safe to retry", retryableErr{safe: false}, false},
		{"caller cancelled", context.Canceled, false},
		{"no rows", pgx.ErrNoRows, false},
		{"plain", errors.New("boom"), false},
		{"already classified", fmt.Errorf("%w: lost race", apperrors.ErrPersistence), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.Equal(t, tt.persistence, errors.Is(got, apperrors.ErrPersistence))
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassify_UnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Nothing listens on port 1.
	_, err := pgconn.Connect(ctx, "postgres://ledger@127.0.0.1:1/ledger?sslmode=disable&connect_timeout=2")
	require.Error(t, err)

	got := classify(err)
	assert.ErrorIs(t, got, apperrors.ErrPersistence)
	assert.Contains(t, got.Error(), "unreachable")
}
