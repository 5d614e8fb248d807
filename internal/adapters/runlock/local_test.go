package runlock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_ExclusiveUntilReleased(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()

	release, ok, err := l.Acquire(ctx, "accrual", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.Acquire(ctx, "accrual", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second holder must be refused")

	_, ok, err = l.Acquire(ctx, "other", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "keys are independent")

	require.NoError(t, release(ctx))
	_, ok, err = l.Acquire(ctx, "accrual", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalLocker_ExpiredLockIsReclaimed(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLocalLocker()
	l.clock = func() time.Time { return now }

	staleRelease, ok, err := l.Acquire(ctx, "accrual", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, err = l.Acquire(ctx, "accrual", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	// The stale holder's release must not free the new holder's lock.
	require.NoError(t, staleRelease(ctx))
	_, ok, err = l.Acquire(ctx, "accrual", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}
