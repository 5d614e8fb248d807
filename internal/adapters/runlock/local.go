// Package runlock provides run locks that keep scheduled jobs from overlapping.
package runlock

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/core/ports/gateways"
	"github.com/google/uuid"
)

type heldLock struct {
	token     string
	expiresAt time.Time
}

// LocalLocker is an in-process gateways.RunLocker for single-instance deployments.
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]heldLock
	clock func() time.Time
}

var _ gateways.RunLocker = (*LocalLocker)(nil)

// NewLocalLocker creates an in-process locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]heldLock), clock: time.Now}
}

func (l *LocalLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (gateways.ReleaseFunc, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if h, ok := l.held[key]; ok && now.Before(h.expiresAt) {
		return nil, false, nil
	}
	token := uuid.NewString()
	l.held[key] = heldLock{token: token, expiresAt: now.Add(ttl)}

	release := func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if h, ok := l.held[key]; ok && h.token == token {
			delete(l.held, key)
		}
		return nil
	}
	return release, true, nil
}
