package gateways

import (
	"context"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentStorage stores identity proof documents.
type DocumentStorage interface {
	// Upload stores content and returns a retrievable reference (URL). Failures wrap
	// apperrors.ErrUploadFailed.
	Upload(ctx context.Context, content []byte, filename string, folderHint string) (string, error)
}

// PaymentGateway creates checkout orders with the external payment provider.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency string, receipt string) (domain.PaymentOrder, error)
}

// EventPublisher records product analytics events. Implementations must not block
// the caller on delivery.
type EventPublisher interface {
	Publish(ctx context.Context, distinctID string, event string, properties map[string]any)
	Close() error
}

// ReleaseFunc releases a lock obtained from a RunLocker.
type ReleaseFunc func(ctx context.Context) error

// RunLocker guards jobs that must not run concurrently across instances.
type RunLocker interface {
	// Acquire tries to take the lock for key. ok is false when another holder owns it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (release ReleaseFunc, ok bool, err error)
}
