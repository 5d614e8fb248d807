// Package analytics publishes product events to PostHog.
package analytics

import (
	"context"
	"log/slog"

	"github.com/SscSPs/investment_ledger_app/internal/core/ports/gateways"
	"github.com/posthog/posthog-go"
)

// PosthogPublisher wraps posthog.Client so callers never deal with a missing client.
type PosthogPublisher struct {
	client posthog.Client
	logger *slog.Logger
}

var _ gateways.EventPublisher = (*PosthogPublisher)(nil)

// NewPublisher returns a PostHog publisher, or a no-op publisher when apiKey is empty
// or the client cannot be created.
func NewPublisher(apiKey, endpoint string, logger *slog.Logger) gateways.EventPublisher {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, analytics events are disabled.")
		return NoopPublisher{}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client, analytics events are disabled.", slog.String("error", err.Error()))
		return NoopPublisher{}
	}
	logger.Info("Posthog client initialized", slog.String("endpoint", endpoint))
	return &PosthogPublisher{client: client, logger: logger}
}

// Publish enqueues the event. Delivery happens in the client's background batcher.
func (p *PosthogPublisher) Publish(_ context.Context, distinctID string, event string, properties map[string]any) {
	if distinctID == "" || event == "" {
		return
	}
	err := p.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil {
		p.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes queued events.
func (p *PosthogPublisher) Close() error {
	return p.client.Close()
}

// NoopPublisher discards every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, string, map[string]any) {}

func (NoopPublisher) Close() error { return nil }
