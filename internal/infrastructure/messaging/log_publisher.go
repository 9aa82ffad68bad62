package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/skysatisfy/skysatisfy/internal/domain/event"
)

// LogPublisher implements port.EventPublisher by logging events. It is used
// when no Kafka brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a new logging event publisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs each event with its JSON payload at debug level.
func (p *LogPublisher) Publish(_ context.Context, events ...event.DomainEvent) error {
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.Info("domain event",
			slog.String("event_type", evt.EventType()),
			slog.String("aggregate_id", evt.AggregateID().String()),
		)
		p.logger.Debug("event payload",
			slog.String("event_type", evt.EventType()),
			slog.String("payload", string(payload)),
		)
	}
	return nil
}

// Close is a no-op.
func (p *LogPublisher) Close() error { return nil }
