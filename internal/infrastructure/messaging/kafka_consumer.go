package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Envelope is a consumed event with the metadata the publisher attached.
type Envelope struct {
	OccurredAt  time.Time       `json:"occurred_at"`
	EventType   string          `json:"event_type"`
	EventID     string          `json:"event_id"`
	AggregateID string          `json:"aggregate_id"`
	Payload     json.RawMessage `json:"payload"`
	Offset      int64           `json:"offset"`
	Partition   int             `json:"partition"`
}

// EnvelopeHandler processes one consumed event. A returned error stops the
// consumer before the message is committed, so the group resumes at it.
type EnvelopeHandler func(ctx context.Context, env Envelope) error

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaConsumer reads the events topic written by KafkaPublisher.
type KafkaConsumer struct {
	reader  MessageReader
	handler EnvelopeHandler
	logger  *slog.Logger
}

// NewKafkaConsumer creates a consumer in the given group.
func NewKafkaConsumer(brokers []string, topic, group string, handler EnvelopeHandler, logger *slog.Logger) *KafkaConsumer {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  group,
		MinBytes: 1,
		MaxBytes: 10 * 1024 * 1024, // 10 MB
	})
	return NewKafkaConsumerWithReader(r, handler, logger)
}

// NewKafkaConsumerWithReader creates a consumer over an existing reader.
func NewKafkaConsumerWithReader(r MessageReader, handler EnvelopeHandler, logger *slog.Logger) *KafkaConsumer {
	return &KafkaConsumer{reader: r, handler: handler, logger: logger}
}

// Start consumes messages until ctx is cancelled or the handler fails.
// Offsets are committed per message, in order, only after the handler
// succeeds.
func (c *KafkaConsumer) Start(ctx context.Context) error {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("consumer stopping due to context cancellation")
				return nil
			}
			return fmt.Errorf("fetching message: %w", err)
		}

		if err := c.handler(ctx, toEnvelope(m)); err != nil {
			c.logger.Error("handler error",
				"topic", m.Topic,
				"partition", m.Partition,
				"offset", m.Offset,
				"error", err,
			)
			return fmt.Errorf("handling message at offset %d: %w", m.Offset, err)
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.logger.Error("commit error",
				"topic", m.Topic,
				"partition", m.Partition,
				"offset", m.Offset,
				"error", err,
			)
		}
	}
}

// Close closes the reader.
func (c *KafkaConsumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("closing kafka reader: %w", err)
	}
	return nil
}

func toEnvelope(m kafkago.Message) Envelope {
	env := Envelope{
		AggregateID: string(m.Key),
		Payload:     json.RawMessage(m.Value),
		OccurredAt:  m.Time,
		Partition:   m.Partition,
		Offset:      m.Offset,
	}
	for _, h := range m.Headers {
		switch h.Key {
		case headerEventType:
			env.EventType = string(h.Value)
		case headerEventID:
			env.EventID = string(h.Value)
		}
	}
	return env
}
