package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/skysatisfy/skysatisfy/internal/domain/event"
)

// Header keys set on every published message.
const (
	headerEventType = "event_type"
	headerEventID   = "event_id"
)

// MessageWriter is the subset of *kafkago.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaPublisher implements port.EventPublisher using Kafka. Events are keyed
// by aggregate id so that all events of one aggregate land on one partition.
type KafkaPublisher struct {
	writer MessageWriter
	topic  string
	logger *slog.Logger
}

// NewKafkaPublisher creates a publisher writing to topic on the given brokers.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafkago.RequireAll,
	}
	return NewKafkaPublisherWithWriter(w, topic, logger)
}

// NewKafkaPublisherWithWriter creates a publisher over an existing writer.
func NewKafkaPublisherWithWriter(w MessageWriter, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic, logger: logger}
}

// Publish sends domain events to Kafka in a single batch.
func (p *KafkaPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", evt.EventType(), err)
		}

		msgs = append(msgs, kafkago.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: payload,
			Headers: []kafkago.Header{
				{Key: headerEventType, Value: []byte(evt.EventType())},
				{Key: headerEventID, Value: []byte(evt.EventID().String())},
			},
			Time: evt.OccurredAt(),
		})

		p.logger.Debug("publishing event",
			slog.String("event_type", evt.EventType()),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(payload)),
		)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", p.topic, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
