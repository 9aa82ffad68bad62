package messaging_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skysatisfy/skysatisfy/internal/domain/event"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/messaging"
)

// queueReader serves queued messages, then blocks until ctx is done.
type queueReader struct {
	queue     []kafkago.Message
	committed []int64
	closed    bool
}

func (r *queueReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.queue) == 0 {
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	m := r.queue[0]
	r.queue = r.queue[1:]
	return m, nil
}

func (r *queueReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *queueReader) Close() error {
	r.closed = true
	return nil
}

func TestKafkaConsumer_RoundTrip(t *testing.T) {
	w := &recordingWriter{}
	pub := messaging.NewKafkaPublisherWithWriter(w, "skysatisfy.events", discardLogger())
	predictionID := uuid.New()
	made := event.NewPredictionMade(predictionID, 0.91, "satisfied", "business", "business_travel")
	require.NoError(t, pub.Publish(context.Background(), made))

	msgs := make([]kafkago.Message, len(w.msgs))
	for i, m := range w.msgs {
		m.Offset = int64(i)
		msgs[i] = m
	}
	reader := &queueReader{queue: msgs}

	ctx, cancel := context.WithCancel(context.Background())
	var got []messaging.Envelope
	consumer := messaging.NewKafkaConsumerWithReader(reader, func(_ context.Context, env messaging.Envelope) error {
		got = append(got, env)
		cancel()
		return nil
	}, discardLogger())

	require.NoError(t, consumer.Start(ctx))
	require.Len(t, got, 1)

	env := got[0]
	assert.Equal(t, event.EventTypePredictionMade, env.EventType)
	assert.Equal(t, made.EventID().String(), env.EventID)
	assert.Equal(t, predictionID.String(), env.AggregateID)
	assert.WithinDuration(t, made.OccurredAt(), env.OccurredAt, time.Second)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, "satisfied", payload["verdict"])

	assert.Equal(t, []int64{0}, reader.committed)
	require.NoError(t, consumer.Close())
	assert.True(t, reader.closed)
}

func TestKafkaConsumer_HandlerErrorStopsBeforeCommit(t *testing.T) {
	errBadPayload := errors.New("bad payload")
	reader := &queueReader{queue: []kafkago.Message{{Offset: 6}, {Offset: 7}, {Offset: 8}}}

	var seen []int64
	consumer := messaging.NewKafkaConsumerWithReader(reader, func(_ context.Context, env messaging.Envelope) error {
		seen = append(seen, env.Offset)
		if env.Offset == 7 {
			return errBadPayload
		}
		return nil
	}, discardLogger())

	err := consumer.Start(context.Background())
	require.ErrorIs(t, err, errBadPayload)
	assert.ErrorContains(t, err, "offset 7")

	assert.Equal(t, []int64{6, 7}, seen, "nothing after the failed message is handled")
	assert.Equal(t, []int64{6}, reader.committed, "the failed message stays uncommitted")
	assert.Len(t, reader.queue, 1)
}
