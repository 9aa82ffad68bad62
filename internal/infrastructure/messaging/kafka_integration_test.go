//go:build integration

package messaging_test

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/skysatisfy/skysatisfy/internal/domain/event"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/messaging"
)

const integrationTopic = "skysatisfy.events"

func startKafka(ctx context.Context, t *testing.T) []string {
	t.Helper()

	container, err := tckafka.Run(ctx,
		"confluentinc/confluent-local:7.6.1",
		tckafka.WithClusterID("test-cluster"),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("warning: failed to terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	return brokers
}

func createTopic(ctx context.Context, t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.DialContext(ctx, "tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	cconn, err := kafkago.DialContext(ctx, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cconn.Close()

	require.NoError(t, cconn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func TestKafka_PublishThenConsume(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	brokers := startKafka(ctx, t)
	createTopic(ctx, t, brokers[0], integrationTopic)

	pub := messaging.NewKafkaPublisher(brokers, integrationTopic, discardLogger())
	predictionID := uuid.New()
	made := event.NewPredictionMade(predictionID, 0.87, "satisfied", "business", "business_travel")
	require.NoError(t, pub.Publish(ctx, made))
	require.NoError(t, pub.Close())

	consumeCtx, stop := context.WithCancel(ctx)
	defer stop()

	var got []messaging.Envelope
	consumer := messaging.NewKafkaConsumer(brokers, integrationTopic, "skysatisfy-it", func(_ context.Context, env messaging.Envelope) error {
		got = append(got, env)
		stop()
		return nil
	}, discardLogger())
	defer consumer.Close()

	require.NoError(t, consumer.Start(consumeCtx))

	require.Len(t, got, 1)
	assert.Equal(t, event.EventTypePredictionMade, got[0].EventType)
	assert.Equal(t, made.EventID().String(), got[0].EventID)
	assert.Equal(t, predictionID.String(), got[0].AggregateID)
	assert.Contains(t, string(got[0].Payload), `"verdict":"satisfied"`)
}
