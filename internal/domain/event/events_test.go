package event_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skysatisfy/skysatisfy/internal/domain/event"
)

func TestNewPredictionMade(t *testing.T) {
	id := uuid.New()
	evt := event.NewPredictionMade(id, 0.91, "satisfied", "business", "business_travel")

	assert.Equal(t, event.EventTypePredictionMade, evt.EventType())
	assert.Equal(t, id, evt.AggregateID())
	assert.Equal(t, "prediction", evt.AggregateType())
	assert.NotEqual(t, uuid.Nil, evt.EventID())
	assert.WithinDuration(t, time.Now(), evt.OccurredAt(), time.Minute)

	payload, err := json.Marshal(evt)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, event.EventTypePredictionMade, decoded["event_type"])
	assert.Equal(t, id.String(), decoded["prediction_id"])
	assert.Equal(t, "satisfied", decoded["verdict"])
}

func TestCollector(t *testing.T) {
	var c event.Collector
	c.Record(event.NewModelTrained(uuid.New(), 10, nil, time.Now()))
	c.Record(event.NewModelTrained(uuid.New(), 20, nil, time.Now()))

	evts := c.ClearEvents()
	assert.Len(t, evts, 2)
	assert.Empty(t, c.ClearEvents())
}
