package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skysatisfy/skysatisfy/internal/domain/event"
	"github.com/skysatisfy/skysatisfy/internal/domain/model"
	"github.com/skysatisfy/skysatisfy/internal/domain/valueobject"
)

func validPassenger(t *testing.T) model.Passenger {
	t.Helper()
	p, err := model.NewPassenger("loyal_customer", 36, "business_travel", 2000, 5, 5, "business")
	require.NoError(t, err)
	return p
}

func TestNewPassenger(t *testing.T) {
	t.Run("valid passenger", func(t *testing.T) {
		p := validPassenger(t)
		assert.Equal(t, valueobject.CustomerTypeLoyal, p.CustomerType)
		assert.Equal(t, valueobject.TravelTypeBusiness, p.TypeOfTravel)
		assert.Equal(t, valueobject.TravelClassBusiness, p.Class)
		assert.Equal(t, 36, p.Age)
		assert.Equal(t, 2000, p.FlightDistance)
	})

	t.Run("boundary values accepted", func(t *testing.T) {
		_, err := model.NewPassenger("disloyal_customer", 0, "personal_travel", 0, 0, 0, "eco")
		require.NoError(t, err)
		_, err = model.NewPassenger("disloyal_customer", 120, "personal_travel", 0, 5, 5, "eco_plus")
		require.NoError(t, err)
	})

	t.Run("out of range", func(t *testing.T) {
		tests := []struct {
			name                  string
			age, booking, boarding int
		}{
			{"age too high", 121, 3, 3},
			{"negative age", -1, 3, 3},
			{"booking too high", 30, 6, 3},
			{"boarding negative", 30, 3, -1},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := model.NewPassenger("loyal_customer", tt.age, "business_travel", 100, tt.booking, tt.boarding, "eco")
				assert.ErrorIs(t, err, model.ErrOutOfRange)
			})
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := model.NewPassenger("loyal_customer", 30, "business_travel", 100, 3, 3, "first")
		assert.ErrorIs(t, err, valueobject.ErrUnknownCategory)
	})
}

func TestNewPrediction(t *testing.T) {
	t.Run("derives verdict and records event", func(t *testing.T) {
		trainedAt := time.Date(2024, 3, 9, 14, 0, 0, 0, time.FixedZone("CET", 3600))
		p, err := model.NewPrediction(validPassenger(t), 0.87, trainedAt)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, p.ID())
		assert.True(t, trainedAt.Equal(p.ModelTrainedAt()))
		assert.Equal(t, time.UTC, p.ModelTrainedAt().Location())
		assert.Equal(t, valueobject.VerdictSatisfied, p.Verdict())
		assert.False(t, p.CreatedAt().IsZero())

		evts := p.ClearEvents()
		require.Len(t, evts, 1)
		made, ok := evts[0].(event.PredictionMade)
		require.True(t, ok)
		assert.Equal(t, p.ID(), made.PredictionID)
		assert.Equal(t, "satisfied", made.Verdict)
	})

	t.Run("rejects score outside [0,1]", func(t *testing.T) {
		_, err := model.NewPrediction(validPassenger(t), 1.2, validTime())
		assert.Error(t, err)
	})

	t.Run("reconstruct has no events", func(t *testing.T) {
		id := uuid.New()
		p := model.ReconstructPrediction(id, validPassenger(t), 0.2, valueobject.VerdictNotSatisfied, validTime(), validTime())
		assert.Equal(t, id, p.ID())
		assert.Equal(t, validTime(), p.ModelTrainedAt())
		assert.Empty(t, p.ClearEvents())
	})
}

func validTime() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}
