package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skysatisfy/skysatisfy/internal/domain/model"
	"github.com/skysatisfy/skysatisfy/internal/domain/port"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/memory"
)

func newPrediction(t *testing.T, score float64) *model.Prediction {
	t.Helper()
	passenger, err := model.NewPassenger("loyal_customer", 40, "business_travel", 800, 3, 4, "eco_plus")
	require.NoError(t, err)
	p, err := model.NewPrediction(passenger, score, time.Time{})
	require.NoError(t, err)
	return p
}

func TestPredictionRepository(t *testing.T) {
	ctx := context.Background()
	repo, err := memory.NewPredictionRepository(10)
	require.NoError(t, err)

	p := newPrediction(t, 0.7)
	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Same(t, p, found)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, port.ErrPredictionNotFound)
}

func TestPredictionRepository_Evicts(t *testing.T) {
	ctx := context.Background()
	repo, err := memory.NewPredictionRepository(2)
	require.NoError(t, err)

	first := newPrediction(t, 0.1)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, newPrediction(t, 0.2)))
	require.NoError(t, repo.Save(ctx, newPrediction(t, 0.3)))

	assert.Equal(t, 2, repo.Len())
	_, err = repo.FindByID(ctx, first.ID())
	assert.ErrorIs(t, err, port.ErrPredictionNotFound)
}

func TestNewPredictionRepository_InvalidSize(t *testing.T) {
	_, err := memory.NewPredictionRepository(0)
	assert.Error(t, err)
}
