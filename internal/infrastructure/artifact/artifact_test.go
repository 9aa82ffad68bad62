package artifact_test

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skysatisfy/skysatisfy/internal/domain/port"
	"github.com/skysatisfy/skysatisfy/internal/infrastructure/artifact"
	"github.com/skysatisfy/skysatisfy/internal/ml/boost"
	"github.com/skysatisfy/skysatisfy/internal/ml/evaluation"
)

func trainedBooster(t *testing.T) (*boost.Booster, [][]float64) {
	t.Helper()
	x := make([][]float64, 120)
	y := make([]float64, 120)
	for i := range x {
		x[i] = []float64{float64(i), float64(i % 5), float64(i % 2)}
		if i > 60 {
			y[i] = 1
		}
	}
	ds, err := boost.NewDataset(x, y, []string{"a", "b", "c"})
	require.NoError(t, err)

	params := boost.DefaultParams()
	params.NumBoostRound = 5
	b, err := boost.Train(context.Background(), ds, params)
	require.NoError(t, err)
	return b, x
}

func TestModelStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	store := artifact.NewModelStore(fs, "models/model.bin")

	exists, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, port.ErrModelNotFound)
	_, err = store.TrainedAt(ctx)
	assert.ErrorIs(t, err, port.ErrModelNotFound)

	original, rows := trainedBooster(t)
	require.NoError(t, store.Save(ctx, original))

	exists, err = store.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	tmpExists, err := afero.Exists(fs, "models/model.bin.tmp")
	require.NoError(t, err)
	assert.False(t, tmpExists)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	want, err := original.PredictBatch(rows)
	require.NoError(t, err)
	got, err := loaded.PredictBatch(rows)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, original.Params, loaded.Params)

	at, err := store.TrainedAt(ctx)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), at, time.Minute)
}

func TestModelStore_LoadCorrupt(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "model.bin", []byte("not snappy"), 0o644))

	_, err := artifact.NewModelStore(fs, "model.bin").Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, port.ErrModelNotFound)
}

func TestModelStore_SaveInvalid(t *testing.T) {
	store := artifact.NewModelStore(afero.NewMemMapFs(), "model.bin")
	assert.Error(t, store.Save(context.Background(), &boost.Booster{}))
}

func TestMetricsStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	store := artifact.NewMetricsStore(fs, "models/metrics.json")

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, port.ErrMetricsNotFound)

	m := evaluation.FoldMetrics{
		AUC:       []float64{0.93, 0.94},
		Precision: []float64{0.9, 0.91},
		Recall:    []float64{0.8, 0.82},
		F1:        []float64{0.85, 0.86},
	}
	require.NoError(t, store.Save(ctx, m))

	exists, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)

	raw, err := afero.ReadFile(fs, "models/metrics.json")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"auc": [`)
}

func TestMetricsStore_Invalid(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	store := artifact.NewMetricsStore(fs, "metrics.json")

	assert.Error(t, store.Save(ctx, evaluation.FoldMetrics{}))

	require.NoError(t, afero.WriteFile(fs, "metrics.json", []byte(`{"auc":[1],"f1":[]}`), 0o644))
	_, err := store.Load(ctx)
	assert.Error(t, err)
}
