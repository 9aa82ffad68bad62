package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skysatisfy/skysatisfy/internal/application/dto"
	"github.com/skysatisfy/skysatisfy/internal/application/usecase"
	"github.com/skysatisfy/skysatisfy/internal/domain/event"
	"github.com/skysatisfy/skysatisfy/internal/domain/port"
	"github.com/skysatisfy/skysatisfy/internal/ml/boost"
	"github.com/skysatisfy/skysatisfy/internal/ml/evaluation"
)

func fastParams() boost.Params {
	p := boost.DefaultParams()
	p.NumBoostRound = 5
	return p
}

func newTrainModel(source *mockDataSource, models *mockModelStore, metrics *mockMetricsStore, publisher *mockEventPublisher) *usecase.TrainModel {
	return usecase.NewTrainModel(source, models, metrics, publisher, nil, discardLogger(),
		fastParams(), evaluation.DefaultKFold())
}

func TestTrainModel_Execute(t *testing.T) {
	source := &mockDataSource{rows: boardingRows(120)}
	models := &mockModelStore{}
	metrics := &mockMetricsStore{}
	publisher := &mockEventPublisher{}
	uc := newTrainModel(source, models, metrics, publisher)

	var rounds, folds int
	res, err := uc.Execute(context.Background(), usecase.Progress{
		OnRound: func(int, int) { rounds++ },
		OnFold:  func(int, int) { folds++ },
	})
	require.NoError(t, err)

	assert.Equal(t, 120, res.Rows)
	assert.Equal(t, 5, res.Trees)
	assert.Equal(t, 5, rounds, "round callback covers the final model only")
	assert.Equal(t, 5, folds)
	assert.Equal(t, 5, res.Metrics.Folds())
	assert.Len(t, res.Summary, 4)
	assert.Equal(t, models.trainedAt, res.TrainedAt)

	require.NotNil(t, models.booster)
	require.NotNil(t, metrics.metrics)
	assert.Equal(t, res.Metrics, *metrics.metrics)

	for _, auc := range res.Metrics.AUC {
		assert.Greater(t, auc, 0.9)
	}

	require.Len(t, publisher.published, 1)
	trained, ok := publisher.published[0].(event.ModelTrained)
	require.True(t, ok)
	assert.Equal(t, res.RunID, trained.RunID)
	assert.Equal(t, 120, trained.Rows)
	assert.Equal(t, map[string]string(res.Summary), trained.Metrics)
}

func TestTrainModel_Deterministic(t *testing.T) {
	run := func() dto.TrainResult {
		uc := newTrainModel(&mockDataSource{rows: boardingRows(90)}, &mockModelStore{}, &mockMetricsStore{}, &mockEventPublisher{})
		res, err := uc.Execute(context.Background(), usecase.Progress{})
		require.NoError(t, err)
		return res
	}

	assert.Equal(t, run().Metrics, run().Metrics)
}

func TestTrainModel_Failures(t *testing.T) {
	t.Run("data source error", func(t *testing.T) {
		models := &mockModelStore{}
		uc := newTrainModel(&mockDataSource{err: errBoom}, models, &mockMetricsStore{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), usecase.Progress{})
		assert.ErrorIs(t, err, errBoom)
		assert.Zero(t, models.saves)
	})

	t.Run("empty dataset", func(t *testing.T) {
		uc := newTrainModel(&mockDataSource{}, &mockModelStore{}, &mockMetricsStore{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), usecase.Progress{})
		assert.ErrorIs(t, err, boost.ErrInvalidDataset)
	})

	t.Run("model store error", func(t *testing.T) {
		metrics := &mockMetricsStore{}
		uc := newTrainModel(&mockDataSource{rows: boardingRows(60)}, &mockModelStore{saveErr: errBoom}, metrics, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), usecase.Progress{})
		assert.ErrorIs(t, err, errBoom)
		assert.Nil(t, metrics.metrics)
	})

	t.Run("publish error is tolerated", func(t *testing.T) {
		uc := newTrainModel(&mockDataSource{rows: boardingRows(60)}, &mockModelStore{}, &mockMetricsStore{},
			&mockEventPublisher{publishErr: errBoom})

		_, err := uc.Execute(context.Background(), usecase.Progress{})
		assert.NoError(t, err)
	})
}

func TestEvaluateModel_Execute(t *testing.T) {
	uc := usecase.NewEvaluateModel(&mockDataSource{rows: boardingRows(100)}, fastParams(), evaluation.DefaultKFold())

	res, err := uc.Execute(context.Background(), usecase.Progress{})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Rows)
	assert.Equal(t, 5, res.Metrics.Folds())
	assert.Contains(t, res.Summary[evaluation.MetricAUC], " ± ")
}

func TestGetModelInfo_Execute(t *testing.T) {
	models := &mockModelStore{}
	metrics := &mockMetricsStore{}
	uc := usecase.NewGetModelInfo(models, metrics)

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, port.ErrModelNotFound)

	train := newTrainModel(&mockDataSource{rows: boardingRows(60)}, models, metrics, &mockEventPublisher{})
	_, err = train.Execute(context.Background(), usecase.Progress{})
	require.NoError(t, err)

	info, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "GradientBoostedTrees", info.ModelType)
	assert.Equal(t, "2024-03-09", info.TrainingDate)
	assert.ElementsMatch(t, []string{"auc", "precision", "recall", "f1"}, keys(info.Metrics))
}

func TestEnsureModel_Execute(t *testing.T) {
	t.Run("trains when artifacts are missing", func(t *testing.T) {
		models := &mockModelStore{}
		metrics := &mockMetricsStore{}
		trainer := newTrainModel(&mockDataSource{rows: boardingRows(60)}, models, metrics, &mockEventPublisher{})
		uc := usecase.NewEnsureModel(models, metrics, trainer, discardLogger())

		b, err := uc.Execute(context.Background())
		require.NoError(t, err)
		assert.Same(t, models.booster, b)
		assert.Equal(t, 1, models.saves)

		_, err = uc.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, models.saves, "existing artifacts are reused")
	})

	t.Run("retrains when only metrics are missing", func(t *testing.T) {
		models := &mockModelStore{}
		metrics := &mockMetricsStore{}
		trainer := newTrainModel(&mockDataSource{rows: boardingRows(60)}, models, metrics, &mockEventPublisher{})
		_, err := trainer.Execute(context.Background(), usecase.Progress{})
		require.NoError(t, err)
		metrics.metrics = nil

		_, err = usecase.NewEnsureModel(models, metrics, trainer, discardLogger()).Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, models.saves)
		assert.NotNil(t, metrics.metrics)
	})

	t.Run("training failure is returned", func(t *testing.T) {
		models := &mockModelStore{}
		metrics := &mockMetricsStore{}
		trainer := newTrainModel(&mockDataSource{err: errBoom}, models, metrics, &mockEventPublisher{})

		_, err := usecase.NewEnsureModel(models, metrics, trainer, discardLogger()).Execute(context.Background())
		assert.ErrorIs(t, err, errBoom)
	})
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
