package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/skysatisfy/skysatisfy/internal/application/dto"
	"github.com/skysatisfy/skysatisfy/internal/domain/event"
	"github.com/skysatisfy/skysatisfy/internal/domain/port"
	"github.com/skysatisfy/skysatisfy/internal/domain/service"
	"github.com/skysatisfy/skysatisfy/internal/ml/boost"
	"github.com/skysatisfy/skysatisfy/internal/ml/evaluation"
	"github.com/skysatisfy/skysatisfy/pkg/observability"
)

// Progress receives callbacks while a model is trained or evaluated. Either
// field may be nil.
type Progress struct {
	OnFold  evaluation.FoldFunc
	OnRound boost.RoundFunc
}

// TrainModel is the use case for fitting, evaluating and persisting a model.
type TrainModel struct {
	source      port.TrainingDataSource
	models      port.ModelStore
	metrics     port.MetricsStore
	publisher   port.EventPublisher
	instruments *observability.Instruments
	logger      *slog.Logger
	params      boost.Params
	kfold       evaluation.KFold
}

// NewTrainModel creates a new TrainModel use case.
func NewTrainModel(
	source port.TrainingDataSource,
	models port.ModelStore,
	metrics port.MetricsStore,
	publisher port.EventPublisher,
	instruments *observability.Instruments,
	logger *slog.Logger,
	params boost.Params,
	kfold evaluation.KFold,
) *TrainModel {
	return &TrainModel{
		source:      source,
		models:      models,
		metrics:     metrics,
		publisher:   publisher,
		instruments: instruments,
		logger:      logger,
		params:      params,
		kfold:       kfold,
	}
}

// Execute loads the dataset, trains the final model on every row,
// cross-validates the same parameters, and saves both artifacts.
func (uc *TrainModel) Execute(ctx context.Context, progress Progress) (dto.TrainResult, error) {
	ctx, span := tracer.Start(ctx, "TrainModel")
	defer span.End()

	res, err := uc.execute(ctx, progress)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "training failed")
		uc.instruments.RecordTrainingRun(ctx, observability.OutcomeFailure)
		return dto.TrainResult{}, err
	}
	span.SetAttributes(attribute.Int("dataset.rows", res.Rows))
	uc.instruments.RecordTrainingRun(ctx, observability.OutcomeSuccess)
	return res, nil
}

func (uc *TrainModel) execute(ctx context.Context, progress Progress) (dto.TrainResult, error) {
	runID := uuid.New()
	logger := uc.logger.With(slog.String("run_id", runID.String()))

	ds, err := loadDataset(ctx, uc.source)
	if err != nil {
		return dto.TrainResult{}, err
	}
	logger.Info("training model", slog.Int("rows", ds.Len()), slog.Int("rounds", uc.params.NumBoostRound))

	var trainOpts []boost.Option
	if progress.OnRound != nil {
		trainOpts = append(trainOpts, boost.WithRoundCallback(progress.OnRound))
	}
	booster, err := boost.Train(ctx, ds, uc.params, trainOpts...)
	if err != nil {
		return dto.TrainResult{}, fmt.Errorf("failed to train model: %w", err)
	}

	logger.Info("cross-validating model", slog.Int("folds", uc.kfold.Splits))
	var evalOpts []evaluation.Option
	if progress.OnFold != nil {
		evalOpts = append(evalOpts, evaluation.WithFoldCallback(progress.OnFold))
	}
	metrics, err := evaluation.Evaluate(ctx, ds, uc.params, uc.kfold, evalOpts...)
	if err != nil {
		return dto.TrainResult{}, fmt.Errorf("failed to evaluate model: %w", err)
	}
	summary, err := evaluation.Summarize(metrics)
	if err != nil {
		return dto.TrainResult{}, fmt.Errorf("failed to summarize metrics: %w", err)
	}

	if err := uc.models.Save(ctx, booster); err != nil {
		return dto.TrainResult{}, fmt.Errorf("failed to save model: %w", err)
	}
	if err := uc.metrics.Save(ctx, metrics); err != nil {
		return dto.TrainResult{}, fmt.Errorf("failed to save metrics: %w", err)
	}
	trainedAt, err := uc.models.TrainedAt(ctx)
	if err != nil {
		return dto.TrainResult{}, fmt.Errorf("failed to read model date: %w", err)
	}

	logger.Info("model saved",
		slog.Int("trees", len(booster.Trees)),
		slog.String("auc", summary[evaluation.MetricAUC]),
		slog.String("f1", summary[evaluation.MetricF1]),
	)

	evt := event.NewModelTrained(runID, ds.Len(), summary, trainedAt)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		logger.Warn("failed to publish training event", slog.String("error", err.Error()))
	}

	return dto.TrainResult{
		RunID:     runID,
		Rows:      ds.Len(),
		Trees:     len(booster.Trees),
		Metrics:   metrics,
		Summary:   summary,
		TrainedAt: trainedAt,
	}, nil
}

// loadDataset reads the labeled passengers and encodes them for the booster.
func loadDataset(ctx context.Context, source port.TrainingDataSource) (*boost.Dataset, error) {
	rows, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load training data: %w", err)
	}

	x, y := service.EncodeAll(rows)
	ds, err := boost.NewDataset(x, y, service.FeatureNames[:])
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset: %w", err)
	}
	return ds, nil
}
