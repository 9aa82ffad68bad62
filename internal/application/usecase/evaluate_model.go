package usecase

import (
	"context"
	"fmt"

	"github.com/skysatisfy/skysatisfy/internal/application/dto"
	"github.com/skysatisfy/skysatisfy/internal/domain/port"
	"github.com/skysatisfy/skysatisfy/internal/ml/boost"
	"github.com/skysatisfy/skysatisfy/internal/ml/evaluation"
)

// EvaluateModel is the use case for cross-validating hyper-parameters
// without touching the saved artifacts.
type EvaluateModel struct {
	source port.TrainingDataSource
	params boost.Params
	kfold  evaluation.KFold
}

// NewEvaluateModel creates a new EvaluateModel use case.
func NewEvaluateModel(source port.TrainingDataSource, params boost.Params, kfold evaluation.KFold) *EvaluateModel {
	return &EvaluateModel{source: source, params: params, kfold: kfold}
}

// Execute runs k-fold cross-validation and summarizes the fold metrics.
func (uc *EvaluateModel) Execute(ctx context.Context, progress Progress) (dto.EvaluateResult, error) {
	ctx, span := tracer.Start(ctx, "EvaluateModel")
	defer span.End()

	ds, err := loadDataset(ctx, uc.source)
	if err != nil {
		return dto.EvaluateResult{}, err
	}

	var opts []evaluation.Option
	if progress.OnFold != nil {
		opts = append(opts, evaluation.WithFoldCallback(progress.OnFold))
	}
	metrics, err := evaluation.Evaluate(ctx, ds, uc.params, uc.kfold, opts...)
	if err != nil {
		return dto.EvaluateResult{}, fmt.Errorf("failed to evaluate model: %w", err)
	}

	summary, err := evaluation.Summarize(metrics)
	if err != nil {
		return dto.EvaluateResult{}, fmt.Errorf("failed to summarize metrics: %w", err)
	}

	return dto.EvaluateResult{Rows: ds.Len(), Metrics: metrics, Summary: summary}, nil
}
