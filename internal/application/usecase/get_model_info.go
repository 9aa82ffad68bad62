package usecase

import (
	"context"
	"fmt"

	"github.com/skysatisfy/skysatisfy/internal/application/dto"
	"github.com/skysatisfy/skysatisfy/internal/domain/port"
	"github.com/skysatisfy/skysatisfy/internal/ml/evaluation"
)

// GetModelInfo is the use case describing the served model.
type GetModelInfo struct {
	models  port.ModelStore
	metrics port.MetricsStore
}

// NewGetModelInfo creates a new GetModelInfo use case.
func NewGetModelInfo(models port.ModelStore, metrics port.MetricsStore) *GetModelInfo {
	return &GetModelInfo{models: models, metrics: metrics}
}

// Execute reports the model type, the date the model artifact was written,
// and the mean ± std of each cross-validation metric.
func (uc *GetModelInfo) Execute(ctx context.Context) (dto.ModelInfoResponse, error) {
	trainedAt, err := uc.models.TrainedAt(ctx)
	if err != nil {
		return dto.ModelInfoResponse{}, fmt.Errorf("failed to read model date: %w", err)
	}

	metrics, err := uc.metrics.Load(ctx)
	if err != nil {
		return dto.ModelInfoResponse{}, fmt.Errorf("failed to load metrics: %w", err)
	}

	summary, err := evaluation.Summarize(metrics)
	if err != nil {
		return dto.ModelInfoResponse{}, fmt.Errorf("failed to summarize metrics: %w", err)
	}

	return dto.ModelInfoResponse{
		ModelType:    dto.ModelType,
		TrainingDate: trainedAt.Local().Format(dto.TrainingDateLayout),
		Metrics:      summary,
	}, nil
}
