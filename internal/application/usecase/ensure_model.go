package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/skysatisfy/skysatisfy/internal/domain/port"
	"github.com/skysatisfy/skysatisfy/internal/ml/boost"
)

// EnsureModel makes sure both artifacts exist before the service starts,
// training synchronously when either is missing, and returns the model.
type EnsureModel struct {
	models  port.ModelStore
	metrics port.MetricsStore
	trainer *TrainModel
	logger  *slog.Logger
}

// NewEnsureModel creates a new EnsureModel use case.
func NewEnsureModel(models port.ModelStore, metrics port.MetricsStore, trainer *TrainModel, logger *slog.Logger) *EnsureModel {
	return &EnsureModel{models: models, metrics: metrics, trainer: trainer, logger: logger}
}

// Execute trains if needed, then loads the model from its store.
func (uc *EnsureModel) Execute(ctx context.Context) (*boost.Booster, error) {
	haveModel, err := uc.models.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check model artifact: %w", err)
	}
	haveMetrics, err := uc.metrics.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check metrics artifact: %w", err)
	}

	if !haveModel || !haveMetrics {
		uc.logger.Info("model artifacts missing, training",
			slog.Bool("model_present", haveModel),
			slog.Bool("metrics_present", haveMetrics),
		)
		if _, err := uc.trainer.Execute(ctx, Progress{}); err != nil {
			return nil, err
		}
	}

	booster, err := uc.models.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	uc.logger.Info("model loaded", slog.Int("trees", len(booster.Trees)))
	return booster, nil
}
