package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skysatisfy/skysatisfy/internal/application/dto"
	"github.com/skysatisfy/skysatisfy/internal/domain/port"
)

// GetPrediction is the use case for reading a logged prediction.
type GetPrediction struct {
	repo port.PredictionRepository
}

// NewGetPrediction creates a new GetPrediction use case.
func NewGetPrediction(repo port.PredictionRepository) *GetPrediction {
	return &GetPrediction{repo: repo}
}

// Execute retrieves a prediction by ID. Unknown ids wrap
// port.ErrPredictionNotFound.
func (uc *GetPrediction) Execute(ctx context.Context, id uuid.UUID) (dto.PredictionRecord, error) {
	prediction, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return dto.PredictionRecord{}, fmt.Errorf("failed to find prediction %s: %w", id, err)
	}

	return dto.RecordFromPrediction(prediction), nil
}
