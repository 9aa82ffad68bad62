package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/skysatisfy/skysatisfy/internal/ml/evaluation"
)

// ModelType names the kind of model served.
const ModelType = "GradientBoostedTrees"

// TrainingDateLayout formats the model's training date.
const TrainingDateLayout = "2006-01-02"

// ModelInfoResponse describes the served model.
type ModelInfoResponse struct {
	Metrics      evaluation.Summary `json:"metrics"`
	ModelType    string             `json:"model_type"`
	TrainingDate string             `json:"training_date"`
}

// TrainResult is the output DTO of a training run.
type TrainResult struct {
	TrainedAt time.Time              `json:"trained_at"`
	Summary   evaluation.Summary     `json:"summary"`
	Metrics   evaluation.FoldMetrics `json:"metrics"`
	Rows      int                    `json:"rows"`
	Trees     int                    `json:"trees"`
	RunID     uuid.UUID              `json:"run_id"`
}

// EvaluateResult is the output DTO of a cross-validation run.
type EvaluateResult struct {
	Summary evaluation.Summary     `json:"summary"`
	Metrics evaluation.FoldMetrics `json:"metrics"`
	Rows    int                    `json:"rows"`
}
