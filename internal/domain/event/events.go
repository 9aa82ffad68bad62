package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	// EventTypePredictionMade is emitted when a passenger has been scored.
	EventTypePredictionMade = "satisfaction.prediction.made"

	// EventTypeModelTrained is emitted when a training run has persisted a
	// new model and its metrics.
	EventTypeModelTrained = "satisfaction.model.trained"

	aggregatePrediction  = "prediction"
	aggregateTrainingRun = "training_run"
)

// PredictionMade is published for every successful prediction.
type PredictionMade struct {
	BaseEvent
	PredictionID uuid.UUID `json:"prediction_id"`
	Score        float64   `json:"score"`
	Verdict      string    `json:"verdict"`
	Class        string    `json:"class"`
	TypeOfTravel string    `json:"type_of_travel"`
}

// NewPredictionMade creates a PredictionMade event for the given prediction.
func NewPredictionMade(predictionID uuid.UUID, score float64, verdict, class, typeOfTravel string) PredictionMade {
	return PredictionMade{
		BaseEvent:    NewBaseEvent(EventTypePredictionMade, predictionID, aggregatePrediction),
		PredictionID: predictionID,
		Score:        score,
		Verdict:      verdict,
		Class:        class,
		TypeOfTravel: typeOfTravel,
	}
}

// ModelTrained is published after a training run saved its artifacts.
type ModelTrained struct {
	BaseEvent
	RunID     uuid.UUID         `json:"run_id"`
	Rows      int               `json:"rows"`
	Metrics   map[string]string `json:"metrics"`
	TrainedAt time.Time         `json:"trained_at"`
}

// NewModelTrained creates a ModelTrained event.
func NewModelTrained(runID uuid.UUID, rows int, metrics map[string]string, trainedAt time.Time) ModelTrained {
	return ModelTrained{
		BaseEvent: NewBaseEvent(EventTypeModelTrained, runID, aggregateTrainingRun),
		RunID:     runID,
		Rows:      rows,
		Metrics:   metrics,
		TrainedAt: trainedAt,
	}
}
