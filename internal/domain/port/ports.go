package port

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/skysatisfy/skysatisfy/internal/domain/event"
	"github.com/skysatisfy/skysatisfy/internal/domain/model"
	"github.com/skysatisfy/skysatisfy/internal/ml/boost"
	"github.com/skysatisfy/skysatisfy/internal/ml/evaluation"
)

var (
	// ErrModelNotFound is returned when no model artifact has been saved yet.
	ErrModelNotFound = errors.New("model artifact not found")

	// ErrMetricsNotFound is returned when no metrics artifact has been saved yet.
	ErrMetricsNotFound = errors.New("metrics artifact not found")

	// ErrPredictionNotFound is returned when a prediction id is unknown.
	ErrPredictionNotFound = errors.New("prediction not found")
)

// ModelStore persists the trained booster.
type ModelStore interface {
	// Save writes the booster, replacing any previous artifact.
	Save(ctx context.Context, booster *boost.Booster) error

	// Load reads the booster. Returns ErrModelNotFound when absent.
	Load(ctx context.Context) (*boost.Booster, error)

	// Exists reports whether a model artifact is present.
	Exists(ctx context.Context) (bool, error)

	// TrainedAt returns the modification time of the model artifact.
	TrainedAt(ctx context.Context) (time.Time, error)
}

// MetricsStore persists per-fold cross-validation metrics.
type MetricsStore interface {
	Save(ctx context.Context, metrics evaluation.FoldMetrics) error

	// Load reads the metrics. Returns ErrMetricsNotFound when absent.
	Load(ctx context.Context) (evaluation.FoldMetrics, error)

	Exists(ctx context.Context) (bool, error)
}

// TrainingDataSource yields labeled passengers for training.
type TrainingDataSource interface {
	Load(ctx context.Context) ([]model.LabeledPassenger, error)
}

// PredictionRepository defines the persistence port for scored passengers.
type PredictionRepository interface {
	Save(ctx context.Context, prediction *model.Prediction) error

	// FindByID returns ErrPredictionNotFound when the id is unknown.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Prediction, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
