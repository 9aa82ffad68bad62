package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skysatisfy/skysatisfy/internal/domain/event"
	"github.com/skysatisfy/skysatisfy/internal/domain/valueobject"
)

// Prediction is the aggregate root for one scored passenger.
type Prediction struct {
	event.Collector
	createdAt      time.Time
	modelTrainedAt time.Time
	verdict        valueobject.Verdict
	passenger      Passenger
	score          float64
	id             uuid.UUID
}

// NewPrediction records a score for a passenger and derives its verdict.
// modelTrainedAt identifies the training run of the model that produced the
// score; it is zero when unknown.
func NewPrediction(passenger Passenger, score float64, modelTrainedAt time.Time) (*Prediction, error) {
	if score < 0 || score > 1 {
		return nil, fmt.Errorf("score must be between 0 and 1, got %f", score)
	}

	p := &Prediction{
		id:             uuid.New(),
		passenger:      passenger,
		score:          score,
		verdict:        valueobject.VerdictFromScore(score),
		modelTrainedAt: modelTrainedAt.UTC(),
		createdAt:      time.Now().UTC(),
	}

	p.Record(event.NewPredictionMade(
		p.id, p.score, p.verdict.String(),
		passenger.Class.String(), passenger.TypeOfTravel.String(),
	))

	return p, nil
}

// ReconstructPrediction rebuilds a Prediction from persisted data (no validation, no events).
func ReconstructPrediction(
	id uuid.UUID,
	passenger Passenger,
	score float64,
	verdict valueobject.Verdict,
	modelTrainedAt time.Time,
	createdAt time.Time,
) *Prediction {
	return &Prediction{
		id:             id,
		passenger:      passenger,
		score:          score,
		verdict:        verdict,
		modelTrainedAt: modelTrainedAt,
		createdAt:      createdAt,
	}
}

func (p *Prediction) ID() uuid.UUID                { return p.id }
func (p *Prediction) Passenger() Passenger         { return p.passenger }
func (p *Prediction) Score() float64               { return p.score }
func (p *Prediction) Verdict() valueobject.Verdict { return p.verdict }
func (p *Prediction) ModelTrainedAt() time.Time    { return p.modelTrainedAt }
func (p *Prediction) CreatedAt() time.Time         { return p.createdAt }
