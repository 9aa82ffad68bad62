package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"

	"github.com/skysatisfy/skysatisfy/internal/domain/model"
	"github.com/skysatisfy/skysatisfy/internal/domain/port"
)

// PredictionRepository implements port.PredictionRepository as a bounded
// in-process LRU. The oldest predictions are evicted once capacity is reached.
type PredictionRepository struct {
	cache *lru.Cache
}

// NewPredictionRepository creates a log holding at most size predictions.
func NewPredictionRepository(size int) (*PredictionRepository, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("memory: create prediction cache: %w", err)
	}
	return &PredictionRepository{cache: cache}, nil
}

// Save stores the prediction under its id.
func (r *PredictionRepository) Save(_ context.Context, p *model.Prediction) error {
	r.cache.Add(p.ID(), p)
	return nil
}

// FindByID returns port.ErrPredictionNotFound for unknown or evicted ids.
func (r *PredictionRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Prediction, error) {
	v, ok := r.cache.Get(id)
	if !ok {
		return nil, port.ErrPredictionNotFound
	}
	return v.(*model.Prediction), nil
}

// Len returns the number of stored predictions.
func (r *PredictionRepository) Len() int {
	return r.cache.Len()
}
