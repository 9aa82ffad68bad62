package ml

import (
	"fmt"
	"slices"

	"github.com/skysatisfy/skysatisfy/internal/domain/service"
	"github.com/skysatisfy/skysatisfy/internal/ml/boost"
)

// BoosterScorer implements service.Scorer with an in-process booster. The
// booster is read-only after construction, so Score is safe for concurrent use.
type BoosterScorer struct {
	booster *boost.Booster
}

// NewBoosterScorer wraps b after checking that it was trained on the encoder's
// feature layout.
func NewBoosterScorer(b *boost.Booster) (*BoosterScorer, error) {
	if b.NumFeatures != service.NumFeatures {
		return nil, fmt.Errorf("%w: model has %d features, encoder produces %d",
			boost.ErrFeatureMismatch, b.NumFeatures, service.NumFeatures)
	}
	if b.FeatureNames != nil && !slices.Equal(b.FeatureNames, service.FeatureNames[:]) {
		return nil, fmt.Errorf("%w: model features %v, encoder features %v",
			boost.ErrFeatureMismatch, b.FeatureNames, service.FeatureNames)
	}
	return &BoosterScorer{booster: b}, nil
}

// Score returns the probability that the passenger is satisfied.
func (s *BoosterScorer) Score(features service.FeatureVector) (float64, error) {
	return s.booster.Predict(features[:])
}

// Booster returns the wrapped model.
func (s *BoosterScorer) Booster() *boost.Booster {
	return s.booster
}
