package boost

import (
	"fmt"
	"math"
)

// Booster is a trained ensemble of regression trees. It is immutable after
// training or loading and safe for concurrent prediction.
type Booster struct {
	Params       Params   `json:"params"`
	FeatureNames []string `json:"feature_names,omitempty"`
	Trees        []Tree   `json:"trees"`
	BaseMargin   float64  `json:"base_margin"`
	NumFeatures  int      `json:"num_features"`
}

// Margin returns the raw (log-odds) score of a row without validation.
func (b *Booster) Margin(row []float64) float64 {
	m := b.BaseMargin
	for i := range b.Trees {
		m += b.Trees[i].Predict(row)
	}
	return m
}

// Predict returns the probability of the positive class for one row.
func (b *Booster) Predict(row []float64) (float64, error) {
	if len(row) != b.NumFeatures {
		return 0, fmt.Errorf("%w: got %d features, want %d", ErrFeatureMismatch, len(row), b.NumFeatures)
	}
	return sigmoid(b.Margin(row)), nil
}

// PredictBatch returns one probability per row.
func (b *Booster) PredictBatch(rows [][]float64) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, row := range rows {
		p, err := b.Predict(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}

// PredictDataset scores every row of a dataset.
func (b *Booster) PredictDataset(ds *Dataset) ([]float64, error) {
	return b.PredictBatch(ds.features)
}

// Validate checks the structural integrity of a loaded booster.
func (b *Booster) Validate() error {
	if b.NumFeatures < 1 {
		return fmt.Errorf("boost: booster has %d features", b.NumFeatures)
	}
	if b.FeatureNames != nil && len(b.FeatureNames) != b.NumFeatures {
		return fmt.Errorf("boost: %d feature names for %d features", len(b.FeatureNames), b.NumFeatures)
	}
	for ti, t := range b.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("boost: tree %d is empty", ti)
		}
		for ni, n := range t.Nodes {
			if n.Leaf {
				continue
			}
			if n.Feature < 0 || n.Feature >= b.NumFeatures {
				return fmt.Errorf("boost: tree %d node %d splits on feature %d", ti, ni, n.Feature)
			}
			// Children are always appended after their parent, which rules out cycles.
			if n.Left <= ni || n.Right <= ni || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
				return fmt.Errorf("boost: tree %d node %d has invalid children", ti, ni)
			}
		}
	}
	return nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func logit(p float64) float64 {
	return math.Log(p / (1 - p))
}
