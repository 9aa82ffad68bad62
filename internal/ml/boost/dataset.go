package boost

import (
	"fmt"
	"math"
)

// Dataset is a dense row-major feature matrix with binary labels.
type Dataset struct {
	features     [][]float64
	labels       []float64
	featureNames []string
}

// NewDataset validates and wraps a feature matrix. featureNames may be nil;
// when given it must match the row width.
func NewDataset(features [][]float64, labels []float64, featureNames []string) (*Dataset, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDataset)
	}
	if len(features) != len(labels) {
		return nil, fmt.Errorf("%w: %d rows but %d labels", ErrInvalidDataset, len(features), len(labels))
	}

	width := len(features[0])
	if width == 0 {
		return nil, fmt.Errorf("%w: rows have no features", ErrInvalidDataset)
	}
	if featureNames != nil && len(featureNames) != width {
		return nil, fmt.Errorf("%w: %d feature names for %d columns", ErrInvalidDataset, len(featureNames), width)
	}

	for i, row := range features {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidDataset, i, len(row), width)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: row %d column %d is not finite", ErrInvalidDataset, i, j)
			}
		}
		if labels[i] != 0 && labels[i] != 1 {
			return nil, fmt.Errorf("%w: label %d is %v, want 0 or 1", ErrInvalidDataset, i, labels[i])
		}
	}

	return &Dataset{
		features:     features,
		labels:       labels,
		featureNames: featureNames,
	}, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.labels) }

// NumFeatures returns the row width.
func (d *Dataset) NumFeatures() int { return len(d.features[0]) }

// Row returns the i-th feature row. The returned slice must not be modified.
func (d *Dataset) Row(i int) []float64 { return d.features[i] }

// Label returns the i-th label.
func (d *Dataset) Label(i int) float64 { return d.labels[i] }

// Labels returns the label vector. The returned slice must not be modified.
func (d *Dataset) Labels() []float64 { return d.labels }

// FeatureNames returns the column names, or nil if none were given.
func (d *Dataset) FeatureNames() []string { return d.featureNames }

// Slice returns a dataset view over the given row indices. Rows are shared,
// not copied.
func (d *Dataset) Slice(indices []int) *Dataset {
	features := make([][]float64, len(indices))
	labels := make([]float64, len(indices))
	for k, i := range indices {
		features[k] = d.features[i]
		labels[k] = d.labels[i]
	}
	return &Dataset{
		features:     features,
		labels:       labels,
		featureNames: d.featureNames,
	}
}
