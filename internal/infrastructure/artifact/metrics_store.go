package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	"github.com/skysatisfy/skysatisfy/internal/domain/port"
	"github.com/skysatisfy/skysatisfy/internal/ml/evaluation"
)

// MetricsStore implements port.MetricsStore as an indented JSON file.
type MetricsStore struct {
	fs   afero.Fs
	path string
}

// NewMetricsStore creates a MetricsStore persisting metrics at path on fs.
func NewMetricsStore(fsys afero.Fs, path string) *MetricsStore {
	return &MetricsStore{fs: fsys, path: path}
}

// Save writes the per-fold metrics.
func (s *MetricsStore) Save(ctx context.Context, metrics evaluation.FoldMetrics) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := metrics.Validate(); err != nil {
		return fmt.Errorf("refusing to save metrics: %w", err)
	}

	return writeAtomic(s.fs, s.path, func(f afero.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "    ")
		if err := enc.Encode(metrics); err != nil {
			return fmt.Errorf("failed to encode metrics: %w", err)
		}
		return nil
	})
}

// Load reads the per-fold metrics.
func (s *MetricsStore) Load(ctx context.Context) (evaluation.FoldMetrics, error) {
	if err := ctx.Err(); err != nil {
		return evaluation.FoldMetrics{}, err
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return evaluation.FoldMetrics{}, port.ErrMetricsNotFound
		}
		return evaluation.FoldMetrics{}, fmt.Errorf("failed to read metrics: %w", err)
	}

	var m evaluation.FoldMetrics
	if err := json.Unmarshal(data, &m); err != nil {
		return evaluation.FoldMetrics{}, fmt.Errorf("failed to decode metrics %s: %w", s.path, err)
	}
	if err := m.Validate(); err != nil {
		return evaluation.FoldMetrics{}, fmt.Errorf("metrics %s are corrupt: %w", s.path, err)
	}
	return m, nil
}

// Exists reports whether the metrics file is present.
func (s *MetricsStore) Exists(_ context.Context) (bool, error) {
	return afero.Exists(s.fs, s.path)
}
