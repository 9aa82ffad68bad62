package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/golang/snappy"
	"github.com/spf13/afero"

	"github.com/skysatisfy/skysatisfy/internal/domain/port"
	"github.com/skysatisfy/skysatisfy/internal/ml/boost"
)

// ModelStore implements port.ModelStore as a snappy-framed JSON file.
type ModelStore struct {
	fs   afero.Fs
	path string
}

// NewModelStore creates a ModelStore persisting the booster at path on fs.
func NewModelStore(fsys afero.Fs, path string) *ModelStore {
	return &ModelStore{fs: fsys, path: path}
}

// Path returns the location of the model file.
func (s *ModelStore) Path() string { return s.path }

// Save writes the booster to a temporary file and renames it into place so a
// concurrent reader never sees a partial artifact.
func (s *ModelStore) Save(ctx context.Context, booster *boost.Booster) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := booster.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid model: %w", err)
	}

	return writeAtomic(s.fs, s.path, func(f afero.File) error {
		w := snappy.NewBufferedWriter(f)
		if err := json.NewEncoder(w).Encode(booster); err != nil {
			return fmt.Errorf("failed to encode model: %w", err)
		}
		return w.Close()
	})
}

// Load reads and validates the booster.
func (s *ModelStore) Load(ctx context.Context) (*boost.Booster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.fs.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, port.ErrModelNotFound
		}
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer f.Close()

	var b boost.Booster
	if err := json.NewDecoder(snappy.NewReader(f)).Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to decode model %s: %w", s.path, err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("model %s is corrupt: %w", s.path, err)
	}
	return &b, nil
}

// Exists reports whether the model file is present.
func (s *ModelStore) Exists(_ context.Context) (bool, error) {
	return afero.Exists(s.fs, s.path)
}

// TrainedAt returns the modification time of the model file.
func (s *ModelStore) TrainedAt(_ context.Context) (time.Time, error) {
	info, err := s.fs.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, port.ErrModelNotFound
		}
		return time.Time{}, fmt.Errorf("failed to stat model: %w", err)
	}
	return info.ModTime(), nil
}

func writeAtomic(fsys afero.Fs, path string, write func(afero.File) error) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	tmp := path + ".tmp"
	f, err := fsys.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	if err := write(f); err != nil {
		f.Close()
		fsys.Remove(tmp) //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		fsys.Remove(tmp) //nolint:errcheck
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	if err := fsys.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}
