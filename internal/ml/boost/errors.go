package boost

import "errors"

var (
	// ErrInvalidParams is returned by Params.Validate and Train.
	ErrInvalidParams = errors.New("boost: invalid parameters")

	// ErrInvalidDataset is returned when features and labels do not form a
	// trainable dataset.
	ErrInvalidDataset = errors.New("boost: invalid dataset")

	// ErrFeatureMismatch is returned when a prediction row does not have the
	// width the booster was trained on.
	ErrFeatureMismatch = errors.New("boost: feature count mismatch")
)
