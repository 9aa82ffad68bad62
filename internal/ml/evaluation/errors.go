package evaluation

import "errors"

var (
	// ErrInvalidFolds is returned when a dataset cannot be split as requested.
	ErrInvalidFolds = errors.New("invalid fold configuration")

	// ErrUndefinedAUC is returned when the held-out labels contain a single class.
	ErrUndefinedAUC = errors.New("auc is undefined for a single class")

	// ErrLengthMismatch is returned when labels and scores differ in length.
	ErrLengthMismatch = errors.New("labels and scores differ in length")

	// ErrNoMetrics is returned when summarizing an empty metrics set.
	ErrNoMetrics = errors.New("no fold metrics")
)
