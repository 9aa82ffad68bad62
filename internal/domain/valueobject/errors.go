package valueobject

import "errors"

// ErrUnknownCategory is returned when a raw categorical value is not one of
// the values the model was trained on.
var ErrUnknownCategory = errors.New("unknown category")
