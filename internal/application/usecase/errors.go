package usecase

import "errors"

// ErrInvalidInput is returned when a request cannot be turned into a valid
// passenger.
var ErrInvalidInput = errors.New("invalid input")
