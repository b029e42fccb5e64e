package tensor

import "errors"

// Common errors.
var (
	ErrInvalidShape = errors.New("invalid shape")
	ErrSizeMismatch = errors.New("value count does not match shape")

	ErrInvalidQ7Shift = errors.New("invalid Q7 shift")
)
