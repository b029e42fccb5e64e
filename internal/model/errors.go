package model

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrBrokenChain    = errors.New("output layer not reachable from input layer")
	ErrBufferTooSmall = errors.New("buffer smaller than reported size")
	ErrDTypeMismatch  = errors.New("data type differs from predecessor")
	ErrLink           = errors.New("inconsistent input/output links")
)

// ValidationError describes the first layer that failed validation.
type ValidationError struct {
	Index int    // Position in the chain, 0 is the input layer
	Layer string // Layer type name ("layer" without emberdebug)
	Err   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("layer %d (%s): %v", e.Index, e.Layer, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
