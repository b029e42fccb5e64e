package layer

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrMissingKernel = errors.New("required kernel not set")
	ErrMissingDType  = errors.New("data type not set")
	ErrMissingParam  = errors.New("hyper-parameter not set")
	ErrNotConnected  = errors.New("layer not connected")
	ErrShape         = errors.New("incompatible input shape")
)

func missingKernel(layer, kernel string) error {
	return fmt.Errorf("%s: %w: %s", layer, ErrMissingKernel, kernel)
}
