package layer

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// ReLUType identifies ReLU layers.
var ReLUType = NewType("ReLU", nil)

// ReLU is a rectified linear unit activation layer: y = max(0, x).
type ReLU struct {
	NoMemory

	DType *tensor.DataType

	// ReLU computes the activation elementwise.
	ReLU UnaryKernel

	// DReLU computes the derivative elementwise: 1 where x >= 0, 0 otherwise.
	DReLU UnaryKernel

	// Multiply computes the elementwise product.
	Multiply BinaryKernel

	base Base
}

// Connect initializes the layer and links it after input.
func (l *ReLU) Connect(input Layer) Layer {
	Connect(l, input, ReLUType, l.DType)
	return l
}

// Base returns the shared layer fields.
func (l *ReLU) Base() *Base { return &l.base }

// Forward computes result = ReLU(x_in).
func (l *ReLU) Forward() {
	l.ReLU(inputResult(&l.base), &l.base.Result)
}

// Backward computes deltas = delta_out ∘ ReLU'(x_in).
func (l *ReLU) Backward() {
	deltaIn := &l.base.Deltas
	l.DReLU(inputResult(&l.base), deltaIn)
	l.Multiply(deltaIn, outputDeltas(&l.base), deltaIn)
}

// CalcResultShape does nothing: the result shape is the input shape handle.
func (l *ReLU) CalcResultShape() {}

// Validate checks that the data type and every kernel are set.
func (l *ReLU) Validate() error {
	switch {
	case l.DType == nil:
		return fmt.Errorf("relu: %w", ErrMissingDType)
	case l.ReLU == nil:
		return missingKernel("relu", "ReLU")
	case l.DReLU == nil:
		return missingKernel("relu", "DReLU")
	case l.Multiply == nil:
		return missingKernel("relu", "Multiply")
	}
	return nil
}
