package layer

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// LeakyReLUType identifies LeakyReLU layers.
var LeakyReLUType = NewType("Leaky ReLU", printLeakyReLUSpecs)

// LeakyReLU is a leaky rectifier activation layer.
//
// Applies the element-wise function:
//
//	y = x        if x >= 0
//	y = alpha*x  if x < 0
//
// The layer is data type agnostic. DType, Alpha and the kernels must be set
// before Connect, normally by a data type bound constructor such as
// cpu.LeakyReLUF32.
type LeakyReLU struct {
	NoMemory

	// DType is the data type of the input and the result.
	DType *tensor.DataType

	// Alpha is the leak coefficient, encoded for DType.
	Alpha tensor.Scalar

	// LeakyReLU computes the activation elementwise.
	LeakyReLU ScalarKernel

	// DLeakyReLU computes the derivative elementwise:
	// 1 where x >= 0, alpha where x < 0.
	DLeakyReLU ScalarKernel

	// Multiply computes the elementwise product.
	Multiply BinaryKernel

	base Base
}

// Connect initializes the layer and links it after input.
func (l *LeakyReLU) Connect(input Layer) Layer {
	Connect(l, input, LeakyReLUType, l.DType)
	return l
}

// Base returns the shared layer fields.
func (l *LeakyReLU) Base() *Base { return &l.base }

// Forward computes result = LeakyReLU(x_in).
func (l *LeakyReLU) Forward() {
	l.LeakyReLU(inputResult(&l.base), l.Alpha, &l.base.Result)
}

// Backward computes deltas = delta_out ∘ LeakyReLU'(x_in).
//
// The derivative depends only on the sign of the input, so it is written
// straight into the deltas tensor and multiplied in place.
func (l *LeakyReLU) Backward() {
	deltaIn := &l.base.Deltas
	l.DLeakyReLU(inputResult(&l.base), l.Alpha, deltaIn)
	l.Multiply(deltaIn, outputDeltas(&l.base), deltaIn)
}

// CalcResultShape does nothing: the result shape is the input shape handle.
func (l *LeakyReLU) CalcResultShape() {}

// Validate checks that the data type, alpha and every kernel are set.
func (l *LeakyReLU) Validate() error {
	switch {
	case l.DType == nil:
		return fmt.Errorf("leaky relu: %w", ErrMissingDType)
	case l.Alpha == nil:
		return fmt.Errorf("leaky relu: %w: alpha", ErrMissingParam)
	case l.LeakyReLU == nil:
		return missingKernel("leaky relu", "LeakyReLU")
	case l.DLeakyReLU == nil:
		return missingKernel("leaky relu", "DLeakyReLU")
	case l.Multiply == nil:
		return missingKernel("leaky relu", "Multiply")
	}
	return nil
}

func printLeakyReLUSpecs(l Layer, printf PrintFunc) {
	lr := l.(*LeakyReLU)
	_, _ = printf("alpha: %s", lr.DType.FormatScalar(lr.Alpha))
}
