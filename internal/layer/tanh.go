package layer

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// TanhType identifies Tanh layers.
var TanhType = NewType("Tanh", nil)

// Tanh is a hyperbolic tangent activation layer.
// Backward works like Sigmoid's: tanh'(x) = 1 - tanh(x)², evaluated on a
// scratch copy of the forward value.
type Tanh struct {
	NoMemory

	DType *tensor.DataType

	// Tanh computes the activation elementwise.
	Tanh UnaryKernel

	// DTanh computes the derivative from tanh values: 1 - t².
	DTanh UnaryKernel

	// Multiply computes the elementwise product.
	Multiply BinaryKernel

	base    Base
	scratch scratch
}

// Connect initializes the layer and links it after input.
func (l *Tanh) Connect(input Layer) Layer {
	Connect(l, input, TanhType, l.DType)
	return l
}

// Base returns the shared layer fields.
func (l *Tanh) Base() *Base { return &l.base }

// Forward computes result = tanh(x_in).
func (l *Tanh) Forward() {
	l.Tanh(inputResult(&l.base), &l.base.Result)
}

// Backward computes deltas = delta_out ∘ tanh'(x_in).
func (l *Tanh) Backward() {
	tmp := &l.scratch.t
	l.Tanh(inputResult(&l.base), tmp)
	l.DTanh(tmp, tmp)
	l.Multiply(tmp, outputDeltas(&l.base), &l.base.Deltas)
}

// CalcResultShape does nothing.
func (l *Tanh) CalcResultShape() {}

// SizeofScratch returns the size of one tensor shaped like the input.
func (l *Tanh) SizeofScratch() int {
	return sizeofScratch(inputResult(&l.base))
}

// SetScratch binds the scratch tensor used by Backward.
func (l *Tanh) SetScratch(mem []byte) {
	l.scratch.bind(inputResult(&l.base), mem)
}

// Validate checks that the data type and every kernel are set.
func (l *Tanh) Validate() error {
	switch {
	case l.DType == nil:
		return fmt.Errorf("tanh: %w", ErrMissingDType)
	case l.Tanh == nil:
		return missingKernel("tanh", "Tanh")
	case l.DTanh == nil:
		return missingKernel("tanh", "DTanh")
	case l.Multiply == nil:
		return missingKernel("tanh", "Multiply")
	}
	return nil
}
