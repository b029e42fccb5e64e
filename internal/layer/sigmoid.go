package layer

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// SigmoidType identifies Sigmoid layers.
var SigmoidType = NewType("Sigmoid", nil)

// Sigmoid is a logistic activation layer: y = 1 / (1 + exp(-x)).
//
// The derivative is cheapest as a function of the layer's own output,
// σ'(x) = σ(x)(1 - σ(x)). Backward recomputes σ(x) into a scratch tensor
// instead of reading Result, so Result stays untouched. The scratch memory
// is negotiated through the Scratcher interface.
type Sigmoid struct {
	NoMemory

	DType *tensor.DataType

	// Sigmoid computes the activation elementwise.
	Sigmoid UnaryKernel

	// DSigmoid computes the derivative from sigmoid values: s(1 - s).
	DSigmoid UnaryKernel

	// Multiply computes the elementwise product.
	Multiply BinaryKernel

	base    Base
	scratch scratch
}

// Connect initializes the layer and links it after input.
func (l *Sigmoid) Connect(input Layer) Layer {
	Connect(l, input, SigmoidType, l.DType)
	return l
}

// Base returns the shared layer fields.
func (l *Sigmoid) Base() *Base { return &l.base }

// Forward computes result = σ(x_in).
func (l *Sigmoid) Forward() {
	l.Sigmoid(inputResult(&l.base), &l.base.Result)
}

// Backward computes deltas = delta_out ∘ σ'(x_in).
func (l *Sigmoid) Backward() {
	tmp := &l.scratch.t
	l.Sigmoid(inputResult(&l.base), tmp)
	l.DSigmoid(tmp, tmp)
	l.Multiply(tmp, outputDeltas(&l.base), &l.base.Deltas)
}

// CalcResultShape does nothing: the result shape is the input shape handle.
func (l *Sigmoid) CalcResultShape() {}

// SizeofScratch returns the size of one tensor shaped like the input.
func (l *Sigmoid) SizeofScratch() int {
	return sizeofScratch(inputResult(&l.base))
}

// SetScratch binds the scratch tensor used by Backward.
func (l *Sigmoid) SetScratch(mem []byte) {
	l.scratch.bind(inputResult(&l.base), mem)
}

// Validate checks that the data type and every kernel are set.
func (l *Sigmoid) Validate() error {
	switch {
	case l.DType == nil:
		return fmt.Errorf("sigmoid: %w", ErrMissingDType)
	case l.Sigmoid == nil:
		return missingKernel("sigmoid", "Sigmoid")
	case l.DSigmoid == nil:
		return missingKernel("sigmoid", "DSigmoid")
	case l.Multiply == nil:
		return missingKernel("sigmoid", "Multiply")
	}
	return nil
}
