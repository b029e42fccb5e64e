package layer

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// InputType identifies Input layers.
var InputType = NewType("Input", printInputSpecs)

// Input is the first layer of a chain.
//
// It owns the shape every following shape-preserving layer aliases. Its
// result tensor is bound to the caller's input data before each forward
// pass; forward and backward do nothing.
//
// Example:
//
//	in := &layer.Input{DType: tensor.F32, Shape: tensor.MustShape(1, 4)}
//	x := in.Init()
type Input struct {
	NoMemory

	DType *tensor.DataType
	Shape *tensor.Shape

	base Base
}

// Init initializes the input layer. It has no predecessor.
func (l *Input) Init() Layer {
	b := Connect(l, nil, InputType, l.DType)
	b.Result.Shape = l.Shape
	b.Deltas.Shape = l.Shape
	return l
}

// Base returns the shared layer fields.
func (l *Input) Base() *Base { return &l.base }

// Forward does nothing; the result is the bound input data.
func (l *Input) Forward() {}

// Backward does nothing.
func (l *Input) Backward() {}

// CalcResultShape does nothing; the input layer owns its shape.
func (l *Input) CalcResultShape() {}

// Validate checks the configuration.
func (l *Input) Validate() error {
	if l.DType == nil {
		return fmt.Errorf("input: %w", ErrMissingDType)
	}
	if l.Shape == nil || l.Shape.Dim() == 0 {
		return fmt.Errorf("input: %w: no shape", ErrShape)
	}
	return nil
}

func printInputSpecs(l Layer, printf PrintFunc) {
	_, _ = printf("shape: %s, dtype: %s", l.Base().Result.Shape, l.Base().Result.DType)
}
