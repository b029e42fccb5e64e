// Package model assembles layers into an executable chain.
//
// A Model is the graph assembly collaborator of package layer: it walks the
// chain built by the layer constructors, validates kernels, data types and
// links once, negotiates memory with every layer and drives full forward
// and backward passes through the Layer interface only.
//
// Planning allocates nothing: callers query the sizes, provide buffers
// (static arrays on embedded targets), and the model hands out aligned
// sub-ranges. After planning, Forward and Backward do not allocate.
//
// A Model is not safe for concurrent use. One caller drives one pass at a
// time; forward and backward passes may alternate but not overlap.
package model

import (
	"fmt"

	"github.com/ember-ml/ember/internal/layer"
	"github.com/ember-ml/ember/internal/tensor"
)

// Model is a linear chain of layers from an input layer to an output layer.
type Model struct {
	cfg    Config
	layers []layer.Layer
	sink   sink
}

// New assembles the chain that starts at input and ends at output.
//
// It walks the Output links from input, attaches an internal gradient sink
// after output, runs shape inference top to bottom and, unless
// cfg.SkipValidation is set, validates the chain.
func New(input, output layer.Layer, cfg Config) (*Model, error) {
	cfg = cfg.withDefaults()
	m := &Model{cfg: cfg}

	for l := input; ; l = l.Base().Output {
		if l == nil {
			return nil, ErrBrokenChain
		}
		m.layers = append(m.layers, l)
		if l == output {
			break
		}
	}

	out := output.Base()
	// Deltas of the sink alias the output result shape: the caller's gradient.
	layer.Connect(&m.sink, output, sinkType, out.Result.DType)

	m.CalcResultShapes()

	if !cfg.SkipValidation {
		if err := m.Validate(); err != nil {
			cfg.Logger.Warn("model validation failed", "error", err)
			return nil, err
		}
	}

	cfg.Logger.Debug("model assembled",
		"layers", len(m.layers),
		"trainable_params", m.TrainableParamsCount(),
	)
	return m, nil
}

// Validate checks every layer once, off the hot path:
//   - the first layer has no predecessor and links are consistent
//   - each layer passes its own Validate, if it has one
//   - each layer has the data type of its predecessor
func (m *Model) Validate() error {
	for i, l := range m.layers {
		b := l.Base()
		fail := func(err error) error {
			return &ValidationError{Index: i, Layer: b.Type.String(), Err: err}
		}

		if i == 0 {
			if b.Input != nil {
				return fail(fmt.Errorf("%w: input layer has a predecessor", ErrLink))
			}
		} else {
			prev := m.layers[i-1]
			if b.Input != prev || prev.Base().Output != l {
				return fail(ErrLink)
			}
			if b.Result.DType != prev.Base().Result.DType {
				return fail(fmt.Errorf("%w: %s after %s", ErrDTypeMismatch, b.Result.DType, prev.Base().Result.DType))
			}
		}

		if v, ok := l.(layer.Validator); ok {
			if err := v.Validate(); err != nil {
				return fail(err)
			}
		}
	}
	return nil
}

// CalcResultShapes runs shape inference top to bottom. Call it after the
// input shape changed (e.g. a new batch size), then plan memory again.
func (m *Model) CalcResultShapes() {
	for _, l := range m.layers {
		l.CalcResultShape()
	}
}

// Forward runs a forward pass on input and returns the output layer's result.
//
// input must have the shape and data type of the input layer. Its storage is
// bound to the input layer's result for the duration of the pass and beyond;
// the model does not copy it. The returned tensor is owned by the model.
func (m *Model) Forward(input *tensor.Tensor) *tensor.Tensor {
	in := m.layers[0].Base()
	in.Result.Data = input.Data
	in.Result.Params = input.Params

	for _, l := range m.layers {
		l.Forward()
	}
	return &m.Output().Base().Result
}

// Backward runs a backward pass seeded with grad, the gradient of the loss
// with respect to the output layer's result. Forward must have run on the
// same input before. Afterwards every layer's Deltas and Gradients hold the
// results of this pass.
func (m *Model) Backward(grad *tensor.Tensor) {
	m.sink.base.Deltas.Data = grad.Data
	m.sink.base.Deltas.Params = grad.Params

	for i := len(m.layers) - 1; i > 0; i-- {
		m.layers[i].Backward()
	}
}

// Layers returns the chain, input layer first.
func (m *Model) Layers() []layer.Layer {
	return m.layers
}

// Input returns the input layer.
func (m *Model) Input() layer.Layer {
	return m.layers[0]
}

// Output returns the output layer.
func (m *Model) Output() layer.Layer {
	return m.layers[len(m.layers)-1]
}

// TrainableParamsCount returns the number of trainable tensors of all layers.
func (m *Model) TrainableParamsCount() int {
	n := 0
	for _, l := range m.layers {
		n += l.Base().TrainableParamsCount
	}
	return n
}

// Parameters returns all trainable tensors, in chain order.
func (m *Model) Parameters() []*tensor.Tensor {
	var params []*tensor.Tensor
	for _, l := range m.layers {
		params = append(params, l.Base().TrainableParams...)
	}
	return params
}

// Gradients returns the gradient tensors matching Parameters.
func (m *Model) Gradients() []*tensor.Tensor {
	var grads []*tensor.Tensor
	for _, l := range m.layers {
		grads = append(grads, l.Base().Gradients...)
	}
	return grads
}

// PrintSpecs prints the specification of every layer.
// Prints nothing unless built with the emberdebug tag.
func (m *Model) PrintSpecs(printf layer.PrintFunc) {
	for _, l := range m.layers {
		layer.PrintSpecs(l, printf)
	}
}
