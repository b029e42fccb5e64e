// Package layer implements the layer contract of the Ember engine.
//
// A network is a strictly linear, doubly linked chain of layers. Every layer
// implements the Layer interface:
//   - Forward: compute Result from the predecessor's Result
//   - Backward: compute Deltas from the successor's Deltas
//   - CalcResultShape: re-derive the result shape after an upstream change
//   - SizeofParamem/SetParamem: negotiate trainable parameter memory
//   - SizeofTrainmem/SetTrainmem: negotiate training memory (gradients)
//
// Layers never allocate. Shapes and data types are fixed when a layer is
// connected to its predecessor; storage is bound later by a memory planner
// (see package model) that knows the requirements of the whole graph.
//
// Layers are data type agnostic. A concrete layer holds kernel functions
// for the math it needs; a data type bound constructor (see package cpu)
// fills them in before the layer is connected.
//
// Preconditions are not checked on the hot path. A nil kernel, a dtype
// mismatch between chained layers or a buffer smaller than the reported size
// is undefined behavior; callers validate once at graph assembly time.
package layer

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// Layer is the dispatch contract every layer satisfies.
//
// Callers holding only a Layer can execute a whole network: forward runs
// top to bottom along Output links, backward bottom to top along Input links.
type Layer interface {
	// Base returns the shared structural fields of the layer.
	Base() *Base

	// Forward computes Result from Input().Result.
	Forward()

	// Backward computes Deltas from Output().Deltas.
	Backward()

	// CalcResultShape re-derives the result shape from the input shape.
	// Layers whose result shape aliases the input shape implement it as a no-op.
	CalcResultShape()

	// SizeofParamem returns the exact number of bytes of trainable parameter memory.
	SizeofParamem() int

	// SetParamem binds parameter memory of at least SizeofParamem bytes.
	SetParamem(mem []byte)

	// SizeofTrainmem returns the exact number of bytes of training memory.
	SizeofTrainmem() int

	// SetTrainmem binds training memory of at least SizeofTrainmem bytes.
	SetTrainmem(mem []byte)
}

// Base holds the fields shared by every layer.
//
// Structural fields (Type, Input, Output, tensor shapes and dtypes) are set
// once by Connect and never change afterwards. Only the contents of Result
// and Deltas change during execution.
type Base struct {
	Type *Type

	// Input is the predecessor, nil for the first layer. Not owned.
	Input Layer

	// Output is the successor, nil for the last layer. Not owned.
	Output Layer

	// Result is the output of the forward pass.
	Result tensor.Tensor

	// Deltas is the output of the backward pass: the gradient of the loss
	// with respect to this layer's input.
	Deltas tensor.Tensor

	// TrainableParamsCount is the number of trainable parameter tensors.
	TrainableParamsCount int

	// TrainableParams and Gradients are consumed by an optimizer.
	// Both are nil for parameter-free layers.
	TrainableParams []*tensor.Tensor
	Gradients       []*tensor.Tensor
}

// Connect performs the shared part of layer construction:
//  1. install the layer type
//  2. link self after input in the chain
//  3. alias the result shape to the input's result shape and set the result dtype
//  4. mirror the result shape and dtype in the deltas tensor
//
// Dispatch is given by the method set of self. Layers that change the shape
// of their input overwrite Result.Shape (and Deltas.Shape) afterwards.
// input may be nil for the first layer of a chain.
func Connect(self, input Layer, typ *Type, dtype *tensor.DataType) *Base {
	b := self.Base()
	b.Type = typ

	b.Input = input
	if input != nil {
		in := input.Base()
		in.Output = self
		b.Result.Shape = in.Result.Shape
	}
	b.Result.DType = dtype

	b.Deltas.DType = dtype
	b.Deltas.Shape = b.Result.Shape

	b.TrainableParamsCount = 0
	return b
}

// Validator is implemented by layers that can check their own
// preconditions (kernels set, shapes compatible) before execution.
type Validator interface {
	Validate() error
}

// Scratcher is implemented by layers that need temporary memory during
// the backward pass. The memory is only used for the duration of one
// Backward call, so a planner may hand the same buffer to every layer.
type Scratcher interface {
	SizeofScratch() int
	SetScratch(mem []byte)
}

// NoMemory provides the memory negotiation methods for layers without
// trainable parameters.
type NoMemory struct{}

// SizeofParamem returns 0.
func (NoMemory) SizeofParamem() int { return 0 }

// SetParamem does nothing.
func (NoMemory) SetParamem([]byte) {}

// SizeofTrainmem returns 0.
func (NoMemory) SizeofTrainmem() int { return 0 }

// SetTrainmem does nothing.
func (NoMemory) SetTrainmem([]byte) {}

// inputResult returns the predecessor's result, the tensor most layers read.
func inputResult(b *Base) *tensor.Tensor {
	return &b.Input.Base().Result
}

// outputDeltas returns the successor's deltas, the upstream gradient.
func outputDeltas(b *Base) *tensor.Tensor {
	return &b.Output.Base().Deltas
}
