// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// Type aliases for public API

// DataType describes an element encoding. Compare descriptors by pointer.
type DataType = tensor.DataType

// Shape is a shared dimension handle.
type Shape = tensor.Shape

// Tensor is a typed, shaped view over caller-owned memory.
type Tensor = tensor.Tensor

// Scalar is a hyper-parameter value encoded for a data type.
type Scalar = tensor.Scalar

// Built-in data types.
var (
	F32 = tensor.F32
	F64 = tensor.F64
	F16 = tensor.F16
	Q7  = tensor.Q7
)

// Q7ParamsSize is the byte size of a Q7 parameter block.
const Q7ParamsSize = tensor.Q7ParamsSize

// MaxQ7Shift is the largest shift a Q7 tensor may carry.
const MaxQ7Shift = tensor.MaxQ7Shift

// Errors.
var (
	ErrInvalidShape   = tensor.ErrInvalidShape
	ErrSizeMismatch   = tensor.ErrSizeMismatch
	ErrInvalidQ7Shift = tensor.ErrInvalidQ7Shift
)

// NewShape creates a shape; every extent must be positive.
func NewShape(dims ...int) (*Shape, error) {
	return tensor.NewShape(dims...)
}

// MustShape is like NewShape but panics on invalid extents.
func MustShape(dims ...int) *Shape {
	return tensor.MustShape(dims...)
}

// New allocates a zeroed tensor of the given type and shape.
func New(dtype *DataType, shape *Shape) *Tensor {
	return tensor.New(dtype, shape)
}

// FromFloat32 creates an F32 tensor holding a copy of values.
//
// Example:
//
//	x, err := tensor.FromFloat32([]float32{1, 2, 3, 4}, 2, 2)
func FromFloat32(values []float32, dims ...int) (*Tensor, error) {
	return tensor.FromFloat32(values, dims...)
}

// FromFloat64 creates an F64 tensor holding a copy of values.
func FromFloat64(values []float64, dims ...int) (*Tensor, error) {
	return tensor.FromFloat64(values, dims...)
}

// FromFloat16 creates an F16 tensor from float32 values.
func FromFloat16(values []float32, dims ...int) (*Tensor, error) {
	return tensor.FromFloat16(values, dims...)
}

// FromQ7 creates a Q7 tensor by quantizing values with shift and zeroPoint.
func FromQ7(values []float32, shift uint16, zeroPoint int8, dims ...int) (*Tensor, error) {
	return tensor.FromQ7(values, shift, zeroPoint, dims...)
}

// SizeofData returns the byte size of the element storage of t.
func SizeofData(t *Tensor) int {
	return tensor.SizeofData(t)
}

// SizeofParams returns the byte size of the parameter block of t.
func SizeofParams(t *Tensor) int {
	return tensor.SizeofParams(t)
}

// Sizeof returns SizeofData(t) + SizeofParams(t).
func Sizeof(t *Tensor) int {
	return tensor.Sizeof(t)
}

// AlignedBytes allocates n bytes aligned for every built-in data type.
// Use it for buffers handed to the memory planner.
func AlignedBytes(n int) []byte {
	return tensor.AlignedBytes(n)
}

// F32Scalar encodes v as an F32 scalar.
func F32Scalar(v float32) Scalar { return tensor.F32Scalar(v) }

// F64Scalar encodes v as an F64 scalar.
func F64Scalar(v float64) Scalar { return tensor.F64Scalar(v) }

// F16Scalar encodes v as an F16 scalar.
func F16Scalar(v float32) Scalar { return tensor.F16Scalar(v) }

// Q7Scalar encodes a quantized value with its shift and zero point.
func Q7Scalar(value int8, shift uint16, zeroPoint int8) Scalar {
	return tensor.Q7Scalar(value, shift, zeroPoint)
}

// Q7ScalarFromFloat quantizes v with shift and zeroPoint.
func Q7ScalarFromFloat(v float32, shift uint16, zeroPoint int8) Scalar {
	return tensor.Q7ScalarFromFloat(v, shift, zeroPoint)
}
