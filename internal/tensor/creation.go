package tensor

import (
	"fmt"
	"unsafe"

	"github.com/x448/float16"
)

// New allocates a tensor of the given type and shape.
//
// The core never calls this; it exists for callers assembling inputs,
// targets and tests outside the execution path.
func New(dtype *DataType, shape *Shape) *Tensor {
	t := &Tensor{DType: dtype, Shape: shape}
	t.Bind(AlignedBytes(SizeofData(t)), AlignedBytes(SizeofParams(t)))
	return t
}

// FromFloat32 creates an F32 tensor holding a copy of values.
func FromFloat32(values []float32, dims ...int) (*Tensor, error) {
	t, err := fromValues(F32, len(values), dims)
	if err != nil {
		return nil, err
	}
	copy(t.AsFloat32(), values)
	return t, nil
}

// FromFloat64 creates an F64 tensor holding a copy of values.
func FromFloat64(values []float64, dims ...int) (*Tensor, error) {
	t, err := fromValues(F64, len(values), dims)
	if err != nil {
		return nil, err
	}
	copy(t.AsFloat64(), values)
	return t, nil
}

// FromFloat16 creates an F16 tensor from float32 values.
func FromFloat16(values []float32, dims ...int) (*Tensor, error) {
	t, err := fromValues(F16, len(values), dims)
	if err != nil {
		return nil, err
	}
	dst := t.AsFloat16()
	for i, v := range values {
		dst[i] = float16.Fromfloat32(v)
	}
	return t, nil
}

// FromQ7 creates a Q7 tensor by quantizing float32 values.
// shift must not exceed MaxQ7Shift.
func FromQ7(values []float32, shift uint16, zeroPoint int8, dims ...int) (*Tensor, error) {
	if shift > MaxQ7Shift {
		return nil, fmt.Errorf("%w: %d > %d", ErrInvalidQ7Shift, shift, MaxQ7Shift)
	}
	t, err := fromValues(Q7, len(values), dims)
	if err != nil {
		return nil, err
	}
	t.SetQ7Params(shift, zeroPoint)
	dst := t.AsInt8()
	for i, v := range values {
		dst[i] = QuantizeQ7(v, shift, zeroPoint)
	}
	return t, nil
}

func fromValues(dtype *DataType, n int, dims []int) (*Tensor, error) {
	shape, err := NewShape(dims...)
	if err != nil {
		return nil, err
	}
	if shape.NumElements() != n {
		return nil, fmt.Errorf("%w: %d values for shape %s", ErrSizeMismatch, n, shape)
	}
	return New(dtype, shape), nil
}

// Float32s returns the tensor contents converted to float32,
// whatever the data type. Allocates; meant for inspection and tests.
func (t *Tensor) Float32s() []float32 {
	out := make([]float32, t.NumElements())
	switch t.DType {
	case F32:
		copy(out, t.AsFloat32())
	case F64:
		for i, v := range t.AsFloat64() {
			out[i] = float32(v)
		}
	case F16:
		for i, v := range t.AsFloat16() {
			out[i] = v.Float32()
		}
	case Q7:
		shift, zp := t.Q7Params()
		for i, v := range t.AsInt8() {
			out[i] = DequantizeQ7(v, shift, zp)
		}
	default:
		panic(fmt.Sprintf("Float32s: unsupported dtype %s", t.DType))
	}
	return out
}

// AlignedBytes allocates n bytes whose first element is 8-byte aligned,
// so that typed views over any built-in data type are valid.
func AlignedBytes(n int) []byte {
	if n == 0 {
		return []byte{}
	}
	words := make([]uint64, (n+7)/8)
	//nolint:gosec // reinterpretation of a freshly allocated word slice
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), n)
}
