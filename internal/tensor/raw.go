package tensor

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/x448/float16"
)

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not F32.
func (t *Tensor) AsFloat32() []float32 {
	if t.DType != F32 {
		panic(fmt.Sprintf("tensor dtype is %s, not F32", t.DType))
	}
	if len(t.Data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&t.Data[0])), t.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not F64.
func (t *Tensor) AsFloat64() []float64 {
	if t.DType != F64 {
		panic(fmt.Sprintf("tensor dtype is %s, not F64", t.DType))
	}
	if len(t.Data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&t.Data[0])), t.NumElements())
}

// AsFloat16 interprets the data as []float16.Float16.
// Panics if the tensor's dtype is not F16.
func (t *Tensor) AsFloat16() []float16.Float16 {
	if t.DType != F16 {
		panic(fmt.Sprintf("tensor dtype is %s, not F16", t.DType))
	}
	if len(t.Data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float16.Float16)(unsafe.Pointer(&t.Data[0])), t.NumElements())
}

// AsInt8 interprets the data as []int8.
// Panics if the tensor's dtype is not Q7.
func (t *Tensor) AsInt8() []int8 {
	if t.DType != Q7 {
		panic(fmt.Sprintf("tensor dtype is %s, not Q7", t.DType))
	}
	if len(t.Data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*int8)(unsafe.Pointer(&t.Data[0])), t.NumElements())
}

// Q7Params returns the shift and zero point stored in the parameter block.
func (t *Tensor) Q7Params() (shift uint16, zeroPoint int8) {
	return binary.LittleEndian.Uint16(t.Params[0:2]), int8(t.Params[2])
}

// SetQ7Params stores the shift and zero point in the parameter block.
func (t *Tensor) SetQ7Params(shift uint16, zeroPoint int8) {
	binary.LittleEndian.PutUint16(t.Params[0:2], shift)
	t.Params[2] = byte(zeroPoint)
	t.Params[3] = 0
}
