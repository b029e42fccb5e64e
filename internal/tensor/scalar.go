package tensor

import (
	"encoding/binary"
	"math"

	"github.com/x448/float16"
)

// Scalar is a single value encoded in the format of some DataType.
//
// Layer hyper-parameters (e.g. the leak coefficient of a leaky ReLU) are
// stored as Scalars so the layer code stays independent of the numeric
// representation. Only the kernels decode them.
type Scalar []byte

// F32Scalar encodes v for F32 kernels.
func F32Scalar(v float32) Scalar {
	s := make(Scalar, 4)
	binary.LittleEndian.PutUint32(s, math.Float32bits(v))
	return s
}

// F64Scalar encodes v for F64 kernels.
func F64Scalar(v float64) Scalar {
	s := make(Scalar, 8)
	binary.LittleEndian.PutUint64(s, math.Float64bits(v))
	return s
}

// F16Scalar encodes v for F16 kernels.
func F16Scalar(v float32) Scalar {
	s := make(Scalar, 2)
	binary.LittleEndian.PutUint16(s, float16.Fromfloat32(v).Bits())
	return s
}

// Q7Scalar encodes a Q7 value together with its own quantization.
// Layout: value, zero point, shift (uint16 little endian).
// shift is clamped to MaxQ7Shift.
func Q7Scalar(value int8, shift uint16, zeroPoint int8) Scalar {
	shift = min(shift, MaxQ7Shift)
	s := make(Scalar, 4)
	s[0] = byte(value)
	s[1] = byte(zeroPoint)
	binary.LittleEndian.PutUint16(s[2:4], shift)
	return s
}

// Q7ScalarFromFloat quantizes v with the given shift and zero point.
func Q7ScalarFromFloat(v float32, shift uint16, zeroPoint int8) Scalar {
	shift = min(shift, MaxQ7Shift)
	return Q7Scalar(QuantizeQ7(v, shift, zeroPoint), shift, zeroPoint)
}

// Float32 decodes an F32 scalar.
func (s Scalar) Float32() float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(s))
}

// Float64 decodes an F64 scalar.
func (s Scalar) Float64() float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(s))
}

// Float16 decodes an F16 scalar.
func (s Scalar) Float16() float16.Float16 {
	return float16.Frombits(binary.LittleEndian.Uint16(s))
}

// Q7 decodes a Q7 scalar.
func (s Scalar) Q7() (value int8, shift uint16, zeroPoint int8) {
	return int8(s[0]), binary.LittleEndian.Uint16(s[2:4]), int8(s[1])
}
