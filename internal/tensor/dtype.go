// Package tensor provides the tensor view and data type descriptors for the Ember engine.
package tensor

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/chewxy/math32"
)

// DataType describes a numeric representation.
//
// Layers and the memory planner never look at concrete element types; they
// only ask the descriptor how many bytes an element and a tensor parameter
// block take. Kernels are written against a descriptor, so one layer
// implementation serves every representation that has matching kernels.
//
// Descriptors are compared by pointer identity.
type DataType struct {
	// Name is a human-readable name, e.g. "F32" or "Q7".
	Name string

	// Size is the byte size of one element.
	Size int

	// ParamsSize is the byte size of the per-tensor parameter block
	// (quantization parameters). Zero for plain floating point types.
	ParamsSize int

	// FormatScalar renders a scalar encoded for this type. Used for debug prints only.
	FormatScalar func(s Scalar) string

	// FormatParams renders a tensor parameter block. Used for debug prints only.
	FormatParams func(params []byte) string
}

// String returns the name of the data type.
func (dt *DataType) String() string {
	if dt == nil {
		return "<nil>"
	}
	return dt.Name
}

// Built-in data types.
var (
	// F32 is IEEE 754 single precision.
	F32 = &DataType{
		Name:         "F32",
		Size:         4,
		FormatScalar: func(s Scalar) string { return strconv.FormatFloat(float64(s.Float32()), 'f', 5, 32) },
		FormatParams: formatNoParams,
	}

	// F64 is IEEE 754 double precision.
	F64 = &DataType{
		Name:         "F64",
		Size:         8,
		FormatScalar: func(s Scalar) string { return strconv.FormatFloat(s.Float64(), 'f', 5, 64) },
		FormatParams: formatNoParams,
	}

	// F16 is IEEE 754 half precision.
	F16 = &DataType{
		Name:         "F16",
		Size:         2,
		FormatScalar: func(s Scalar) string { return strconv.FormatFloat(float64(s.Float16().Float32()), 'f', 5, 32) },
		FormatParams: formatNoParams,
	}

	// Q7 is 8-bit asymmetric fixed point: real = (q - zeroPoint) / 2^shift.
	// The tensor parameter block holds the shift (uint16, little endian)
	// followed by the zero point (int8) and one byte of padding.
	Q7 = &DataType{
		Name:         "Q7",
		Size:         1,
		ParamsSize:   Q7ParamsSize,
		FormatScalar: formatQ7Scalar,
		FormatParams: formatQ7Params,
	}
)

// Q7ParamsSize is the byte size of a Q7 tensor parameter block.
const Q7ParamsSize = 4

func formatNoParams([]byte) string { return "" }

func formatQ7Scalar(s Scalar) string {
	q, shift, zp := s.Q7()
	return fmt.Sprintf("%.5f (Q7 value=%d shift=%d zero_point=%d)", DequantizeQ7(q, shift, zp), q, shift, zp)
}

func formatQ7Params(p []byte) string {
	if len(p) < Q7ParamsSize {
		return "(Q7 params missing)"
	}
	return fmt.Sprintf("(shift=%d zero_point=%d)", binary.LittleEndian.Uint16(p), int8(p[2]))
}

// MaxQ7Shift is the largest shift a Q7 tensor may carry. Larger shifts
// are clamped to it by the conversion helpers.
const MaxQ7Shift = 15

// q7Scale returns 2^shift with shift clamped to MaxQ7Shift.
func q7Scale(shift uint16) float32 {
	return float32(uint32(1) << min(shift, MaxQ7Shift))
}

// DequantizeQ7 converts a Q7 value to float32.
func DequantizeQ7(q int8, shift uint16, zeroPoint int8) float32 {
	return float32(int32(q)-int32(zeroPoint)) / q7Scale(shift)
}

// QuantizeQ7 converts a float32 to Q7 with round-half-away-from-zero and
// saturation. NaN maps to the zero point.
func QuantizeQ7(v float32, shift uint16, zeroPoint int8) int8 {
	if math32.IsNaN(v) {
		return zeroPoint
	}
	scaled := v * q7Scale(shift)
	// Saturate before converting to an integer.
	lo, hi := float32(-128-int32(zeroPoint)), float32(127-int32(zeroPoint))
	switch {
	case scaled >= hi:
		return 127
	case scaled <= lo:
		return -128
	}
	var r int32
	if scaled >= 0 {
		r = int32(scaled + 0.5)
	} else {
		r = int32(scaled - 0.5)
	}
	r += int32(zeroPoint)
	return int8(max(-128, min(127, r)))
}
