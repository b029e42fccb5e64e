package cpu

import (
	"github.com/chewxy/math32"

	"github.com/ember-ml/ember/internal/tensor"
)

// Fixed output quantizations of the Q7 kernels.
//
// Activations with a bounded range write a fixed quantization that covers
// it; shape-preserving piecewise linear ones keep the input quantization.
const (
	// sigmoid: [0, 1)
	sigmoidShiftQ7 uint16 = 8
	sigmoidZeroQ7  int8   = -128

	// sigmoid derivative: [0, 0.25]
	dSigmoidShiftQ7 uint16 = 9
	dSigmoidZeroQ7  int8   = -128

	// tanh: [-1, 1)
	tanhShiftQ7 uint16 = 7
	tanhZeroQ7  int8   = 0

	// tanh derivative: [0, 1]
	dTanhShiftQ7 uint16 = 7
	dTanhZeroQ7  int8   = -128

	// ReLU family derivatives: {0, alpha, 1}
	dReLUShiftQ7 uint16 = 6
	dReLUZeroQ7  int8   = 0
)

// mapQ7 applies f elementwise, dequantizing with x's parameters and
// quantizing with (shift, zp). result may alias x.
func mapQ7(x, result *tensor.Tensor, shift uint16, zp int8, f func(float32) float32) {
	inShift, inZP := x.Q7Params()
	result.SetQ7Params(shift, zp)
	src := x.AsInt8()
	dst := result.AsInt8()
	for i, q := range src {
		dst[i] = tensor.QuantizeQ7(f(tensor.DequantizeQ7(q, inShift, inZP)), shift, zp)
	}
}

func leakyReLUQ7(x *tensor.Tensor, alpha tensor.Scalar, result *tensor.Tensor) {
	a := tensor.DequantizeQ7(alpha.Q7())
	shift, zp := x.Q7Params()
	mapQ7(x, result, shift, zp, func(v float32) float32 {
		if v >= 0 {
			return v
		}
		return a * v
	})
}

func dLeakyReLUQ7(x *tensor.Tensor, alpha tensor.Scalar, result *tensor.Tensor) {
	a := tensor.DequantizeQ7(alpha.Q7())
	mapQ7(x, result, dReLUShiftQ7, dReLUZeroQ7, func(v float32) float32 {
		if v >= 0 {
			return 1
		}
		return a
	})
}

func reluQ7(x, result *tensor.Tensor) {
	shift, zp := x.Q7Params()
	mapQ7(x, result, shift, zp, func(v float32) float32 {
		return math32.Max(v, 0)
	})
}

func dReLUQ7(x, result *tensor.Tensor) {
	mapQ7(x, result, dReLUShiftQ7, dReLUZeroQ7, func(v float32) float32 {
		if v >= 0 {
			return 1
		}
		return 0
	})
}

func sigmoidQ7(x, result *tensor.Tensor) {
	mapQ7(x, result, sigmoidShiftQ7, sigmoidZeroQ7, func(v float32) float32 {
		return 1 / (1 + math32.Exp(-v))
	})
}

func dSigmoidQ7(s, result *tensor.Tensor) {
	mapQ7(s, result, dSigmoidShiftQ7, dSigmoidZeroQ7, func(v float32) float32 {
		return v * (1 - v)
	})
}

func tanhQ7(x, result *tensor.Tensor) {
	mapQ7(x, result, tanhShiftQ7, tanhZeroQ7, math32.Tanh)
}

func dTanhQ7(t, result *tensor.Tensor) {
	mapQ7(t, result, dTanhShiftQ7, dTanhZeroQ7, func(v float32) float32 {
		return 1 - v*v
	})
}

// multiplyQ7 writes the product with b's quantization. In the backward
// pass b is the upstream gradient and a a derivative bounded by 1, so the
// product stays within the gradient's range. result may alias a or b.
func multiplyQ7(a, b, result *tensor.Tensor) {
	aShift, aZP := a.Q7Params()
	bShift, bZP := b.Q7Params()
	result.SetQ7Params(bShift, bZP)
	as := a.AsInt8()
	bs := b.AsInt8()
	dst := result.AsInt8()
	for i := range dst {
		av := tensor.DequantizeQ7(as[i], aShift, aZP)
		bv := tensor.DequantizeQ7(bs[i], bShift, bZP)
		dst[i] = tensor.QuantizeQ7(av*bv, bShift, bZP)
	}
}
