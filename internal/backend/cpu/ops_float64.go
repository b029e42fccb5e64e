package cpu

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ember-ml/ember/internal/tensor"
)

func leakyReLUFloat64(x *tensor.Tensor, alpha tensor.Scalar, result *tensor.Tensor) {
	a := alpha.Float64()
	src := x.AsFloat64()
	dst := result.AsFloat64()
	for i, v := range src {
		if v >= 0 {
			dst[i] = v
		} else {
			dst[i] = a * v
		}
	}
}

func dLeakyReLUFloat64(x *tensor.Tensor, alpha tensor.Scalar, result *tensor.Tensor) {
	a := alpha.Float64()
	src := x.AsFloat64()
	dst := result.AsFloat64()
	for i, v := range src {
		if v >= 0 {
			dst[i] = 1
		} else {
			dst[i] = a
		}
	}
}

func reluFloat64(x, result *tensor.Tensor) {
	src := x.AsFloat64()
	dst := result.AsFloat64()
	for i, v := range src {
		dst[i] = math.Max(v, 0)
	}
}

func dReLUFloat64(x, result *tensor.Tensor) {
	src := x.AsFloat64()
	dst := result.AsFloat64()
	for i, v := range src {
		if v >= 0 {
			dst[i] = 1
		} else {
			dst[i] = 0
		}
	}
}

func sigmoidFloat64(x, result *tensor.Tensor) {
	src := x.AsFloat64()
	dst := result.AsFloat64()
	for i, v := range src {
		dst[i] = 1 / (1 + math.Exp(-v))
	}
}

func dSigmoidFloat64(s, result *tensor.Tensor) {
	src := s.AsFloat64()
	dst := result.AsFloat64()
	for i, v := range src {
		dst[i] = v * (1 - v)
	}
}

func tanhFloat64(x, result *tensor.Tensor) {
	src := x.AsFloat64()
	dst := result.AsFloat64()
	for i, v := range src {
		dst[i] = math.Tanh(v)
	}
}

func dTanhFloat64(t, result *tensor.Tensor) {
	src := t.AsFloat64()
	dst := result.AsFloat64()
	for i, v := range src {
		dst[i] = 1 - v*v
	}
}

func multiplyFloat64(a, b, result *tensor.Tensor) {
	floats.MulTo(result.AsFloat64(), a.AsFloat64(), b.AsFloat64())
}
