package cpu

import (
	"github.com/chewxy/math32"
	"github.com/x448/float16"

	"github.com/ember-ml/ember/internal/tensor"
)

// Half precision kernels compute in float32 and round once per element.

func leakyReLUFloat16(x *tensor.Tensor, alpha tensor.Scalar, result *tensor.Tensor) {
	a := alpha.Float16().Float32()
	src := x.AsFloat16()
	dst := result.AsFloat16()
	for i, h := range src {
		v := h.Float32()
		if v < 0 {
			v *= a
		}
		dst[i] = float16.Fromfloat32(v)
	}
}

func dLeakyReLUFloat16(x *tensor.Tensor, alpha tensor.Scalar, result *tensor.Tensor) {
	one := float16.Fromfloat32(1)
	a := alpha.Float16()
	src := x.AsFloat16()
	dst := result.AsFloat16()
	for i, h := range src {
		if h.Float32() >= 0 {
			dst[i] = one
		} else {
			dst[i] = a
		}
	}
}

func reluFloat16(x, result *tensor.Tensor) {
	src := x.AsFloat16()
	dst := result.AsFloat16()
	for i, h := range src {
		dst[i] = float16.Fromfloat32(math32.Max(h.Float32(), 0))
	}
}

func dReLUFloat16(x, result *tensor.Tensor) {
	one, zero := float16.Fromfloat32(1), float16.Fromfloat32(0)
	src := x.AsFloat16()
	dst := result.AsFloat16()
	for i, h := range src {
		if h.Float32() >= 0 {
			dst[i] = one
		} else {
			dst[i] = zero
		}
	}
}

func sigmoidFloat16(x, result *tensor.Tensor) {
	src := x.AsFloat16()
	dst := result.AsFloat16()
	for i, h := range src {
		dst[i] = float16.Fromfloat32(1 / (1 + math32.Exp(-h.Float32())))
	}
}

func dSigmoidFloat16(s, result *tensor.Tensor) {
	src := s.AsFloat16()
	dst := result.AsFloat16()
	for i, h := range src {
		v := h.Float32()
		dst[i] = float16.Fromfloat32(v * (1 - v))
	}
}

func tanhFloat16(x, result *tensor.Tensor) {
	src := x.AsFloat16()
	dst := result.AsFloat16()
	for i, h := range src {
		dst[i] = float16.Fromfloat32(math32.Tanh(h.Float32()))
	}
}

func dTanhFloat16(t, result *tensor.Tensor) {
	src := t.AsFloat16()
	dst := result.AsFloat16()
	for i, h := range src {
		v := h.Float32()
		dst[i] = float16.Fromfloat32(1 - v*v)
	}
}

func multiplyFloat16(a, b, result *tensor.Tensor) {
	as := a.AsFloat16()
	bs := b.AsFloat16()
	dst := result.AsFloat16()
	for i := range dst {
		dst[i] = float16.Fromfloat32(as[i].Float32() * bs[i].Float32())
	}
}
