package cpu

import (
	"github.com/chewxy/math32"

	"github.com/ember-ml/ember/internal/tensor"
)

// Float32 activation kernels. All of them tolerate result aliasing x.

func leakyReLUFloat32(x *tensor.Tensor, alpha tensor.Scalar, result *tensor.Tensor) {
	a := alpha.Float32()
	src := x.AsFloat32()
	dst := result.AsFloat32()
	for i, v := range src {
		if v >= 0 {
			dst[i] = v
		} else {
			dst[i] = a * v
		}
	}
}

func dLeakyReLUFloat32(x *tensor.Tensor, alpha tensor.Scalar, result *tensor.Tensor) {
	a := alpha.Float32()
	src := x.AsFloat32()
	dst := result.AsFloat32()
	for i, v := range src {
		if v >= 0 {
			dst[i] = 1
		} else {
			dst[i] = a
		}
	}
}

func reluFloat32(x, result *tensor.Tensor) {
	src := x.AsFloat32()
	dst := result.AsFloat32()
	for i, v := range src {
		dst[i] = math32.Max(v, 0)
	}
}

func dReLUFloat32(x, result *tensor.Tensor) {
	src := x.AsFloat32()
	dst := result.AsFloat32()
	for i, v := range src {
		if v >= 0 {
			dst[i] = 1
		} else {
			dst[i] = 0
		}
	}
}

func sigmoidFloat32(x, result *tensor.Tensor) {
	src := x.AsFloat32()
	dst := result.AsFloat32()
	for i, v := range src {
		dst[i] = 1 / (1 + math32.Exp(-v))
	}
}

// dSigmoidFloat32 takes sigmoid values, not pre-activations.
func dSigmoidFloat32(s, result *tensor.Tensor) {
	src := s.AsFloat32()
	dst := result.AsFloat32()
	for i, v := range src {
		dst[i] = v * (1 - v)
	}
}

func tanhFloat32(x, result *tensor.Tensor) {
	src := x.AsFloat32()
	dst := result.AsFloat32()
	for i, v := range src {
		dst[i] = math32.Tanh(v)
	}
}

// dTanhFloat32 takes tanh values, not pre-activations.
func dTanhFloat32(t, result *tensor.Tensor) {
	src := t.AsFloat32()
	dst := result.AsFloat32()
	for i, v := range src {
		dst[i] = 1 - v*v
	}
}

func multiplyFloat32(a, b, result *tensor.Tensor) {
	as := a.AsFloat32()
	bs := b.AsFloat32()
	dst := result.AsFloat32()
	for i := range dst {
		dst[i] = as[i] * bs[i]
	}
}
