package cpu

import (
	"github.com/ember-ml/ember/internal/layer"
	"github.com/ember-ml/ember/internal/tensor"
)

// BindLeakyReLU installs the data type and kernels of k into l.
func (k *Kernels) BindLeakyReLU(l *layer.LeakyReLU) {
	l.DType = k.DType
	l.LeakyReLU = k.LeakyReLU
	l.DLeakyReLU = k.DLeakyReLU
	l.Multiply = k.Multiply
}

// BindReLU installs the data type and kernels of k into l.
func (k *Kernels) BindReLU(l *layer.ReLU) {
	l.DType = k.DType
	l.ReLU = k.ReLU
	l.DReLU = k.DReLU
	l.Multiply = k.Multiply
}

// BindSigmoid installs the data type and kernels of k into l.
func (k *Kernels) BindSigmoid(l *layer.Sigmoid) {
	l.DType = k.DType
	l.Sigmoid = k.Sigmoid
	l.DSigmoid = k.DSigmoid
	l.Multiply = k.Multiply
}

// BindTanh installs the data type and kernels of k into l.
func (k *Kernels) BindTanh(l *layer.Tanh) {
	l.DType = k.DType
	l.Tanh = k.Tanh
	l.DTanh = k.DTanh
	l.Multiply = k.Multiply
}

// BindDense installs the data type and kernels of k into l.
// Only F32 and F64 provide dense kernels.
func (k *Kernels) BindDense(l *layer.Dense) {
	l.DType = k.DType
	l.Linear = k.Linear
	l.MatMulAT = k.MatMulAT
	l.MatMulBT = k.MatMulBT
	l.SumRows = k.SumRows
}

// Data type bound constructors. Each takes a caller-allocated layer, fills
// in the kernels and hyper-parameters, and connects it after input.

// LeakyReLUF32 connects an F32 leaky ReLU layer with leak coefficient alpha.
//
// Example:
//
//	var (
//	    in    = layer.Input{DType: tensor.F32, Shape: tensor.MustShape(1, 4)}
//	    leaky layer.LeakyReLU
//	)
//	x := in.Init()
//	x = cpu.LeakyReLUF32(&leaky, 0.1, x)
func LeakyReLUF32(l *layer.LeakyReLU, alpha float32, input layer.Layer) layer.Layer {
	F32.BindLeakyReLU(l)
	l.Alpha = tensor.F32Scalar(alpha)
	return l.Connect(input)
}

// LeakyReLUF64 connects an F64 leaky ReLU layer with leak coefficient alpha.
func LeakyReLUF64(l *layer.LeakyReLU, alpha float64, input layer.Layer) layer.Layer {
	F64.BindLeakyReLU(l)
	l.Alpha = tensor.F64Scalar(alpha)
	return l.Connect(input)
}

// LeakyReLUQ7 connects a Q7 leaky ReLU layer; alpha is quantized with shift 7.
func LeakyReLUQ7(l *layer.LeakyReLU, alpha float32, input layer.Layer) layer.Layer {
	Q7.BindLeakyReLU(l)
	l.Alpha = tensor.Q7ScalarFromFloat(alpha, 7, 0)
	return l.Connect(input)
}

// ReLUF32 connects an F32 ReLU layer.
func ReLUF32(l *layer.ReLU, input layer.Layer) layer.Layer {
	F32.BindReLU(l)
	return l.Connect(input)
}

// SigmoidF32 connects an F32 sigmoid layer.
func SigmoidF32(l *layer.Sigmoid, input layer.Layer) layer.Layer {
	F32.BindSigmoid(l)
	return l.Connect(input)
}

// SigmoidF64 connects an F64 sigmoid layer.
func SigmoidF64(l *layer.Sigmoid, input layer.Layer) layer.Layer {
	F64.BindSigmoid(l)
	return l.Connect(input)
}

// SigmoidQ7 connects a Q7 sigmoid layer.
func SigmoidQ7(l *layer.Sigmoid, input layer.Layer) layer.Layer {
	Q7.BindSigmoid(l)
	return l.Connect(input)
}

// TanhF32 connects an F32 tanh layer.
func TanhF32(l *layer.Tanh, input layer.Layer) layer.Layer {
	F32.BindTanh(l)
	return l.Connect(input)
}

// DenseF32 connects an F32 dense layer with the given number of neurons.
func DenseF32(l *layer.Dense, neurons int, input layer.Layer) layer.Layer {
	F32.BindDense(l)
	l.Neurons = neurons
	return l.Connect(input)
}

// DenseF64 connects an F64 dense layer with the given number of neurons.
func DenseF64(l *layer.Dense, neurons int, input layer.Layer) layer.Layer {
	F64.BindDense(l)
	l.Neurons = neurons
	return l.Connect(input)
}
