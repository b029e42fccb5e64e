// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the CPU kernels and the data type bound layer
// constructors.
//
// Each constructor takes a caller-allocated layer, installs the kernels for
// one data type, and connects the layer after its input:
//
//	x := in.Init()
//	x = cpu.DenseF32(&dense, 8, x)
//	x = cpu.SigmoidF32(&sigmoid, x)
//
// F32 and F64 provide every kernel. F16 and Q7 provide the activation
// kernels only.
package cpu

import (
	internalcpu "github.com/ember-ml/ember/internal/backend/cpu"
	"github.com/ember-ml/ember/layer"
	"github.com/ember-ml/ember/tensor"
)

// Kernels is the kernel set for one data type.
type Kernels = internalcpu.Kernels

// Kernel sets of the built-in data types.
var (
	F32 = internalcpu.F32
	F64 = internalcpu.F64
	F16 = internalcpu.F16
	Q7  = internalcpu.Q7
)

// For returns the kernel set of dtype.
func For(dtype *tensor.DataType) (*Kernels, error) {
	return internalcpu.For(dtype)
}

// LeakyReLUF32 connects an F32 leaky ReLU layer with leak coefficient alpha.
func LeakyReLUF32(l *layer.LeakyReLU, alpha float32, input layer.Layer) layer.Layer {
	return internalcpu.LeakyReLUF32(l, alpha, input)
}

// LeakyReLUF64 connects an F64 leaky ReLU layer with leak coefficient alpha.
func LeakyReLUF64(l *layer.LeakyReLU, alpha float64, input layer.Layer) layer.Layer {
	return internalcpu.LeakyReLUF64(l, alpha, input)
}

// LeakyReLUQ7 connects a Q7 leaky ReLU layer.
func LeakyReLUQ7(l *layer.LeakyReLU, alpha float32, input layer.Layer) layer.Layer {
	return internalcpu.LeakyReLUQ7(l, alpha, input)
}

// ReLUF32 connects an F32 ReLU layer.
func ReLUF32(l *layer.ReLU, input layer.Layer) layer.Layer {
	return internalcpu.ReLUF32(l, input)
}

// SigmoidF32 connects an F32 sigmoid layer.
func SigmoidF32(l *layer.Sigmoid, input layer.Layer) layer.Layer {
	return internalcpu.SigmoidF32(l, input)
}

// SigmoidF64 connects an F64 sigmoid layer.
func SigmoidF64(l *layer.Sigmoid, input layer.Layer) layer.Layer {
	return internalcpu.SigmoidF64(l, input)
}

// SigmoidQ7 connects a Q7 sigmoid layer.
func SigmoidQ7(l *layer.Sigmoid, input layer.Layer) layer.Layer {
	return internalcpu.SigmoidQ7(l, input)
}

// TanhF32 connects an F32 tanh layer.
func TanhF32(l *layer.Tanh, input layer.Layer) layer.Layer {
	return internalcpu.TanhF32(l, input)
}

// DenseF32 connects an F32 dense layer.
func DenseF32(l *layer.Dense, neurons int, input layer.Layer) layer.Layer {
	return internalcpu.DenseF32(l, neurons, input)
}

// DenseF64 connects an F64 dense layer.
func DenseF64(l *layer.Dense, neurons int, input layer.Layer) layer.Layer {
	return internalcpu.DenseF64(l, neurons, input)
}
