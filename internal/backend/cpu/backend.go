// Package cpu implements the numeric kernels of the Ember engine for CPUs.
//
// Every supported data type has one Kernels set. The set binds its kernels
// into the data type agnostic layers of package layer, which is the only
// place where layer logic meets a concrete number format.
package cpu

import (
	"fmt"

	"github.com/ember-ml/ember/internal/layer"
	"github.com/ember-ml/ember/internal/tensor"
)

// Kernels is the set of numeric kernels for one data type.
// A nil kernel means the operation is not supported for that type.
type Kernels struct {
	DType *tensor.DataType

	LeakyReLU  layer.ScalarKernel
	DLeakyReLU layer.ScalarKernel
	ReLU       layer.UnaryKernel
	DReLU      layer.UnaryKernel
	Sigmoid    layer.UnaryKernel
	DSigmoid   layer.UnaryKernel
	Tanh       layer.UnaryKernel
	DTanh      layer.UnaryKernel
	Multiply   layer.BinaryKernel

	Linear   layer.LinearKernel
	MatMulAT layer.MatMulKernel
	MatMulBT layer.MatMulKernel
	SumRows  layer.ReduceKernel
}

// Kernel sets for the built-in data types.
var (
	F32 = &Kernels{
		DType:      tensor.F32,
		LeakyReLU:  leakyReLUFloat32,
		DLeakyReLU: dLeakyReLUFloat32,
		ReLU:       reluFloat32,
		DReLU:      dReLUFloat32,
		Sigmoid:    sigmoidFloat32,
		DSigmoid:   dSigmoidFloat32,
		Tanh:       tanhFloat32,
		DTanh:      dTanhFloat32,
		Multiply:   multiplyFloat32,
		Linear:     linearFloat32,
		MatMulAT:   matMulATFloat32,
		MatMulBT:   matMulBTFloat32,
		SumRows:    sumRowsFloat32,
	}

	F64 = &Kernels{
		DType:      tensor.F64,
		LeakyReLU:  leakyReLUFloat64,
		DLeakyReLU: dLeakyReLUFloat64,
		ReLU:       reluFloat64,
		DReLU:      dReLUFloat64,
		Sigmoid:    sigmoidFloat64,
		DSigmoid:   dSigmoidFloat64,
		Tanh:       tanhFloat64,
		DTanh:      dTanhFloat64,
		Multiply:   multiplyFloat64,
		Linear:     linearFloat64,
		MatMulAT:   matMulATFloat64,
		MatMulBT:   matMulBTFloat64,
		SumRows:    sumRowsFloat64,
	}

	F16 = &Kernels{
		DType:      tensor.F16,
		LeakyReLU:  leakyReLUFloat16,
		DLeakyReLU: dLeakyReLUFloat16,
		ReLU:       reluFloat16,
		DReLU:      dReLUFloat16,
		Sigmoid:    sigmoidFloat16,
		DSigmoid:   dSigmoidFloat16,
		Tanh:       tanhFloat16,
		DTanh:      dTanhFloat16,
		Multiply:   multiplyFloat16,
	}

	Q7 = &Kernels{
		DType:      tensor.Q7,
		LeakyReLU:  leakyReLUQ7,
		DLeakyReLU: dLeakyReLUQ7,
		ReLU:       reluQ7,
		DReLU:      dReLUQ7,
		Sigmoid:    sigmoidQ7,
		DSigmoid:   dSigmoidQ7,
		Tanh:       tanhQ7,
		DTanh:      dTanhQ7,
		Multiply:   multiplyQ7,
	}
)

// For returns the kernel set of a built-in data type.
func For(dtype *tensor.DataType) (*Kernels, error) {
	switch dtype {
	case tensor.F32:
		return F32, nil
	case tensor.F64:
		return F64, nil
	case tensor.F16:
		return F16, nil
	case tensor.Q7:
		return Q7, nil
	default:
		return nil, fmt.Errorf("cpu: no kernels for dtype %s", dtype)
	}
}

// Name returns the backend name.
func (k *Kernels) Name() string {
	return "CPU/" + k.DType.Name
}
