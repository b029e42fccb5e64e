package layer

import "github.com/ember-ml/ember/internal/tensor"

// Kernel signatures. A kernel is bound to one data type. Elementwise kernels
// may be called with result aliasing one of their inputs; matrix kernels may not.
type (
	// UnaryKernel computes result = f(x) elementwise.
	UnaryKernel func(x, result *tensor.Tensor)

	// ScalarKernel computes result = f(x, s) elementwise, s encoded for the kernel's data type.
	ScalarKernel func(x *tensor.Tensor, s tensor.Scalar, result *tensor.Tensor)

	// BinaryKernel computes result = f(a, b) elementwise.
	BinaryKernel func(a, b, result *tensor.Tensor)

	// LinearKernel computes result = a·b + c, with c broadcast over the rows of a·b.
	LinearKernel func(a, b, c, result *tensor.Tensor)

	// MatMulKernel computes a matrix product into result.
	MatMulKernel func(a, b, result *tensor.Tensor)

	// ReduceKernel sums the rows of a into the single row of result.
	ReduceKernel func(a, result *tensor.Tensor)
)
