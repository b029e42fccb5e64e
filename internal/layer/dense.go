package layer

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// DenseType identifies Dense layers.
var DenseType = NewType("Dense", printDenseSpecs)

// Dense is a fully connected layer: y = x·W + b.
//
// Input shape [batch, in], weights [in, neurons], bias [1, neurons],
// result [batch, neurons]. Dense changes the shape of its input, so it
// owns its result shape and implements CalcResultShape. Its Deltas tensor
// is the gradient with respect to its input and has the input's shape.
//
// Weights and bias live in parameter memory, their gradients in training
// memory. Both are negotiated with the planner. Gradients are overwritten
// by every backward pass.
type Dense struct {
	DType   *tensor.DataType
	Neurons int

	// Linear computes result = a·b + c.
	Linear LinearKernel

	// MatMulAT computes result = aᵀ·b.
	MatMulAT MatMulKernel

	// MatMulBT computes result = a·bᵀ.
	MatMulBT MatMulKernel

	// SumRows sums the rows of a into result.
	SumRows ReduceKernel

	Weights  tensor.Tensor
	Bias     tensor.Tensor
	DWeights tensor.Tensor
	DBias    tensor.Tensor

	base Base

	resultDims  [2]int
	weightsDims [2]int
	biasDims    [2]int

	resultShape  tensor.Shape
	weightsShape tensor.Shape
	biasShape    tensor.Shape

	params [2]*tensor.Tensor
	grads  [2]*tensor.Tensor
}

// Connect initializes the layer and links it after input.
func (l *Dense) Connect(input Layer) Layer {
	b := Connect(l, input, DenseType, l.DType)
	x := &input.Base().Result

	// A non 2-D input is reported by Validate.
	batch, features := x.Shape.At(0), 0
	if x.Shape.Dim() == 2 {
		features = x.Shape.At(1)
	}
	l.resultDims = [2]int{batch, l.Neurons}
	l.weightsDims = [2]int{features, l.Neurons}
	l.biasDims = [2]int{1, l.Neurons}
	l.resultShape = tensor.ShapeOver(l.resultDims[:])
	l.weightsShape = tensor.ShapeOver(l.weightsDims[:])
	l.biasShape = tensor.ShapeOver(l.biasDims[:])

	b.Result.Shape = &l.resultShape
	b.Deltas.Shape = x.Shape

	l.Weights = tensor.Tensor{DType: l.DType, Shape: &l.weightsShape}
	l.Bias = tensor.Tensor{DType: l.DType, Shape: &l.biasShape}
	l.DWeights = tensor.Tensor{DType: l.DType, Shape: &l.weightsShape}
	l.DBias = tensor.Tensor{DType: l.DType, Shape: &l.biasShape}

	l.params = [2]*tensor.Tensor{&l.Weights, &l.Bias}
	l.grads = [2]*tensor.Tensor{&l.DWeights, &l.DBias}
	b.TrainableParamsCount = len(l.params)
	b.TrainableParams = l.params[:]
	b.Gradients = l.grads[:]
	return l
}

// Base returns the shared layer fields.
func (l *Dense) Base() *Base { return &l.base }

// Forward computes result = x_in·W + b.
func (l *Dense) Forward() {
	l.Linear(inputResult(&l.base), &l.Weights, &l.Bias, &l.base.Result)
}

// Backward computes the parameter gradients and the input gradient:
//
//	dW     = x_inᵀ · delta_out
//	db     = Σ_rows delta_out
//	deltas = delta_out · Wᵀ
func (l *Dense) Backward() {
	x := inputResult(&l.base)
	deltaOut := outputDeltas(&l.base)

	l.MatMulAT(x, deltaOut, &l.DWeights)
	l.SumRows(deltaOut, &l.DBias)
	l.MatMulBT(deltaOut, &l.Weights, &l.base.Deltas)
}

// CalcResultShape copies the batch size from the input.
func (l *Dense) CalcResultShape() {
	l.resultShape.Set(0, inputResult(&l.base).Shape.At(0))
}

// SizeofParamem returns the size of weights and bias.
func (l *Dense) SizeofParamem() int {
	return tensor.Sizeof(&l.Weights) + tensor.Sizeof(&l.Bias)
}

// SetParamem binds weights and bias to mem.
func (l *Dense) SetParamem(mem []byte) {
	bindPair(&l.Weights, &l.Bias, mem)
}

// SizeofTrainmem returns the size of the weight and bias gradients.
func (l *Dense) SizeofTrainmem() int {
	return tensor.Sizeof(&l.DWeights) + tensor.Sizeof(&l.DBias)
}

// SetTrainmem binds the gradients to mem.
func (l *Dense) SetTrainmem(mem []byte) {
	bindPair(&l.DWeights, &l.DBias, mem)
}

// Validate checks the configuration and the input shape.
func (l *Dense) Validate() error {
	switch {
	case l.DType == nil:
		return fmt.Errorf("dense: %w", ErrMissingDType)
	case l.Neurons <= 0:
		return fmt.Errorf("dense: %w: %d neurons", ErrShape, l.Neurons)
	case l.Linear == nil:
		return missingKernel("dense", "Linear")
	case l.MatMulAT == nil:
		return missingKernel("dense", "MatMulAT")
	case l.MatMulBT == nil:
		return missingKernel("dense", "MatMulBT")
	case l.SumRows == nil:
		return missingKernel("dense", "SumRows")
	case l.base.Input == nil:
		return fmt.Errorf("dense: %w", ErrNotConnected)
	}
	x := inputResult(&l.base)
	if x.Shape.Dim() != 2 || x.Shape.At(1) != l.weightsDims[0] {
		return fmt.Errorf("dense: %w: input %s, weights %s", ErrShape, x.Shape, &l.weightsShape)
	}
	return nil
}

// bindPair lays out two tensors in mem: both data blocks first, then both
// parameter blocks, so element data stays aligned to the element size.
func bindPair(a, b *tensor.Tensor, mem []byte) {
	ad, bd := tensor.SizeofData(a), tensor.SizeofData(b)
	ap := tensor.SizeofParams(a)
	a.Bind(mem[:ad], mem[ad+bd:])
	b.Bind(mem[ad:ad+bd], mem[ad+bd+ap:])
}

func printDenseSpecs(l Layer, printf PrintFunc) {
	_, _ = printf("neurons: %d", l.(*Dense).Neurons)
}
