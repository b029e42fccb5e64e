package layer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/backend/cpu"
	"github.com/ember-ml/ember/internal/layer"
	"github.com/ember-ml/ember/internal/tensor"
)

// denseFixture is a [2,3] input followed by a dense layer with two neurons,
// all memory bound.
type denseFixture struct {
	in    *layer.Input
	dense layer.Dense
	grad  *gradient
}

func newDenseFixture(t *testing.T) *denseFixture {
	t.Helper()
	f := &denseFixture{in: f32Input(2, 3)}
	y := cpu.DenseF32(&f.dense, 2, f.in)
	require.NoError(t, f.dense.Validate())

	f.dense.SetParamem(tensor.AlignedBytes(y.SizeofParamem()))
	f.dense.SetTrainmem(tensor.AlignedBytes(y.SizeofTrainmem()))
	alloc(&y.Base().Result)
	alloc(&y.Base().Deltas)
	f.grad = attachGradient(t, y, []float32{1, 0, 0, 1})

	copy(f.dense.Weights.AsFloat32(), []float32{1, 0, 0, 1, 1, 1})
	copy(f.dense.Bias.AsFloat32(), []float32{0.5, -0.5})
	feed(t, f.in, []float32{1, 2, 3, 4, 5, 6})
	return f
}

func TestDenseShapes(t *testing.T) {
	in := f32Input(2, 3)
	var d layer.Dense
	y := cpu.DenseF32(&d, 5, in)

	assert.Equal(t, []int{2, 5}, y.Base().Result.Shape.Dims())
	assert.Equal(t, []int{3, 5}, d.Weights.Shape.Dims())
	assert.Equal(t, []int{1, 5}, d.Bias.Shape.Dims())
	assert.Same(t, d.Weights.Shape, d.DWeights.Shape)
	assert.Same(t, in.Shape, y.Base().Deltas.Shape)
	assert.NotSame(t, in.Shape, y.Base().Result.Shape)

	assert.Equal(t, 2, y.Base().TrainableParamsCount)
	require.Len(t, y.Base().TrainableParams, 2)
	assert.Same(t, &d.Weights, y.Base().TrainableParams[0])
	assert.Same(t, &d.DBias, y.Base().Gradients[1])
}

func TestDenseForward(t *testing.T) {
	f := newDenseFixture(t)
	f.dense.Forward()
	assert.Equal(t, []float32{4.5, 4.5, 10.5, 10.5}, f.dense.Base().Result.AsFloat32())
}

func TestDenseBackward(t *testing.T) {
	f := newDenseFixture(t)
	f.dense.Forward()
	f.dense.Backward()

	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, f.dense.DWeights.AsFloat32())
	assert.Equal(t, []float32{1, 1}, f.dense.DBias.AsFloat32())
	assert.Equal(t, []float32{1, 0, 1, 0, 1, 1}, f.dense.Base().Deltas.AsFloat32())

	// Gradients are overwritten, not accumulated.
	f.dense.Backward()
	assert.Equal(t, []float32{1, 1}, f.dense.DBias.AsFloat32())
}

func TestDenseCalcResultShape(t *testing.T) {
	in := f32Input(4, 3)
	var d layer.Dense
	y := cpu.DenseF32(&d, 2, in)

	in.Shape.Set(0, 7)
	y.CalcResultShape()
	assert.Equal(t, []int{7, 2}, y.Base().Result.Shape.Dims())

	y.CalcResultShape()
	assert.Equal(t, []int{7, 2}, y.Base().Result.Shape.Dims())
	assert.Equal(t, []int{3, 2}, d.Weights.Shape.Dims())
}

func TestDenseMemorySizes(t *testing.T) {
	in := f32Input(2, 3)
	var d layer.Dense
	y := cpu.DenseF32(&d, 2, in)
	assert.Equal(t, (6+2)*4, y.SizeofParamem())
	assert.Equal(t, (6+2)*4, y.SizeofTrainmem())

	q := &layer.Input{DType: tensor.Q7, Shape: tensor.MustShape(2, 3)}
	q.Init()
	dq := layer.Dense{DType: tensor.Q7, Neurons: 2}
	dq.Connect(q)
	assert.Equal(t, 6+2+2*tensor.Q7ParamsSize, dq.SizeofParamem())
}

func TestDenseStaysWithinReportedMemory(t *testing.T) {
	in := f32Input(2, 3)
	var d layer.Dense
	y := cpu.DenseF32(&d, 2, in)

	const guard = 16
	fill := bytes.Repeat([]byte{0xA5}, guard)

	param := tensor.AlignedBytes(y.SizeofParamem() + guard)
	train := tensor.AlignedBytes(y.SizeofTrainmem() + guard)
	copy(param[y.SizeofParamem():], fill)
	copy(train[y.SizeofTrainmem():], fill)

	y.SetParamem(param[:y.SizeofParamem()])
	y.SetTrainmem(train[:y.SizeofTrainmem()])
	alloc(&y.Base().Result)
	alloc(&y.Base().Deltas)
	attachGradient(t, y, []float32{1, 2, 3, 4})
	feed(t, in, []float32{1, 2, 3, 4, 5, 6})

	for _, p := range []*tensor.Tensor{&d.Weights, &d.Bias} {
		for i := range p.AsFloat32() {
			p.AsFloat32()[i] = 1
		}
	}
	y.Forward()
	y.Backward()

	assert.Equal(t, fill, param[y.SizeofParamem():])
	assert.Equal(t, fill, train[y.SizeofTrainmem():])
	assert.Equal(t, len(d.Weights.Data), cap(d.Weights.Data))
}

func TestDenseValidate(t *testing.T) {
	one := &layer.Input{DType: tensor.F32, Shape: tensor.MustShape(6)}
	one.Init()
	var d layer.Dense
	cpu.DenseF32(&d, 2, one)
	assert.ErrorIs(t, d.Validate(), layer.ErrShape)

	in := f32Input(2, 3)
	noNeurons := layer.Dense{DType: tensor.F32}
	noNeurons.Connect(in)
	assert.ErrorIs(t, noNeurons.Validate(), layer.ErrShape)

	noKernels := layer.Dense{DType: tensor.F32, Neurons: 2}
	noKernels.Connect(in)
	assert.ErrorIs(t, noKernels.Validate(), layer.ErrMissingKernel)

	var unconnected layer.Dense
	cpu.F32.BindDense(&unconnected)
	unconnected.Neurons = 1
	assert.ErrorIs(t, unconnected.Validate(), layer.ErrNotConnected)
}

func TestDenseDoesNotAllocate(t *testing.T) {
	f := newDenseFixture(t)
	allocs := testing.AllocsPerRun(100, func() {
		f.dense.Forward()
		f.dense.Backward()
	})
	assert.Zero(t, allocs)
}
