package layer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/backend/cpu"
	"github.com/ember-ml/ember/internal/layer"
	"github.com/ember-ml/ember/internal/tensor"
)

func TestLeakyReLUForward(t *testing.T) {
	in := f32Input(1, 4)
	var leaky layer.LeakyReLU
	y := cpu.LeakyReLUF32(&leaky, 0.1, in)
	bindActivation(y)

	feed(t, in, []float32{-2, -0.5, 0, 3})
	y.Forward()

	assert.InDeltaSlice(t, []float32{-0.2, -0.05, 0, 3}, y.Base().Result.AsFloat32(), 1e-6)
}

func TestLeakyReLUBackward(t *testing.T) {
	in := f32Input(1, 4)
	var leaky layer.LeakyReLU
	y := cpu.LeakyReLUF32(&leaky, 0.1, in)
	bindActivation(y)
	attachGradient(t, y, []float32{1, 1, 1, 1})

	feed(t, in, []float32{-2, -0.5, 0, 3})
	y.Forward()
	y.Backward()

	assert.InDeltaSlice(t, []float32{0.1, 0.1, 1, 1}, y.Base().Deltas.AsFloat32(), 1e-6)
}

func TestLeakyReLUBackwardScalesUpstreamGradient(t *testing.T) {
	in := f32Input(4)
	var leaky layer.LeakyReLU
	y := cpu.LeakyReLUF32(&leaky, 0.1, in)
	bindActivation(y)
	attachGradient(t, y, []float32{1, 2, 3, 4})

	feed(t, in, []float32{-1, -1, 1, 1})
	y.Forward()
	y.Backward()

	assert.InDeltaSlice(t, []float32{0.1, 0.2, 3, 4}, y.Base().Deltas.AsFloat32(), 1e-6)
}

func TestSigmoidAtZero(t *testing.T) {
	in := f32Input(1)
	var s layer.Sigmoid
	y := cpu.SigmoidF32(&s, in)
	bindActivation(y)
	attachGradient(t, y, []float32{1})

	feed(t, in, []float32{0})
	y.Forward()
	assert.InDelta(t, 0.5, y.Base().Result.AsFloat32()[0], 1e-6)

	y.Backward()
	assert.InDelta(t, 0.25, y.Base().Deltas.AsFloat32()[0], 1e-6)
	// Backward recomputes into scratch and leaves Result alone.
	assert.InDelta(t, 0.5, y.Base().Result.AsFloat32()[0], 1e-6)
}

func TestTanhBackward(t *testing.T) {
	in := f32Input(2)
	var th layer.Tanh
	y := cpu.TanhF32(&th, in)
	bindActivation(y)
	attachGradient(t, y, []float32{2, 2})

	feed(t, in, []float32{0, 100})
	y.Forward()
	y.Backward()

	assert.InDeltaSlice(t, []float32{0, 1}, y.Base().Result.AsFloat32(), 1e-6)
	assert.InDeltaSlice(t, []float32{2, 0}, y.Base().Deltas.AsFloat32(), 1e-6)
}

func TestReLUDerivativeAtZeroIsOne(t *testing.T) {
	in := f32Input(3)
	var r layer.ReLU
	y := cpu.ReLUF32(&r, in)
	bindActivation(y)
	attachGradient(t, y, []float32{5, 5, 5})

	feed(t, in, []float32{-1, 0, 1})
	y.Forward()
	y.Backward()

	assert.Equal(t, []float32{0, 0, 1}, y.Base().Result.AsFloat32())
	assert.Equal(t, []float32{0, 5, 5}, y.Base().Deltas.AsFloat32())
}

func TestShapeAliasing(t *testing.T) {
	in := f32Input(1, 4)
	var (
		leaky layer.LeakyReLU
		s     layer.Sigmoid
	)
	x := cpu.LeakyReLUF32(&leaky, 0.1, in)
	x = cpu.SigmoidF32(&s, x)

	assert.Same(t, in.Shape, leaky.Base().Result.Shape)
	assert.Same(t, leaky.Base().Result.Shape, s.Base().Result.Shape)
	assert.Same(t, in.Shape, s.Base().Deltas.Shape)

	// A change by the owner is visible everywhere.
	in.Shape.Set(0, 3)
	assert.Equal(t, []int{3, 4}, x.Base().Result.Shape.Dims())
}

func TestConnectLinksBothDirections(t *testing.T) {
	in := f32Input(2)
	var leaky layer.LeakyReLU
	y := cpu.LeakyReLUF32(&leaky, 0.1, in)

	assert.Same(t, in, y.Base().Input.(*layer.Input))
	assert.Same(t, &leaky, in.Base().Output.(*layer.LeakyReLU))
	assert.Nil(t, y.Base().Output)
	assert.Same(t, layer.LeakyReLUType, y.Base().Type)
	assert.Same(t, tensor.F32, y.Base().Result.DType)
	assert.Same(t, tensor.F32, y.Base().Deltas.DType)
	assert.Zero(t, y.Base().TrainableParamsCount)
	assert.Nil(t, y.Base().TrainableParams)
}

func TestActivationsNeedNoParameterMemory(t *testing.T) {
	in := f32Input(2, 2)
	var (
		leaky layer.LeakyReLU
		s     layer.Sigmoid
	)
	for _, l := range []layer.Layer{
		cpu.LeakyReLUF32(&leaky, 0.1, in),
		cpu.SigmoidF32(&s, in),
	} {
		assert.Zero(t, l.SizeofParamem())
		assert.Zero(t, l.SizeofTrainmem())
	}
}

func TestScratchSize(t *testing.T) {
	in := f32Input(1, 4)
	var s layer.Sigmoid
	cpu.SigmoidF32(&s, in)
	assert.Equal(t, tensor.Sizeof(&in.Base().Result), s.SizeofScratch())
	assert.Equal(t, 16, s.SizeofScratch())

	q := &layer.Input{DType: tensor.Q7, Shape: tensor.MustShape(1, 4)}
	q.Init()
	var sq layer.Sigmoid
	cpu.SigmoidQ7(&sq, q)
	assert.Equal(t, 4+tensor.Q7ParamsSize, sq.SizeofScratch())
}

func TestCalcResultShapeIsNoOpForActivations(t *testing.T) {
	in := f32Input(1, 4)
	var leaky layer.LeakyReLU
	y := cpu.LeakyReLUF32(&leaky, 0.1, in)

	before := y.Base().Result.Shape
	y.CalcResultShape()
	y.CalcResultShape()
	assert.Same(t, before, y.Base().Result.Shape)
	assert.Equal(t, []int{1, 4}, before.Dims())
}

func TestQ7LeakyReLUChain(t *testing.T) {
	in := &layer.Input{DType: tensor.Q7, Shape: tensor.MustShape(4)}
	in.Init()
	var leaky layer.LeakyReLU
	y := cpu.LeakyReLUQ7(&leaky, 0.125, in)
	bindActivation(y)

	x, err := tensor.FromQ7([]float32{-2, -0.5, 0, 3}, 4, 0, 4)
	require.NoError(t, err)
	in.Base().Result.Data = x.Data
	in.Base().Result.Params = x.Params

	y.Forward()
	assert.InDeltaSlice(t, []float32{-0.25, -0.0625, 0, 3}, y.Base().Result.Float32s(), 1.0/16)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		l    layer.Validator
		want error
	}{
		{"leaky without dtype", &layer.LeakyReLU{}, layer.ErrMissingDType},
		{"leaky without kernels", &layer.LeakyReLU{DType: tensor.F32, Alpha: tensor.F32Scalar(0.1)}, layer.ErrMissingKernel},
		{"leaky without alpha", &layer.LeakyReLU{DType: tensor.F32}, layer.ErrMissingParam},
		{"sigmoid without kernels", &layer.Sigmoid{DType: tensor.F32}, layer.ErrMissingKernel},
		{"relu without kernels", &layer.ReLU{DType: tensor.F32}, layer.ErrMissingKernel},
		{"tanh without kernels", &layer.Tanh{DType: tensor.F32}, layer.ErrMissingKernel},
		{"input without shape", &layer.Input{DType: tensor.F32}, layer.ErrShape},
		{"input without dtype", &layer.Input{Shape: tensor.MustShape(1)}, layer.ErrMissingDType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.l.Validate(), tt.want)
		})
	}

	in := f32Input(2)
	var leaky layer.LeakyReLU
	cpu.LeakyReLUF32(&leaky, 0.1, in)
	assert.NoError(t, leaky.Validate())
	assert.NoError(t, in.Validate())
}

func TestActivationsDoNotAllocate(t *testing.T) {
	in := f32Input(8, 16)
	var (
		leaky layer.LeakyReLU
		s     layer.Sigmoid
	)
	x := cpu.LeakyReLUF32(&leaky, 0.01, in)
	x = cpu.SigmoidF32(&s, x)
	bindActivation(&leaky)
	bindActivation(&s)
	attachGradient(t, x, make([]float32, 8*16))
	feed(t, in, make([]float32, 8*16))

	allocs := testing.AllocsPerRun(100, func() {
		leaky.Forward()
		s.Forward()
		s.Backward()
		leaky.Backward()
	})
	assert.Zero(t, allocs)
}
