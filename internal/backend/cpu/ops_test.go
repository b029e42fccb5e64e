package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/tensor"
)

func f32(t *testing.T, values []float32, dims ...int) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromFloat32(values, dims...)
	require.NoError(t, err)
	return x
}

func f64(t *testing.T, values []float64, dims ...int) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromFloat64(values, dims...)
	require.NoError(t, err)
	return x
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func TestLeakyReLUFloat32(t *testing.T) {
	x := f32(t, []float32{-2, -0.5, 0, 3}, 1, 4)
	out := tensor.New(tensor.F32, x.Shape)

	leakyReLUFloat32(x, tensor.F32Scalar(0.1), out)
	assert.InDeltaSlice(t, []float32{-0.2, -0.05, 0, 3}, out.AsFloat32(), 1e-6)

	dLeakyReLUFloat32(x, tensor.F32Scalar(0.1), out)
	assert.InDeltaSlice(t, []float32{0.1, 0.1, 1, 1}, out.AsFloat32(), 1e-6)
}

func TestDLeakyReLUAtZeroUsesUnitSlope(t *testing.T) {
	alpha := float32(0.3)

	x := f32(t, []float32{0, float32(math.Copysign(0, -1))}, 2)
	out := tensor.New(tensor.F32, x.Shape)
	dLeakyReLUFloat32(x, tensor.F32Scalar(alpha), out)
	assert.Equal(t, []float32{1, 1}, out.AsFloat32())

	x64 := f64(t, []float64{0}, 1)
	out64 := tensor.New(tensor.F64, x64.Shape)
	dLeakyReLUFloat64(x64, tensor.F64Scalar(0.3), out64)
	assert.Equal(t, []float64{1}, out64.AsFloat64())
}

func TestReLUFloat32(t *testing.T) {
	x := f32(t, []float32{-1, 0, 2}, 3)
	out := tensor.New(tensor.F32, x.Shape)

	reluFloat32(x, out)
	assert.Equal(t, []float32{0, 0, 2}, out.AsFloat32())

	dReLUFloat32(x, out)
	assert.Equal(t, []float32{0, 1, 1}, out.AsFloat32())
}

func TestSigmoidFloat32(t *testing.T) {
	x := f32(t, []float32{-2, 0, 2}, 3)
	out := tensor.New(tensor.F32, x.Shape)

	sigmoidFloat32(x, out)
	want := []float32{float32(sigmoid(-2)), 0.5, float32(sigmoid(2))}
	assert.InDeltaSlice(t, want, out.AsFloat32(), 1e-6)

	// In place: derivative from sigmoid values.
	dSigmoidFloat32(out, out)
	for i, s := range want {
		assert.InDelta(t, s*(1-s), out.AsFloat32()[i], 1e-6)
	}
}

func TestTanhFloat32(t *testing.T) {
	x := f32(t, []float32{-1, 0, 0.5}, 3)
	out := tensor.New(tensor.F32, x.Shape)

	tanhFloat32(x, out)
	assert.InDeltaSlice(t, []float32{float32(math.Tanh(-1)), 0, float32(math.Tanh(0.5))}, out.AsFloat32(), 1e-6)

	dTanhFloat32(out, out)
	assert.InDelta(t, 1-math.Pow(math.Tanh(-1), 2), out.AsFloat32()[0], 1e-6)
	assert.InDelta(t, 1.0, out.AsFloat32()[1], 1e-6)
}

func TestMultiplyInPlace(t *testing.T) {
	a := f32(t, []float32{1, 2, 3}, 3)
	b := f32(t, []float32{4, 5, -1}, 3)
	multiplyFloat32(a, b, a)
	assert.Equal(t, []float32{4, 10, -3}, a.AsFloat32())

	c := f64(t, []float64{1, 2, 3}, 3)
	d := f64(t, []float64{0.5, 0.5, 2}, 3)
	multiplyFloat64(c, d, c)
	assert.Equal(t, []float64{0.5, 1, 6}, c.AsFloat64())
}

func TestFloat64Activations(t *testing.T) {
	x := f64(t, []float64{-2, 0, 1}, 3)
	out := tensor.New(tensor.F64, x.Shape)

	leakyReLUFloat64(x, tensor.F64Scalar(0.25), out)
	assert.Equal(t, []float64{-0.5, 0, 1}, out.AsFloat64())

	reluFloat64(x, out)
	assert.Equal(t, []float64{0, 0, 1}, out.AsFloat64())

	dReLUFloat64(x, out)
	assert.Equal(t, []float64{0, 1, 1}, out.AsFloat64())

	sigmoidFloat64(x, out)
	assert.InDeltaSlice(t, []float64{sigmoid(-2), 0.5, sigmoid(1)}, out.AsFloat64(), 1e-12)

	dSigmoidFloat64(out, out)
	assert.InDelta(t, 0.25, out.AsFloat64()[1], 1e-12)

	tanhFloat64(x, out)
	assert.InDelta(t, math.Tanh(1), out.AsFloat64()[2], 1e-12)

	dTanhFloat64(out, out)
	assert.InDelta(t, 1.0, out.AsFloat64()[1], 1e-12)
}

func TestLinearAndGradientsFloat32(t *testing.T) {
	// x [2,3], w [3,2], b [1,2]
	x := f32(t, []float32{1, 2, 3, 4, 5, 6}, 2, 3)
	w := f32(t, []float32{1, 0, 0, 1, 1, 1}, 3, 2)
	b := f32(t, []float32{0.5, -0.5}, 1, 2)

	y := tensor.New(tensor.F32, tensor.MustShape(2, 2))
	linearFloat32(x, w, b, y)
	assert.Equal(t, []float32{4.5, 4.5, 10.5, 10.5}, y.AsFloat32())

	delta := f32(t, []float32{1, 0, 0, 1}, 2, 2)

	dw := tensor.New(tensor.F32, w.Shape)
	matMulATFloat32(x, delta, dw)
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, dw.AsFloat32())

	db := tensor.New(tensor.F32, b.Shape)
	sumRowsFloat32(delta, db)
	assert.Equal(t, []float32{1, 1}, db.AsFloat32())

	dx := tensor.New(tensor.F32, x.Shape)
	matMulBTFloat32(delta, w, dx)
	assert.Equal(t, []float32{1, 0, 1, 0, 1, 1}, dx.AsFloat32())
}

func TestLinearAndGradientsFloat64(t *testing.T) {
	x := f64(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	w := f64(t, []float64{1, 0, 0, 1, 1, 1}, 3, 2)
	b := f64(t, []float64{0.5, -0.5}, 1, 2)

	y := tensor.New(tensor.F64, tensor.MustShape(2, 2))
	linearFloat64(x, w, b, y)
	assert.Equal(t, []float64{4.5, 4.5, 10.5, 10.5}, y.AsFloat64())

	delta := f64(t, []float64{1, 0, 0, 1}, 2, 2)

	dw := tensor.New(tensor.F64, w.Shape)
	matMulATFloat64(x, delta, dw)
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, dw.AsFloat64())

	db := tensor.New(tensor.F64, b.Shape)
	sumRowsFloat64(delta, db)
	assert.Equal(t, []float64{1, 1}, db.AsFloat64())

	dx := tensor.New(tensor.F64, x.Shape)
	matMulBTFloat64(delta, w, dx)
	assert.Equal(t, []float64{1, 0, 1, 0, 1, 1}, dx.AsFloat64())
}

func TestFloat16Kernels(t *testing.T) {
	x, err := tensor.FromFloat16([]float32{-2, 0, 3}, 3)
	require.NoError(t, err)
	out := tensor.New(tensor.F16, x.Shape)

	leakyReLUFloat16(x, tensor.F16Scalar(0.5), out)
	assert.Equal(t, []float32{-1, 0, 3}, out.Float32s())

	dLeakyReLUFloat16(x, tensor.F16Scalar(0.5), out)
	assert.Equal(t, []float32{0.5, 1, 1}, out.Float32s())

	sigmoidFloat16(x, out)
	assert.InDelta(t, 0.5, out.Float32s()[1], 1e-3)

	dSigmoidFloat16(out, out)
	assert.InDelta(t, 0.25, out.Float32s()[1], 1e-3)

	g, err := tensor.FromFloat16([]float32{2, 2, 2}, 3)
	require.NoError(t, err)
	multiplyFloat16(out, g, out)
	assert.InDelta(t, 0.5, out.Float32s()[1], 1e-3)
}

func TestQ7Kernels(t *testing.T) {
	x, err := tensor.FromQ7([]float32{-2, -0.5, 0, 3}, 4, 0, 1, 4)
	require.NoError(t, err)
	out := tensor.New(tensor.Q7, x.Shape)

	leakyReLUQ7(x, tensor.Q7ScalarFromFloat(0.125, 7, 0), out)
	shift, zp := out.Q7Params()
	assert.Equal(t, uint16(4), shift)
	assert.Equal(t, int8(0), zp)
	assert.InDeltaSlice(t, []float32{-0.25, -0.0625, 0, 3}, out.Float32s(), 1.0/16)

	dLeakyReLUQ7(x, tensor.Q7ScalarFromFloat(0.125, 7, 0), out)
	assert.InDeltaSlice(t, []float32{0.125, 0.125, 1, 1}, out.Float32s(), 1.0/64)

	sigmoidQ7(x, out)
	shift, zp = out.Q7Params()
	assert.Equal(t, sigmoidShiftQ7, shift)
	assert.Equal(t, sigmoidZeroQ7, zp)
	assert.InDelta(t, 0.5, out.Float32s()[2], 1.0/256)

	dSigmoidQ7(out, out)
	assert.InDelta(t, 0.25, out.Float32s()[2], 1.0/256)
}

func TestQ7MultiplyUsesUpstreamQuantization(t *testing.T) {
	a, err := tensor.FromQ7([]float32{0.5, 1}, 6, 0, 2)
	require.NoError(t, err)
	b, err := tensor.FromQ7([]float32{2, -3}, 4, 0, 2)
	require.NoError(t, err)

	multiplyQ7(a, b, a)

	shift, zp := a.Q7Params()
	assert.Equal(t, uint16(4), shift)
	assert.Equal(t, int8(0), zp)
	assert.InDeltaSlice(t, []float32{1, -3}, a.Float32s(), 1.0/16)
}

func TestFor(t *testing.T) {
	for _, dt := range []*tensor.DataType{tensor.F32, tensor.F64, tensor.F16, tensor.Q7} {
		k, err := For(dt)
		require.NoError(t, err)
		assert.Same(t, dt, k.DType)
		assert.NotNil(t, k.LeakyReLU)
		assert.NotNil(t, k.Multiply)
	}

	_, err := For(&tensor.DataType{Name: "custom", Size: 3})
	require.Error(t, err)
	assert.Equal(t, "CPU/F32", F32.Name())
}

func TestLargeFloat32DenseKernelsDoNotAllocate(t *testing.T) {
	// 256x256 spans 16 blocks of 64x64, enough for a parallel gemm.
	const n = 256
	x := tensor.New(tensor.F32, tensor.MustShape(n, n))
	w := tensor.New(tensor.F32, tensor.MustShape(n, n))
	b := tensor.New(tensor.F32, tensor.MustShape(1, n))
	y := tensor.New(tensor.F32, tensor.MustShape(n, n))
	for i := range x.AsFloat32() {
		x.AsFloat32()[i] = float32(i%7) / 7
		w.AsFloat32()[i] = float32(i%5) / 5
	}

	allocs := testing.AllocsPerRun(3, func() {
		linearFloat32(x, w, b, y)
		matMulATFloat32(x, y, w)
		matMulBTFloat32(y, w, x)
	})
	assert.Zero(t, allocs)
}
