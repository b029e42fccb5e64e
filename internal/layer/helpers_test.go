package layer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/layer"
	"github.com/ember-ml/ember/internal/tensor"
)

// gradient terminates a chain in tests; its Deltas hold the upstream gradient.
type gradient struct {
	layer.NoMemory
	base layer.Base
}

func (g *gradient) Base() *layer.Base { return &g.base }
func (g *gradient) Forward()          {}
func (g *gradient) Backward()         {}
func (g *gradient) CalcResultShape()  {}

// attachGradient connects a gradient sink after l and fills it with values.
func attachGradient(t *testing.T, l layer.Layer, values []float32) *gradient {
	t.Helper()
	g := &gradient{}
	layer.Connect(g, l, nil, l.Base().Result.DType)
	alloc(&g.base.Deltas)
	require.Len(t, values, g.base.Deltas.NumElements())
	copy(g.base.Deltas.AsFloat32(), values)
	return g
}

func alloc(t *tensor.Tensor) {
	t.Bind(tensor.AlignedBytes(tensor.SizeofData(t)), tensor.AlignedBytes(tensor.SizeofParams(t)))
}

// feed binds the input layer's result to values.
func feed(t *testing.T, in *layer.Input, values []float32) {
	t.Helper()
	x, err := tensor.FromFloat32(values, in.Shape.Dims()...)
	require.NoError(t, err)
	r := &in.Base().Result
	r.Data = x.Data
}

// bindActivation binds result, deltas and scratch memory of l.
func bindActivation(l layer.Layer) {
	alloc(&l.Base().Result)
	alloc(&l.Base().Deltas)
	if s, ok := l.(layer.Scratcher); ok {
		s.SetScratch(tensor.AlignedBytes(s.SizeofScratch()))
	}
}

func f32Input(dims ...int) *layer.Input {
	in := &layer.Input{DType: tensor.F32, Shape: tensor.MustShape(dims...)}
	in.Init()
	return in
}
