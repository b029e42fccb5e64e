//go:build emberdebug

package layer_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ember-ml/ember/internal/backend/cpu"
	"github.com/ember-ml/ember/internal/layer"
)

func sprintf(b *strings.Builder) layer.PrintFunc {
	return func(format string, a ...any) (int, error) {
		return fmt.Fprintf(b, format, a...)
	}
}

func TestPrintSpecs(t *testing.T) {
	in := f32Input(1, 4)
	var (
		leaky layer.LeakyReLU
		s     layer.Sigmoid
		d     layer.Dense
	)
	cpu.LeakyReLUF32(&leaky, 0.1, in)
	cpu.SigmoidF32(&s, &leaky)
	cpu.DenseF32(&d, 3, &s)

	var b strings.Builder
	for _, l := range []layer.Layer{in, &leaky, &s, &d} {
		layer.PrintSpecs(l, sprintf(&b))
	}
	assert.Equal(t,
		"Input (shape: [1 4], dtype: F32)\n"+
			"Leaky ReLU (alpha: 0.10000)\n"+
			"Sigmoid\n"+
			"Dense (neurons: 3)\n",
		b.String())
}

func TestTypeNames(t *testing.T) {
	assert.True(t, layer.Debug)
	assert.Equal(t, "Leaky ReLU", layer.LeakyReLUType.Name)
	assert.Equal(t, "Sigmoid", layer.SigmoidType.String())
}
