package model

import (
	"fmt"
	"io"

	"github.com/ember-ml/ember/internal/serialization"
)

// parameterName names the j-th trainable tensor of the i-th layer.
func parameterName(i, j int) string {
	return fmt.Sprintf("layers.%d.%d", i, j)
}

// SaveParameters writes the trainable parameters of every layer to w in
// SafeTensors format. Parameter memory must be distributed.
func (m *Model) SaveParameters(w io.Writer) error {
	var tensors []serialization.NamedTensor
	for i, l := range m.layers {
		for j, p := range l.Base().TrainableParams {
			tensors = append(tensors, serialization.NamedTensor{Name: parameterName(i, j), Tensor: p})
		}
	}
	meta := map[string]string{"format": "ember", "layers": fmt.Sprint(len(m.layers))}
	if err := serialization.WriteSafeTensors(w, tensors, meta); err != nil {
		return fmt.Errorf("save parameters: %w", err)
	}
	m.cfg.Logger.Debug("parameters saved", "tensors", len(tensors))
	return nil
}

// LoadParameters restores trainable parameters written by SaveParameters
// into the already distributed parameter memory. Every parameter of the
// model must be present with matching data type and shape.
func (m *Model) LoadParameters(r io.Reader) error {
	f, err := serialization.ReadSafeTensors(r)
	if err != nil {
		return fmt.Errorf("load parameters: %w", err)
	}
	n := 0
	for i, l := range m.layers {
		for j, p := range l.Base().TrainableParams {
			if err := f.Load(parameterName(i, j), p); err != nil {
				return fmt.Errorf("load parameters: %w", err)
			}
			n++
		}
	}
	m.cfg.Logger.Debug("parameters loaded", "tensors", n, "stored", len(f.Tensors))
	return nil
}
