package model

import "github.com/ember-ml/ember/internal/layer"

var sinkType = layer.NewType("Output gradient", nil)

// sink terminates the chain after the output layer. Its Deltas tensor is
// bound to the caller's gradient, so the output layer reads the upstream
// gradient exactly like any other layer reads its successor's deltas.
type sink struct {
	layer.NoMemory
	base layer.Base
}

func (s *sink) Base() *layer.Base { return &s.base }
func (s *sink) Forward()          {}
func (s *sink) Backward()         {}
func (s *sink) CalcResultShape()  {}
