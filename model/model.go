// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model assembles layers into an executable network.
//
// # Basic Usage
//
//	m, err := model.New(&in, out, model.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	params := tensor.AlignedBytes(m.SizeofParameterMemory())
//	_ = m.DistributeParameterMemory(params)
//	infer := tensor.AlignedBytes(m.SizeofInferenceMemory())
//	_ = m.ScheduleInferenceMemory(infer)
//
//	y := m.Forward(x)
//
// For training, also schedule training memory and call Backward with the
// gradient of the loss with respect to the output.
package model

import (
	"github.com/ember-ml/ember/internal/model"
	"github.com/ember-ml/ember/internal/serialization"
	"github.com/ember-ml/ember/layer"
)

// Model is a linear chain of layers with planned memory.
type Model = model.Model

// Config controls assembly and memory planning.
type Config = model.Config

// ValidationError describes the first layer that failed validation.
type ValidationError = model.ValidationError

// Errors.
var (
	ErrBrokenChain    = model.ErrBrokenChain
	ErrBufferTooSmall = model.ErrBufferTooSmall
	ErrDTypeMismatch  = model.ErrDTypeMismatch
	ErrLink           = model.ErrLink

	// Checkpoint errors returned by SaveParameters and LoadParameters.
	ErrUnboundTensor    = serialization.ErrUnboundTensor
	ErrTensorMismatch   = serialization.ErrTensorMismatch
	ErrChecksumMismatch = serialization.ErrChecksumMismatch
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return model.DefaultConfig()
}

// New assembles the chain from input to output and validates it.
func New(input, output layer.Layer, cfg Config) (*Model, error) {
	return model.New(input, output, cfg)
}
