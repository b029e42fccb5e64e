// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package layer provides the layer contract and the built-in layers.
//
// # Overview
//
// A network is a linear chain of layers, each connected to its predecessor:
//
//	var (
//	    in    = layer.Input{DType: tensor.F32, Shape: tensor.MustShape(1, 4)}
//	    dense layer.Dense
//	    leaky layer.LeakyReLU
//	)
//	x := in.Init()
//	x = cpu.DenseF32(&dense, 8, x)
//	x = cpu.LeakyReLUF32(&leaky, 0.01, x)
//
// Layers are plain structs the caller allocates, statically if needed.
// A data type bound constructor from package backend/cpu installs the
// kernels and connects the layer. Memory is planned by package model.
//
// # Introspection
//
// Layer type names and spec printers are compiled in only with the
// emberdebug build tag:
//
//	go build -tags emberdebug ./...
//
// Without it Type.Name is empty and PrintSpecs prints nothing.
package layer

import (
	"github.com/ember-ml/ember/internal/layer"
	"github.com/ember-ml/ember/tensor"
)

// Layer is the dispatch contract every layer satisfies.
type Layer = layer.Layer

// Base holds the fields shared by every layer.
type Base = layer.Base

// Type identifies a kind of layer at run time.
type Type = layer.Type

// PrintFunc is a printf-style output function such as fmt.Printf.
type PrintFunc = layer.PrintFunc

// SpecsFunc prints the configuration of a layer.
type SpecsFunc = layer.SpecsFunc

// Validator is implemented by layers that check their own preconditions.
type Validator = layer.Validator

// Scratcher is implemented by layers that need backward scratch memory.
type Scratcher = layer.Scratcher

// NoMemory provides zero-size memory negotiation for parameter-free layers.
type NoMemory = layer.NoMemory

// Kernel signatures.
type (
	UnaryKernel  = layer.UnaryKernel
	ScalarKernel = layer.ScalarKernel
	BinaryKernel = layer.BinaryKernel
	LinearKernel = layer.LinearKernel
	MatMulKernel = layer.MatMulKernel
	ReduceKernel = layer.ReduceKernel
)

// Built-in layers.
type (
	Input     = layer.Input
	Dense     = layer.Dense
	LeakyReLU = layer.LeakyReLU
	ReLU      = layer.ReLU
	Sigmoid   = layer.Sigmoid
	Tanh      = layer.Tanh
)

// Layer types of the built-in layers.
var (
	InputType     = layer.InputType
	DenseType     = layer.DenseType
	LeakyReLUType = layer.LeakyReLUType
	ReLUType      = layer.ReLUType
	SigmoidType   = layer.SigmoidType
	TanhType      = layer.TanhType
)

// Debug reports whether introspection is compiled in.
const Debug = layer.Debug

// Errors.
var (
	ErrMissingKernel = layer.ErrMissingKernel
	ErrMissingDType  = layer.ErrMissingDType
	ErrMissingParam  = layer.ErrMissingParam
	ErrNotConnected  = layer.ErrNotConnected
	ErrShape         = layer.ErrShape
)

// NewType creates the type descriptor for a custom layer kind.
func NewType(name string, specs SpecsFunc) *Type {
	return layer.NewType(name, specs)
}

// Connect performs the shared construction steps for a custom layer:
// install typ, link self after input, alias the input's result shape and
// set dtype on result and deltas.
func Connect(self, input Layer, typ *Type, dtype *tensor.DataType) *Base {
	return layer.Connect(self, input, typ, dtype)
}

// PrintSpecs prints the type name and configuration of l.
// Prints nothing unless built with the emberdebug tag.
func PrintSpecs(l Layer, printf PrintFunc) {
	layer.PrintSpecs(l, printf)
}
