// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor types of the Ember engine.
//
// # Overview
//
// A Tensor is a typed, shaped view over memory owned by the caller:
//   - DataType describes element size, parameter block size and formatting
//   - Shape is a shared handle; layers alias their predecessor's shape
//   - Data and Params are byte slices bound after memory planning
//
// Byte sizes are derived from shape and data type only, so memory for a
// whole network can be planned before any buffer exists.
//
// # Data Types
//
//   - F32, F64, F16: floating point, no parameter block
//   - Q7: 8 bit fixed point, real = (q - zeroPoint) / 2^shift, with a
//     4 byte parameter block holding shift and zero point
//
// # Basic Usage
//
//	x, err := tensor.FromFloat32([]float32{-2, -0.5, 0, 3}, 1, 4)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(x.Shape, x.DataSize()) // [1 4] 16
package tensor
