// Copyright 2025 Auris Speech Frontend. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for the Auris speech frontend.
//
// # Overview
//
// Tensors are the fundamental data structure in Auris. This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting
//   - Device/backend abstraction
//
// # Basic Usage
//
//	import (
//	    "github.com/auris-ml/auris/tensor"
//	    "github.com/auris-ml/auris/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Create tensors
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//
//	    // Tensor operations
//	    z := x.Add(y)
//	    result := x.MatMul(y.Transpose())
//	}
//
// # Supported Data Types
//
// The tensor package supports the following data types via the DType constraint:
//   - float32, float64 (floating-point)
//   - int32 (signed integers)
//   - bool (boolean masks)
package tensor
