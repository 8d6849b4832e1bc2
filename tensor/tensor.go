// Copyright 2025 Auris Speech Frontend. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/auris-ml/auris/internal/tensor"
)

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// DataType represents runtime type information for tensors.
type DataType = tensor.DataType

// Supported data types for tensors.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
	Int32   = tensor.Int32
	Bool    = tensor.Bool
)

// Device represents the compute device for tensor operations.
type Device = tensor.Device

// Supported compute devices.
const (
	CPU = tensor.CPU
)

// RawTensor is the low-level, type-erased tensor representation.
type RawTensor = tensor.RawTensor

// Backend defines the interface that all compute backends must implement.
type Backend = tensor.Backend

// DType is a constraint for supported tensor data types.
type DType = tensor.DType

// Tensor is a typed, backend-bound multi-dimensional array.
type Tensor[T tensor.DType, B tensor.Backend] = tensor.Tensor[T, B]

// New wraps a RawTensor in a typed Tensor.
func New[T tensor.DType, B tensor.Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T, B](raw, b)
}

// NewRaw creates a new RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice creates a tensor from a Go slice with the given shape.
//
// Example:
//
//	x, err := tensor.FromSlice[float32]([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
func FromSlice[T tensor.DType, B tensor.Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, b)
}

// Zeros creates a tensor filled with zeros.
func Zeros[T tensor.DType, B tensor.Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[T tensor.DType, B tensor.Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Ones[T, B](shape, b)
}

// Full creates a tensor filled with a specific value.
func Full[T tensor.DType, B tensor.Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, b)
}

// Randn creates a tensor with random values from N(0, 1).
func Randn[T tensor.DType, B tensor.Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Randn[T, B](shape, b)
}

// Where selects elements from x where cond is true, otherwise from y.
func Where[T tensor.DType, B tensor.Backend](cond *Tensor[bool, B], x, y *Tensor[T, B]) *Tensor[T, B] {
	return tensor.Where(cond, x, y)
}

// BroadcastShapes implements NumPy-style broadcasting rules.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
