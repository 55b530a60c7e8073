// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/vjp/internal/tensor"
)

// Shape represents the dimensions of a tensor. A scalar has an empty shape.
type Shape = tensor.Shape

// RawTensor is a dense row-major float64 array.
type RawTensor = tensor.RawTensor

// Backend is the set of array kernels operators are computed with.
// See the backend/cpu package for the default implementation.
type Backend = tensor.Backend

// New creates a zero-filled tensor.
func New(shape Shape) (*RawTensor, error) {
	return tensor.NewRaw(shape)
}

// FromSlice creates a tensor holding a copy of data.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromSlice(data []float64, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// Scalar creates a rank-0 tensor.
func Scalar(value float64) *RawTensor {
	return tensor.Scalar(value)
}

// Zeros creates a tensor filled with 0.
func Zeros(shape Shape) (*RawTensor, error) {
	return tensor.Zeros(shape)
}

// Ones creates a tensor filled with 1.
func Ones(shape Shape) (*RawTensor, error) {
	return tensor.Ones(shape)
}

// Full creates a tensor with every element set to value.
func Full(shape Shape, value float64) (*RawTensor, error) {
	return tensor.Full(shape, value)
}

// BroadcastShapes returns the shape a and b broadcast to, and whether either
// of them needs broadcasting. It fails if the shapes are incompatible.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
