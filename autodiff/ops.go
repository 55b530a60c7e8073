// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff

import (
	"github.com/born-ml/vjp/internal/autodiff/ops"
	"github.com/born-ml/vjp/tensor"
)

// Add returns a + b, broadcasting the operands.
func Add(a, b *Node) *Node { return ops.Add(a, b) }

// AddScalar returns a + scalar.
func AddScalar(a *Node, scalar float64) *Node { return ops.AddScalar(a, scalar) }

// Subtract returns a - b.
func Subtract(a, b *Node) *Node { return ops.Subtract(a, b) }

// SubtractScalar returns a - scalar.
func SubtractScalar(a *Node, scalar float64) *Node { return ops.SubtractScalar(a, scalar) }

// Multiply returns the element-wise product a * b.
func Multiply(a, b *Node) *Node { return ops.Multiply(a, b) }

// MulScalar returns a * scalar.
func MulScalar(a *Node, scalar float64) *Node { return ops.MulScalar(a, scalar) }

// Divide returns the element-wise quotient a / b.
func Divide(a, b *Node) *Node { return ops.Divide(a, b) }

// DivideScalar returns a / scalar.
func DivideScalar(a *Node, scalar float64) *Node { return ops.DivideScalar(a, scalar) }

// PowerScalar returns a raised element-wise to exponent.
func PowerScalar(a *Node, exponent float64) *Node { return ops.PowerScalar(a, exponent) }

// Negate returns -a.
func Negate(a *Node) *Node { return ops.Negate(a) }

// Log returns the element-wise natural logarithm.
func Log(a *Node) *Node { return ops.Log(a) }

// Exp returns the element-wise exponential.
func Exp(a *Node) *Node { return ops.Exp(a) }

// ReLU returns max(0, a).
func ReLU(a *Node) *Node { return ops.ReLU(a) }

// Transpose swaps two axes of a; the last two by default.
func Transpose(a *Node, axes ...int) *Node { return ops.Transpose(a, axes...) }

// Reshape returns a with a new shape holding the same number of elements.
func Reshape(a *Node, shape tensor.Shape) *Node { return ops.Reshape(a, shape) }

// BroadcastTo expands a to shape.
func BroadcastTo(a *Node, shape tensor.Shape) *Node { return ops.BroadcastTo(a, shape) }

// Summation sums a over axes, or over every axis when none are given.
func Summation(a *Node, axes ...int) *Node { return ops.Summation(a, axes...) }

// MatMul returns the batched matrix product a @ b.
func MatMul(a, b *Node) *Node { return ops.MatMul(a, b) }
