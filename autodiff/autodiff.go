// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// Computations are built as a graph of nodes owned by an Engine. Operators
// (Add, MatMul, Summation, ...) create nodes; Backward walks the graph from an
// output and returns the gradient of every node that requires one. Gradients
// are graph nodes themselves and can be differentiated again.
//
// Example:
//
//	import (
//	    "github.com/born-ml/vjp/autodiff"
//	    "github.com/born-ml/vjp/backend/cpu"
//	    "github.com/born-ml/vjp/tensor"
//	)
//
//	func main() {
//	    engine := autodiff.New(cpu.New())
//	    w := engine.Variable(must.M1(tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})))
//	    x := engine.Constant(must.M1(tensor.FromSlice([]float64{1, 0, -1}, tensor.Shape{3, 1})))
//
//	    loss := autodiff.Summation(autodiff.ReLU(autodiff.MatMul(w, x)))
//	    grads := autodiff.Backward(loss, nil)
//	    fmt.Println(grads.Of(w).Realize())
//	}
package autodiff

import (
	"github.com/born-ml/vjp/internal/autodiff"
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/tensor"
)

// Engine owns the backend and the evaluation mode of a graph.
type Engine = graph.Engine

// Node is a value in the computation graph.
type Node = graph.Node

// Operator is implemented by every differentiable operator.
type Operator = graph.Operator

// Option configures an Engine.
type Option = graph.Option

// Gradients maps nodes to their gradients.
type Gradients = autodiff.Gradients

// New creates an Engine computing with backend. Engines are eager unless
// WithLazy(true) is given.
func New(backend tensor.Backend, options ...Option) *Engine {
	return graph.New(backend, options...)
}

// WithLazy selects lazy evaluation: values are computed on first Realize.
func WithLazy(lazy bool) Option {
	return graph.WithLazy(lazy)
}

// Apply creates the node op(inputs...).
func Apply(op Operator, inputs ...*Node) *Node {
	return graph.Apply(op, inputs...)
}

// Backward computes the gradients of output with respect to every node it
// depends on that requires gradients. outGrad seeds the pass and defaults to
// ones when nil.
func Backward(output, outGrad *Node) Gradients {
	return autodiff.Backward(output, outGrad)
}

// Grad returns the gradients of output with respect to each of wrt; nodes
// output does not depend on get zeros.
func Grad(output *Node, wrt ...*Node) []*Node {
	return autodiff.Grad(output, wrt...)
}
