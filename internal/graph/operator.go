// Package graph implements the computation graph consumed by the operator
// library: nodes record the operator that produced them and its operands,
// and realize their forward value eagerly or lazily.
//
// The backward traversal lives in package autodiff; the operator catalogue
// lives in package autodiff/ops.
package graph

import (
	"fmt"

	"github.com/born-ml/vjp/internal/tensor"
)

// Operator is a differentiable operation that can be applied to nodes.
//
// Implementations are immutable value objects: Compute and Gradient must not
// mutate the operator, so one instance may be applied any number of times.
type Operator interface {
	fmt.Stringer

	// Arity returns the number of inputs the operator takes.
	Arity() int

	// Compute performs the forward computation over realized input values.
	Compute(backend tensor.Backend, inputs ...*tensor.RawTensor) *tensor.RawTensor

	// Gradient returns the vector-Jacobian product of node with respect to
	// each of its inputs, given the gradient flowing into node's output.
	// The result has exactly Arity() entries, in input order, and entry i has
	// the shape of node.Inputs()[i].
	Gradient(outGrad, node *Node) []*Node
}
