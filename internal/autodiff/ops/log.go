package ops

import (
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

// Log computes the element-wise natural logarithm.
//
// Forward:
//
//	output = log(input)
//
// Backward:
//
//	∂L/∂input = ∂L/∂output / input
//
// Non-positive inputs are not rejected: they yield -Inf/NaN in the forward
// value and Inf/NaN in the gradient.
func computeLog(_ Op, backend tensor.Backend, inputs []*tensor.RawTensor) *tensor.RawTensor {
	return backend.Log(inputs[0])
}

func gradientLog(_ Op, outGrad, node *graph.Node) []*graph.Node {
	return []*graph.Node{Divide(outGrad, node.Inputs()[0])}
}

// Log returns the element-wise natural logarithm of a.
func Log(a *graph.Node) *graph.Node {
	return apply(NewOp(KindLog), a)
}
