package ops

import (
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

// Exp: output = exp(input).
//
// Backward:
//
//	∂L/∂input = ∂L/∂output * exp(input)
//
// exp(input) is the node itself, so no extra exponential is applied.
func computeExp(_ Op, backend tensor.Backend, inputs []*tensor.RawTensor) *tensor.RawTensor {
	return backend.Exp(inputs[0])
}

func gradientExp(_ Op, outGrad, node *graph.Node) []*graph.Node {
	return []*graph.Node{Multiply(outGrad, node)}
}

// Exp returns the element-wise exponential of a.
func Exp(a *graph.Node) *graph.Node {
	return apply(NewOp(KindExp), a)
}
