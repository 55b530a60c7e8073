package ops

import (
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

// Transpose swaps exactly two axes; by default the last two (-2, -1).
//
// Forward:
//
//	output = swapaxes(input, i, j)
//
// Backward:
//
//	∂L/∂input = swapaxes(∂L/∂output, i, j)
//
// A single swap is its own inverse, so the gradient reuses the same pair.
func computeTranspose(op Op, backend tensor.Backend, inputs []*tensor.RawTensor) *tensor.RawTensor {
	return backend.SwapAxes(inputs[0], op.axisPair[0], op.axisPair[1])
}

func gradientTranspose(op Op, outGrad, _ *graph.Node) []*graph.Node {
	return []*graph.Node{apply(op, outGrad)}
}

// Transpose swaps two axes of a. Called with no axes it swaps the last two,
// i.e. the matrix transpose of each batch. Otherwise exactly two axes must be
// given; negative axes count from the end.
func Transpose(a *graph.Node, axes ...int) *graph.Node {
	return apply(NewTranspose(axes...), a)
}
