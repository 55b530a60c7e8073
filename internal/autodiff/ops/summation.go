package ops

import (
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

// Summation reduces the input by summing over a set of axes, dropping them.
// With no axes every axis is reduced and the result is a scalar.
//
// Backward:
//
//	grad_input = BroadcastTo(Reshape(grad_output, keepDims), input.shape)
//
// keepDims is the input shape with every reduced axis set to 1, which makes
// the gradient the exact dual of BroadcastTo's.
func computeSummation(op Op, backend tensor.Backend, inputs []*tensor.RawTensor) *tensor.RawTensor {
	return backend.Sum(inputs[0], op.axes)
}

func gradientSummation(op Op, outGrad, node *graph.Node) []*graph.Node {
	inShape := node.Inputs()[0].Shape()
	keepDims := keepDimsShape(inShape, op.axes)
	return []*graph.Node{BroadcastTo(Reshape(outGrad, keepDims), inShape)}
}

// keepDimsShape returns shape with the reduced axes set to 1; nil axes reduce
// all of them.
func keepDimsShape(shape tensor.Shape, axes []int) tensor.Shape {
	keep := make(tensor.Shape, len(shape))
	for i := range keep {
		keep[i] = 1
	}
	if axes == nil {
		return keep
	}

	reduced := make([]bool, len(shape))
	for _, axis := range tensor.NormalizeAxes(axes, len(shape)) {
		reduced[axis] = true
	}
	for i, dim := range shape {
		if !reduced[i] {
			keep[i] = dim
		}
	}
	return keep
}

// Summation returns the sum of a over the given axes. Called with no axes it
// sums every element into a scalar. Negative axes count from the end.
func Summation(a *graph.Node, axes ...int) *graph.Node {
	return apply(NewSummation(axes...), a)
}
