package ops

import (
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

// BroadcastTo expands the input to the target shape, aligning shapes from the
// right: size-1 axes are stretched and missing leading axes are created.
//
// Backward:
//
//	grad_input = Reshape(Summation(grad_output, axes), input.shape)
//
// where axes are the target axes at which the input, left-padded with 1s to
// the target rank, differs from the target. When no axis was touched the
// gradient is only reshaped.
func computeBroadcastTo(op Op, backend tensor.Backend, inputs []*tensor.RawTensor) *tensor.RawTensor {
	return backend.BroadcastTo(inputs[0], op.shape)
}

func gradientBroadcastTo(op Op, outGrad, node *graph.Node) []*graph.Node {
	inShape := node.Inputs()[0].Shape()
	return []*graph.Node{reduceBroadcast(outGrad, inShape, op.shape)}
}

// BroadcastTo returns a expanded to shape.
func BroadcastTo(a *graph.Node, shape tensor.Shape) *graph.Node {
	return apply(NewBroadcastTo(shape), a)
}
