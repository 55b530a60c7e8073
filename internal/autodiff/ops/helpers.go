package ops

import (
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

// reduceBroadcast is the inverse of broadcasting shape to target: it sums
// grad (of shape target) over the created or stretched axes and reshapes the
// result to shape.
//
// Example:
//
//	Forward: a(3, 1) broadcast to (2, 3, 4)
//	Backward: grad(2, 3, 4) -> sum over axes (0, 2) -> (3,) -> reshape (3, 1)
func reduceBroadcast(grad *graph.Node, shape, target tensor.Shape) *graph.Node {
	axes := tensor.BroadcastAxes(shape, target)
	if len(axes) > 0 {
		grad = Summation(grad, axes...)
	}
	return Reshape(grad, shape)
}

// sumToShape returns grad unchanged when it already has the given shape, and
// otherwise reduces it like reduceBroadcast. It undoes implicit backend
// broadcasting in element-wise and batched operators.
func sumToShape(grad *graph.Node, shape tensor.Shape) *graph.Node {
	gradShape := grad.Shape()
	if gradShape.Equal(shape) {
		return grad
	}
	return reduceBroadcast(grad, shape, gradShape)
}
