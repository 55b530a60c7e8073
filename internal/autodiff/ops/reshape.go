package ops

import (
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

// Reshape reinterprets the input with a new shape holding the same number of
// elements, in the same row-major order.
//
// Backward:
//   - d_input: Reshape(d_output, input.shape)
func computeReshape(op Op, backend tensor.Backend, inputs []*tensor.RawTensor) *tensor.RawTensor {
	return backend.Reshape(inputs[0], op.shape)
}

func gradientReshape(_ Op, outGrad, node *graph.Node) []*graph.Node {
	return []*graph.Node{Reshape(outGrad, node.Inputs()[0].Shape())}
}

// Reshape returns a with the given shape. The element count must match.
func Reshape(a *graph.Node, shape tensor.Shape) *graph.Node {
	return apply(NewReshape(shape), a)
}
