package ops

import (
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

// ReLU: output = max(0, x).
//
// Backward pass:
//   - d(ReLU(x))/dx = 1 if x > 0, else 0 (including x == 0)
//
// The mask is computed from the realized forward value of the input and enters
// the graph as a constant. Only the sign of x matters, so the mask has no
// differentiable dependency on x; second derivatives through ReLU are zero.
func computeReLU(_ Op, backend tensor.Backend, inputs []*tensor.RawTensor) *tensor.RawTensor {
	return backend.MaximumScalar(inputs[0], 0)
}

func gradientReLU(_ Op, outGrad, node *graph.Node) []*graph.Node {
	engine := node.Engine()
	input := node.Inputs()[0].Realize()
	mask := engine.Constant(engine.Backend().GreaterScalar(input, 0))
	return []*graph.Node{Multiply(outGrad, mask)}
}

// ReLU returns max(0, a) element-wise.
func ReLU(a *graph.Node) *graph.Node {
	return apply(NewOp(KindReLU), a)
}
