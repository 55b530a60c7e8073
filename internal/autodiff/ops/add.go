package ops

import (
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

// EWiseAdd: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
//
// If the backend broadcast the operands, each gradient is summed back to its
// operand's shape.
func computeEWiseAdd(_ Op, backend tensor.Backend, inputs []*tensor.RawTensor) *tensor.RawTensor {
	return backend.Add(inputs[0], inputs[1])
}

func gradientEWiseAdd(_ Op, outGrad, node *graph.Node) []*graph.Node {
	a, b := node.Inputs()[0], node.Inputs()[1]
	return []*graph.Node{
		sumToShape(outGrad, a.Shape()),
		sumToShape(outGrad, b.Shape()),
	}
}

// AddScalar: output = a + s. The gradient passes through unchanged.
func computeAddScalar(op Op, backend tensor.Backend, inputs []*tensor.RawTensor) *tensor.RawTensor {
	return backend.AddScalar(inputs[0], op.scalar)
}

func gradientAddScalar(_ Op, outGrad, _ *graph.Node) []*graph.Node {
	return []*graph.Node{outGrad}
}

// Add returns a + b.
func Add(a, b *graph.Node) *graph.Node {
	return apply(NewOp(KindEWiseAdd), a, b)
}

// AddScalar returns a + scalar.
func AddScalar(a *graph.Node, scalar float64) *graph.Node {
	return apply(NewScalarOp(KindAddScalar, scalar), a)
}

// Subtract returns a - b, composed as a + (-b).
func Subtract(a, b *graph.Node) *graph.Node {
	return Add(a, Negate(b))
}

// SubtractScalar returns a - scalar.
func SubtractScalar(a *graph.Node, scalar float64) *graph.Node {
	return AddScalar(a, -scalar)
}
