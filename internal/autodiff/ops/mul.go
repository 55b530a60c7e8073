package ops

import (
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

// EWiseMul: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
func computeEWiseMul(_ Op, backend tensor.Backend, inputs []*tensor.RawTensor) *tensor.RawTensor {
	return backend.Mul(inputs[0], inputs[1])
}

func gradientEWiseMul(_ Op, outGrad, node *graph.Node) []*graph.Node {
	a, b := node.Inputs()[0], node.Inputs()[1]
	return []*graph.Node{
		sumToShape(Multiply(outGrad, b), a.Shape()),
		sumToShape(Multiply(outGrad, a), b.Shape()),
	}
}

// MulScalar: output = a * s, grad_a = outputGrad * s.
func computeMulScalar(op Op, backend tensor.Backend, inputs []*tensor.RawTensor) *tensor.RawTensor {
	return backend.MulScalar(inputs[0], op.scalar)
}

func gradientMulScalar(op Op, outGrad, _ *graph.Node) []*graph.Node {
	return []*graph.Node{MulScalar(outGrad, op.scalar)}
}

// Multiply returns the element-wise product a * b.
func Multiply(a, b *graph.Node) *graph.Node {
	return apply(NewOp(KindEWiseMul), a, b)
}

// MulScalar returns a * scalar.
func MulScalar(a *graph.Node, scalar float64) *graph.Node {
	return apply(NewScalarOp(KindMulScalar, scalar), a)
}
