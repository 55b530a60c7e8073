package ops

import (
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

// EWiseDiv: output = a / b.
//
// Backward pass:
//   - d(a/b)/da = 1/b, so grad_a = outputGrad / b
//   - d(a/b)/db = -a/b², so grad_b = -outputGrad * a / b²
//
// Zeros in b are not guarded against: forward and backward both produce
// Inf/NaN.
func computeEWiseDiv(_ Op, backend tensor.Backend, inputs []*tensor.RawTensor) *tensor.RawTensor {
	return backend.Div(inputs[0], inputs[1])
}

func gradientEWiseDiv(_ Op, outGrad, node *graph.Node) []*graph.Node {
	a, b := node.Inputs()[0], node.Inputs()[1]

	gradA := Divide(outGrad, b)
	gradB := Negate(Divide(Multiply(outGrad, a), PowerScalar(b, 2)))

	return []*graph.Node{
		sumToShape(gradA, a.Shape()),
		sumToShape(gradB, b.Shape()),
	}
}

// DivScalar: output = a / s, grad_a = outputGrad / s.
func computeDivScalar(op Op, backend tensor.Backend, inputs []*tensor.RawTensor) *tensor.RawTensor {
	return backend.DivScalar(inputs[0], op.scalar)
}

func gradientDivScalar(op Op, outGrad, _ *graph.Node) []*graph.Node {
	return []*graph.Node{DivideScalar(outGrad, op.scalar)}
}

// Divide returns the element-wise quotient a / b.
func Divide(a, b *graph.Node) *graph.Node {
	return apply(NewOp(KindEWiseDiv), a, b)
}

// DivideScalar returns a / scalar.
func DivideScalar(a *graph.Node, scalar float64) *graph.Node {
	return apply(NewScalarOp(KindDivScalar, scalar), a)
}
