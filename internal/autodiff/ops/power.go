package ops

import (
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

// PowerScalar: output = a^s for a scalar exponent s.
//
// Backward pass:
//
//	grad_a = outputGrad * s * a^(s-1)
func computePowerScalar(op Op, backend tensor.Backend, inputs []*tensor.RawTensor) *tensor.RawTensor {
	return backend.PowScalar(inputs[0], op.scalar)
}

func gradientPowerScalar(op Op, outGrad, node *graph.Node) []*graph.Node {
	a := node.Inputs()[0]
	return []*graph.Node{MulScalar(Multiply(outGrad, PowerScalar(a, op.scalar-1)), op.scalar)}
}

// PowerScalar returns a raised element-wise to the given exponent.
func PowerScalar(a *graph.Node, exponent float64) *graph.Node {
	return apply(NewScalarOp(KindPowerScalar, exponent), a)
}
