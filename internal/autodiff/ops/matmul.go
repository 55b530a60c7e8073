package ops

import (
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

// MatMul: output = a @ b, batched over leading axes with broadcasting.
//
// Backward pass:
//   - d(A@B)/dA = outputGrad @ B^T
//   - d(A@B)/dB = A^T @ outputGrad
//
// When an operand was broadcast across batch axes, its raw gradient carries
// those axes: the leading rank(grad) - rank(operand) axes are summed away,
// and batch axes where the operand had size 1 are summed keeping the axis.
func computeMatMul(_ Op, backend tensor.Backend, inputs []*tensor.RawTensor) *tensor.RawTensor {
	return backend.MatMul(inputs[0], inputs[1])
}

func gradientMatMul(_ Op, outGrad, node *graph.Node) []*graph.Node {
	a, b := node.Inputs()[0], node.Inputs()[1]

	gradA := MatMul(outGrad, Transpose(b))
	gradB := MatMul(Transpose(a), outGrad)

	return []*graph.Node{
		reduceBatch(gradA, a.Shape()),
		reduceBatch(gradB, b.Shape()),
	}
}

// reduceBatch sums the batch axes that broadcasting added to grad so that it
// matches the operand shape.
func reduceBatch(grad *graph.Node, shape tensor.Shape) *graph.Node {
	if extra := grad.Shape().Rank() - shape.Rank(); extra > 0 {
		leading := make([]int, extra)
		for i := range leading {
			leading[i] = i
		}
		grad = Summation(grad, leading...)
	}
	// Remaining mismatches are batch axes of size 1 in the operand.
	return sumToShape(grad, shape)
}

// MatMul returns the (batched) matrix product a @ b. Both operands must have
// rank >= 2.
func MatMul(a, b *graph.Node) *graph.Node {
	return apply(NewOp(KindMatMul), a, b)
}
