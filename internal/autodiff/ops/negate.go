package ops

import (
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

func computeNegate(_ Op, backend tensor.Backend, inputs []*tensor.RawTensor) *tensor.RawTensor {
	return backend.Negate(inputs[0])
}

func gradientNegate(_ Op, outGrad, _ *graph.Node) []*graph.Node {
	return []*graph.Node{Negate(outGrad)}
}

// Negate returns -a.
func Negate(a *graph.Node) *graph.Node {
	return apply(NewOp(KindNegate), a)
}
