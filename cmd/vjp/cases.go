package main

import (
	"github.com/born-ml/vjp/internal/autodiff/ops"
	"github.com/born-ml/vjp/internal/gradcheck"
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

// checkCase is one gradient check of the catalogue.
type checkCase struct {
	kind   ops.Kind
	name   string
	f      gradcheck.Func
	inputs func(seed uint64) []*tensor.RawTensor
}

// input describes one random input: its shape and value range.
type input struct {
	shape  tensor.Shape
	lo, hi float64
}

func signed(shape ...int) input   { return input{shape: shape, lo: -1, hi: 1} }
func positive(shape ...int) input { return input{shape: shape, lo: 0.5, hi: 2} }

// generate draws every input from its own stream derived from seed.
func generate(specs ...input) func(seed uint64) []*tensor.RawTensor {
	return func(seed uint64) []*tensor.RawTensor {
		values := make([]*tensor.RawTensor, len(specs))
		for i, s := range specs {
			values[i] = gradcheck.Uniform(s.shape, s.lo, s.hi, seed*101+uint64(i))
		}
		return values
	}
}

func unary(f func(a *graph.Node) *graph.Node) gradcheck.Func {
	return func(in ...*graph.Node) *graph.Node { return f(in[0]) }
}

func binary(f func(a, b *graph.Node) *graph.Node) gradcheck.Func {
	return func(in ...*graph.Node) *graph.Node { return f(in[0], in[1]) }
}

// checkCases returns at least one case per operator kind, plus the
// broadcasting variants.
func checkCases() []checkCase {
	return []checkCase{
		{ops.KindEWiseAdd, "a + b", binary(ops.Add), generate(signed(2, 3), signed(2, 3))},
		{ops.KindEWiseAdd, "a + b, b broadcast", binary(ops.Add), generate(signed(2, 3), signed(3))},
		{ops.KindAddScalar, "a + 2", unary(func(a *graph.Node) *graph.Node { return ops.AddScalar(a, 2) }),
			generate(signed(4))},
		{ops.KindEWiseMul, "a * b", binary(ops.Multiply), generate(signed(2, 3), signed(2, 3))},
		{ops.KindEWiseMul, "a * b, both broadcast", binary(ops.Multiply), generate(signed(4, 1, 3), signed(2, 1))},
		{ops.KindMulScalar, "a * -3", unary(func(a *graph.Node) *graph.Node { return ops.MulScalar(a, -3) }),
			generate(signed(2, 2))},
		{ops.KindEWiseDiv, "a / b", binary(ops.Divide), generate(signed(2, 3), positive(2, 3))},
		{ops.KindEWiseDiv, "a / b, b broadcast", binary(ops.Divide), generate(signed(2, 3), positive(2, 1))},
		{ops.KindDivScalar, "a / 4", unary(func(a *graph.Node) *graph.Node { return ops.DivideScalar(a, 4) }),
			generate(signed(3))},
		{ops.KindPowerScalar, "a ^ 3", unary(func(a *graph.Node) *graph.Node { return ops.PowerScalar(a, 3) }),
			generate(signed(2, 3))},
		{ops.KindPowerScalar, "a ^ -0.5", unary(func(a *graph.Node) *graph.Node { return ops.PowerScalar(a, -0.5) }),
			generate(positive(5))},
		{ops.KindNegate, "-a", unary(ops.Negate), generate(signed(2, 3))},
		{ops.KindLog, "log(a)", unary(ops.Log), generate(positive(2, 3))},
		{ops.KindExp, "exp(a)", unary(ops.Exp), generate(signed(2, 3))},
		{ops.KindReLU, "relu(a)", unary(ops.ReLU), generate(signed(3, 4))},
		{ops.KindTranspose, "transpose(a)", unary(func(a *graph.Node) *graph.Node { return ops.Transpose(a) }),
			generate(signed(2, 3, 4))},
		{ops.KindTranspose, "transpose(a, 0, 2)", unary(func(a *graph.Node) *graph.Node { return ops.Transpose(a, 0, 2) }),
			generate(signed(2, 3, 4))},
		{ops.KindReshape, "reshape(a, (3, 1, 2))",
			unary(func(a *graph.Node) *graph.Node { return ops.Reshape(a, tensor.Shape{3, 1, 2}) }),
			generate(signed(2, 3))},
		{ops.KindBroadcastTo, "broadcast_to(a, (2, 3, 4))",
			unary(func(a *graph.Node) *graph.Node { return ops.BroadcastTo(a, tensor.Shape{2, 3, 4}) }),
			generate(signed(3, 1))},
		{ops.KindBroadcastTo, "broadcast_to(a, (4, 1, 3))",
			unary(func(a *graph.Node) *graph.Node { return ops.BroadcastTo(a, tensor.Shape{4, 1, 3}) }),
			generate(signed(1, 3))},
		{ops.KindSummation, "sum(a)", unary(func(a *graph.Node) *graph.Node { return ops.Summation(a) }),
			generate(signed(2, 3, 4))},
		{ops.KindSummation, "sum(a, 0, 2)", unary(func(a *graph.Node) *graph.Node { return ops.Summation(a, 0, 2) }),
			generate(signed(2, 3, 4))},
		{ops.KindMatMul, "a @ b", binary(ops.MatMul), generate(signed(2, 3), signed(3, 4))},
		{ops.KindMatMul, "a @ b, batch broadcast", binary(ops.MatMul), generate(signed(3, 4), signed(2, 3, 4, 5))},
		{ops.KindMatMul, "a @ b, size-1 batch", binary(ops.MatMul), generate(signed(2, 1, 3, 4), signed(5, 4, 2))},
	}
}
