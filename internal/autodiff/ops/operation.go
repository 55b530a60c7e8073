// Package ops defines the catalogue of differentiable operators.
//
// Every operator kind provides:
//   - Forward pass: computed by the backend over realized values
//   - Backward pass: a vector-Jacobian product built from other operators,
//     so gradients are graph nodes and can be differentiated again
//
// Supported operators:
//   - EWiseAdd, AddScalar: d(a+b)/da = 1, d(a+b)/db = 1
//   - EWiseMul, MulScalar: d(a*b)/da = b, d(a*b)/db = a
//   - EWiseDiv, DivScalar: d(a/b)/da = 1/b, d(a/b)/db = -a/b²
//   - PowerScalar: d(a^s)/da = s·a^(s-1)
//   - Negate, Log, Exp, ReLU
//   - Transpose, Reshape, BroadcastTo, Summation: shape transforms
//   - MatMul: batched matrix multiplication (d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad)
//
// Operators are applied through the free functions of this package (Add,
// MatMul, Summation, ...), which build an Op and hand it to graph.Apply.
package ops

import (
	"fmt"
	"slices"

	"github.com/gomlx/exceptions"

	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

// Kind enumerates the operator catalogue. The set is closed: every Kind
// below numKinds has an entry in the rule table.
type Kind int

// Operator kinds.
const (
	KindEWiseAdd Kind = iota
	KindAddScalar
	KindEWiseMul
	KindMulScalar
	KindEWiseDiv
	KindDivScalar
	KindPowerScalar
	KindNegate
	KindLog
	KindExp
	KindReLU
	KindTranspose
	KindReshape
	KindBroadcastTo
	KindSummation
	KindMatMul

	numKinds
)

// Kinds returns every operator kind, in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// String returns the operator name, e.g. "EWiseAdd".
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return rules[k].name
}

// Arity returns the number of inputs operators of this kind take.
func (k Kind) Arity() int {
	if !k.valid() {
		exceptions.Panicf("invalid operator kind %d", int(k))
	}
	return rules[k].arity
}

func (k Kind) valid() bool {
	return k >= 0 && k < numKinds
}

// rule is one entry of the dispatch table.
type rule struct {
	name     string
	arity    int
	compute  func(op Op, backend tensor.Backend, inputs []*tensor.RawTensor) *tensor.RawTensor
	gradient func(op Op, outGrad, node *graph.Node) []*graph.Node
}

// rules is filled by init: the compute and gradient functions apply other
// operators, which in turn read the table.
var rules [numKinds]rule

func init() {
	rules = [numKinds]rule{
		KindEWiseAdd:    {name: "EWiseAdd", arity: 2, compute: computeEWiseAdd, gradient: gradientEWiseAdd},
		KindAddScalar:   {name: "AddScalar", arity: 1, compute: computeAddScalar, gradient: gradientAddScalar},
		KindEWiseMul:    {name: "EWiseMul", arity: 2, compute: computeEWiseMul, gradient: gradientEWiseMul},
		KindMulScalar:   {name: "MulScalar", arity: 1, compute: computeMulScalar, gradient: gradientMulScalar},
		KindEWiseDiv:    {name: "EWiseDiv", arity: 2, compute: computeEWiseDiv, gradient: gradientEWiseDiv},
		KindDivScalar:   {name: "DivScalar", arity: 1, compute: computeDivScalar, gradient: gradientDivScalar},
		KindPowerScalar: {name: "PowerScalar", arity: 1, compute: computePowerScalar, gradient: gradientPowerScalar},
		KindNegate:      {name: "Negate", arity: 1, compute: computeNegate, gradient: gradientNegate},
		KindLog:         {name: "Log", arity: 1, compute: computeLog, gradient: gradientLog},
		KindExp:         {name: "Exp", arity: 1, compute: computeExp, gradient: gradientExp},
		KindReLU:        {name: "ReLU", arity: 1, compute: computeReLU, gradient: gradientReLU},
		KindTranspose:   {name: "Transpose", arity: 1, compute: computeTranspose, gradient: gradientTranspose},
		KindReshape:     {name: "Reshape", arity: 1, compute: computeReshape, gradient: gradientReshape},
		KindBroadcastTo: {name: "BroadcastTo", arity: 1, compute: computeBroadcastTo, gradient: gradientBroadcastTo},
		KindSummation:   {name: "Summation", arity: 1, compute: computeSummation, gradient: gradientSummation},
		KindMatMul:      {name: "MatMul", arity: 2, compute: computeMatMul, gradient: gradientMatMul},
	}
}

// Op is an operator instance: a Kind plus the parameters its rule needs.
// Only the fields relevant to the kind are set. Ops are immutable and safe to
// reuse across any number of applications.
type Op struct {
	kind     Kind
	scalar   float64      // AddScalar, MulScalar, DivScalar, PowerScalar
	shape    tensor.Shape // Reshape, BroadcastTo
	axes     []int        // Summation; nil reduces all axes
	axisPair [2]int       // Transpose
}

// Compile-time check that Op implements graph.Operator.
var _ graph.Operator = Op{}

// NewOp creates a parameterless operator: EWiseAdd, EWiseMul, EWiseDiv,
// Negate, Log, Exp, ReLU or MatMul.
func NewOp(kind Kind) Op {
	switch kind {
	case KindEWiseAdd, KindEWiseMul, KindEWiseDiv, KindNegate, KindLog, KindExp, KindReLU, KindMatMul:
		return Op{kind: kind}
	default:
		exceptions.Panicf("NewOp: %s takes parameters", kind)
		panic("unreachable")
	}
}

// NewScalarOp creates AddScalar, MulScalar, DivScalar or PowerScalar.
func NewScalarOp(kind Kind, scalar float64) Op {
	switch kind {
	case KindAddScalar, KindMulScalar, KindDivScalar, KindPowerScalar:
		return Op{kind: kind, scalar: scalar}
	default:
		exceptions.Panicf("NewScalarOp: %s is not a scalar operator", kind)
		panic("unreachable")
	}
}

// NewTranspose creates a Transpose swapping the two given axes.
// With no axes it swaps the last two, (-2, -1).
func NewTranspose(axes ...int) Op {
	switch len(axes) {
	case 0:
		return Op{kind: KindTranspose, axisPair: [2]int{-2, -1}}
	case 2:
		return Op{kind: KindTranspose, axisPair: [2]int{axes[0], axes[1]}}
	default:
		exceptions.Panicf("Transpose takes an axis pair, got %v", axes)
		panic("unreachable")
	}
}

// NewReshape creates a Reshape to the given shape.
func NewReshape(shape tensor.Shape) Op {
	return Op{kind: KindReshape, shape: shape.Clone()}
}

// NewBroadcastTo creates a BroadcastTo the given shape.
func NewBroadcastTo(shape tensor.Shape) Op {
	return Op{kind: KindBroadcastTo, shape: shape.Clone()}
}

// NewSummation creates a Summation over the given axes; with no axes it
// reduces every axis to a scalar.
func NewSummation(axes ...int) Op {
	if len(axes) == 0 {
		return Op{kind: KindSummation}
	}
	return Op{kind: KindSummation, axes: slices.Clone(axes)}
}

// Kind returns the operator kind.
func (op Op) Kind() Kind {
	return op.kind
}

// Scalar returns the scalar parameter of AddScalar, MulScalar, DivScalar and
// PowerScalar.
func (op Op) Scalar() float64 {
	return op.scalar
}

// TargetShape returns the shape parameter of Reshape and BroadcastTo.
func (op Op) TargetShape() tensor.Shape {
	return op.shape.Clone()
}

// Axes returns the reduced axes of Summation (nil means all axes) or the
// swapped pair of Transpose.
func (op Op) Axes() []int {
	if op.kind == KindTranspose {
		return op.axisPair[:]
	}
	return slices.Clone(op.axes)
}

// Equal reports whether both operators have the same kind and parameters.
func (op Op) Equal(other Op) bool {
	return op.kind == other.kind &&
		op.scalar == other.scalar &&
		op.shape.Equal(other.shape) &&
		slices.Equal(op.axes, other.axes) &&
		(op.axes == nil) == (other.axes == nil) &&
		op.axisPair == other.axisPair
}

// Arity implements graph.Operator.
func (op Op) Arity() int {
	return op.kind.Arity()
}

// Compute implements graph.Operator.
func (op Op) Compute(backend tensor.Backend, inputs ...*tensor.RawTensor) *tensor.RawTensor {
	r := op.rule()
	if len(inputs) != r.arity {
		exceptions.Panicf("%s.Compute: want %d inputs, got %d", op, r.arity, len(inputs))
	}
	return r.compute(op, backend, inputs)
}

// Gradient implements graph.Operator. It always returns one gradient per
// input, in input order.
func (op Op) Gradient(outGrad, node *graph.Node) []*graph.Node {
	return op.rule().gradient(op, outGrad, node)
}

// String returns the kind with its parameters, e.g. "Summation(axes=[0 2])".
func (op Op) String() string {
	switch op.kind {
	case KindAddScalar, KindMulScalar, KindDivScalar, KindPowerScalar:
		return fmt.Sprintf("%s(%g)", op.kind, op.scalar)
	case KindTranspose:
		return fmt.Sprintf("%s(%d, %d)", op.kind, op.axisPair[0], op.axisPair[1])
	case KindReshape, KindBroadcastTo:
		return fmt.Sprintf("%s%s", op.kind, op.shape)
	case KindSummation:
		if op.axes == nil {
			return fmt.Sprintf("%s(all)", op.kind)
		}
		return fmt.Sprintf("%s(axes=%v)", op.kind, op.axes)
	default:
		return op.kind.String()
	}
}

func (op Op) rule() *rule {
	if !op.kind.valid() {
		exceptions.Panicf("invalid operator kind %d", int(op.kind))
	}
	return &rules[op.kind]
}

// apply is the common path of the free functions.
func apply(op Op, inputs ...*graph.Node) *graph.Node {
	return graph.Apply(op, inputs...)
}
