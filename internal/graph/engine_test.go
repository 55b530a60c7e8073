package graph_test

import (
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/vjp/internal/backend/cpu"
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

// addOp adds its inputs and counts how often it was computed.
type addOp struct {
	arity int
	calls *int
}

func (op addOp) String() string { return "TestAdd" }
func (op addOp) Arity() int     { return op.arity }

func (op addOp) Compute(backend tensor.Backend, inputs ...*tensor.RawTensor) *tensor.RawTensor {
	*op.calls++
	sum := inputs[0]
	for _, in := range inputs[1:] {
		sum = backend.Add(sum, in)
	}
	return sum
}

func (op addOp) Gradient(outGrad, _ *graph.Node) []*graph.Node {
	grads := make([]*graph.Node, op.arity)
	for i := range grads {
		grads[i] = outGrad
	}
	return grads
}

func raw(data ...float64) *tensor.RawTensor {
	return must.M1(tensor.FromSlice(data, tensor.Shape{len(data)}))
}

func TestNew(t *testing.T) {
	assert.Panics(t, func() { graph.New(nil) })

	engine := graph.New(cpu.New())
	assert.False(t, engine.Lazy())
	assert.Equal(t, "CPU", engine.Backend().Name())
	assert.True(t, graph.New(cpu.New(), graph.WithLazy(true)).Lazy())
}

func TestLeaves(t *testing.T) {
	engine := graph.New(cpu.New())
	v := engine.Variable(raw(1, 2))
	c := engine.Constant(raw(3))

	assert.True(t, v.IsLeaf())
	assert.True(t, v.RequiresGrad())
	assert.True(t, v.IsRealized())
	assert.False(t, c.RequiresGrad())
	assert.Less(t, v.ID(), c.ID())
	assert.Same(t, engine, v.Engine())
	assert.Equal(t, "#1:Variable", v.String())
	assert.Equal(t, "#2:Constant", c.String())
	assert.Panics(t, func() { engine.Variable(nil) })
}

func TestApply_Eager(t *testing.T) {
	engine := graph.New(cpu.New())
	calls := 0
	op := addOp{arity: 2, calls: &calls}

	a := engine.Variable(raw(1, 2))
	b := engine.Constant(raw(10, 20))
	sum := graph.Apply(op, a, b)

	assert.Equal(t, 1, calls, "eager engines compute on Apply")
	assert.True(t, sum.IsRealized())
	assert.True(t, sum.RequiresGrad())
	assert.False(t, sum.IsLeaf())
	assert.Equal(t, []*graph.Node{a, b}, sum.Inputs())
	assert.Equal(t, []float64{11, 22}, sum.Realize().Data())
	assert.Equal(t, 1, calls, "values are cached")
	assert.Equal(t, "#3:TestAdd(#1, #2)", sum.String())

	// Without gradients the result is detached from its inputs.
	detached := graph.Apply(op, b, b)
	assert.False(t, detached.RequiresGrad())
	assert.True(t, detached.IsLeaf())
	assert.Empty(t, detached.Inputs())
	assert.Equal(t, []float64{20, 40}, detached.Realize().Data())
}

func TestApply_Lazy(t *testing.T) {
	engine := graph.New(cpu.New(), graph.WithLazy(true))
	calls := 0
	op := addOp{arity: 2, calls: &calls}

	a := engine.Constant(raw(1, 2))
	b := engine.Constant(raw(3, 4))
	sum := graph.Apply(op, a, b)
	total := graph.Apply(op, sum, sum)

	assert.Equal(t, 0, calls)
	assert.False(t, total.IsRealized())
	assert.False(t, total.RequiresGrad())
	assert.False(t, total.IsLeaf(), "lazy nodes keep their inputs")

	assert.Equal(t, []float64{8, 12}, total.Realize().Data())
	assert.Equal(t, 2, calls, "shared input computed once")
	assert.True(t, sum.IsRealized())
	assert.True(t, total.Shape().Equal(tensor.Shape{2}))
}

func TestApply_Errors(t *testing.T) {
	engine := graph.New(cpu.New())
	other := graph.New(cpu.New())
	calls := 0
	a := engine.Variable(raw(1))

	assert.Panics(t, func() { graph.Apply(addOp{arity: 2, calls: &calls}, a) }, "arity")
	assert.Panics(t, func() { graph.Apply(addOp{arity: 0, calls: &calls}) }, "no inputs")
	assert.Panics(t, func() { graph.Apply(addOp{arity: 2, calls: &calls}, a, nil) }, "nil input")
	assert.Panics(t, func() {
		graph.Apply(addOp{arity: 2, calls: &calls}, a, other.Variable(raw(1)))
	}, "mixed engines")
	assert.Equal(t, 0, calls)
}

func TestNode_Detach(t *testing.T) {
	engine := graph.New(cpu.New(), graph.WithLazy(true))
	calls := 0
	a := engine.Variable(raw(1, 2))
	sum := graph.Apply(addOp{arity: 2, calls: &calls}, a, a)

	d := sum.Detach()
	require.True(t, d.IsLeaf())
	assert.False(t, d.RequiresGrad())
	assert.Same(t, sum.Realize(), d.Realize())
	assert.Equal(t, 1, calls)
}
