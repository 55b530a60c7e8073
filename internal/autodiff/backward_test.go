package autodiff_test

import (
	"math"
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/vjp/internal/autodiff"
	"github.com/born-ml/vjp/internal/autodiff/ops"
	"github.com/born-ml/vjp/internal/backend/cpu"
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

func raw(data []float64, shape ...int) *tensor.RawTensor {
	return must.M1(tensor.FromSlice(data, shape))
}

// forEachMode runs fn on an eager and on a lazy engine.
func forEachMode(t *testing.T, fn func(t *testing.T, engine *graph.Engine)) {
	t.Helper()
	for _, lazy := range []bool{false, true} {
		name := "Eager"
		if lazy {
			name = "Lazy"
		}
		t.Run(name, func(t *testing.T) {
			fn(t, graph.New(cpu.New(), graph.WithLazy(lazy)))
		})
	}
}

func TestBackward_SimpleMultiplication(t *testing.T) {
	forEachMode(t, func(t *testing.T, engine *graph.Engine) {
		x := engine.Variable(raw([]float64{3}, 1))
		y := ops.Multiply(x, x) // y = x²

		grads := autodiff.Backward(y, nil)
		require.NotNil(t, grads.Of(x))
		assert.Equal(t, []float64{6}, grads.Of(x).Realize().Data())
		assert.Equal(t, []float64{1}, grads.Of(y).Realize().Data())
	})
}

func TestBackward_GradientAccumulation(t *testing.T) {
	forEachMode(t, func(t *testing.T, engine *graph.Engine) {
		x := engine.Variable(raw([]float64{1, 2, 3}, 3))
		y := engine.Variable(raw([]float64{4, 5, 6}, 3))

		// f = x*y + x, so df/dx = y + 1 and df/dy = x.
		f := ops.Add(ops.Multiply(x, y), x)
		grads := autodiff.Backward(f, nil)

		assert.Equal(t, []float64{5, 6, 7}, grads.Of(x).Realize().Data())
		assert.Equal(t, []float64{1, 2, 3}, grads.Of(y).Realize().Data())
	})
}

func TestBackward_Diamond(t *testing.T) {
	forEachMode(t, func(t *testing.T, engine *graph.Engine) {
		x := engine.Variable(raw([]float64{1, -2}, 2))
		b := ops.MulScalar(x, 2)
		c := ops.MulScalar(x, 3)
		d := ops.Summation(ops.Add(b, c))

		grads := autodiff.Backward(d, nil)
		assert.Equal(t, []float64{5, 5}, grads.Of(x).Realize().Data())
	})
}

func TestBackward_ChainRule(t *testing.T) {
	forEachMode(t, func(t *testing.T, engine *graph.Engine) {
		data := []float64{-1, 0, 0.5}
		x := engine.Variable(raw(data, 3))
		// f = sum(exp(2x)), df/dx = 2·exp(2x).
		f := ops.Summation(ops.Exp(ops.MulScalar(x, 2)))

		grads := autodiff.Backward(f, nil)
		got := grads.Of(x).Realize().Data()
		for i, v := range data {
			assert.InDelta(t, 2*math.Exp(2*v), got[i], 1e-12)
		}
	})
}

func TestBackward_OutputGradient(t *testing.T) {
	forEachMode(t, func(t *testing.T, engine *graph.Engine) {
		x := engine.Variable(raw([]float64{1, 2, 3}, 3))
		y := ops.MulScalar(x, 4)
		outGrad := engine.Constant(raw([]float64{1, 0, -1}, 3))

		grads := autodiff.Backward(y, outGrad)
		assert.Equal(t, []float64{4, 0, -4}, grads.Of(x).Realize().Data())
	})
}

func TestBackward_OutputGradientShapeMismatch(t *testing.T) {
	engine := graph.New(cpu.New())
	x := engine.Variable(raw([]float64{1, 2, 3}, 3))
	y := ops.Negate(x)
	assert.Panics(t, func() {
		autodiff.Backward(y, engine.Constant(raw([]float64{1, 2}, 2)))
	})
}

func TestBackward_Constants(t *testing.T) {
	forEachMode(t, func(t *testing.T, engine *graph.Engine) {
		x := engine.Variable(raw([]float64{2}, 1))
		c := engine.Constant(raw([]float64{5}, 1))
		scaled := ops.Multiply(c, c) // does not require gradients
		y := ops.Multiply(x, scaled)

		assert.False(t, scaled.RequiresGrad())
		grads := autodiff.Backward(y, nil)
		assert.Equal(t, []float64{25}, grads.Of(x).Realize().Data())
		assert.Nil(t, grads.Of(c))
		assert.Nil(t, grads.Of(scaled))
	})
}

func TestBackward_SecondOrder(t *testing.T) {
	forEachMode(t, func(t *testing.T, engine *graph.Engine) {
		x := engine.Variable(raw([]float64{3}, 1))
		y := ops.PowerScalar(x, 3)

		dy := autodiff.Backward(y, nil).Of(x) // 3x² = 27
		require.True(t, dy.RequiresGrad())
		assert.InDelta(t, 27, dy.Realize().Item(), 1e-12)

		d2y := autodiff.Backward(dy, nil).Of(x) // 6x = 18
		require.NotNil(t, d2y)
		assert.InDelta(t, 18, d2y.Realize().Item(), 1e-12)
	})
}

func TestBackward_DeepChain(t *testing.T) {
	engine := graph.New(cpu.New())
	x := engine.Variable(raw([]float64{1.5}, 1))
	y := x
	for range 5000 {
		y = ops.Negate(y)
	}
	grads := autodiff.Backward(y, nil)
	assert.Equal(t, []float64{1}, grads.Of(x).Realize().Data())
}

func TestBackward_ReshapeBroadcastSum(t *testing.T) {
	forEachMode(t, func(t *testing.T, engine *graph.Engine) {
		x := engine.Variable(raw([]float64{1, 2, 3, 4, 5, 6}, 2, 3))
		r := ops.Reshape(x, tensor.Shape{2, 3, 1})
		b := ops.BroadcastTo(r, tensor.Shape{2, 3, 4})
		s := ops.Summation(b, 2)
		require.True(t, s.Shape().Equal(tensor.Shape{2, 3}))
		assert.Equal(t, []float64{4, 8, 12, 16, 20, 24}, s.Realize().Data())

		grads := autodiff.Backward(s, nil)
		gx := grads.Of(x).Realize()
		assert.True(t, gx.Shape().Equal(tensor.Shape{2, 3}))
		assert.Equal(t, []float64{4, 4, 4, 4, 4, 4}, gx.Data())
	})
}

func TestGrad(t *testing.T) {
	forEachMode(t, func(t *testing.T, engine *graph.Engine) {
		x := engine.Variable(raw([]float64{1, 2}, 2))
		unused := engine.Variable(raw([]float64{7, 8, 9}, 3))
		out := ops.Summation(ops.MulScalar(x, 2))

		grads := autodiff.Grad(out, x, unused)
		require.Len(t, grads, 2)
		assert.Equal(t, []float64{2, 2}, grads[0].Realize().Data())
		assert.True(t, grads[1].Shape().Equal(tensor.Shape{3}))
		assert.Equal(t, []float64{0, 0, 0}, grads[1].Realize().Data())
	})
}

// fakeOp copies its input and returns a configurable gradient list.
type fakeOp struct {
	gradient func(outGrad, node *graph.Node) []*graph.Node
}

func (fakeOp) String() string { return "Fake" }
func (fakeOp) Arity() int     { return 1 }

func (fakeOp) Compute(_ tensor.Backend, inputs ...*tensor.RawTensor) *tensor.RawTensor {
	return inputs[0].Clone()
}

func (op fakeOp) Gradient(outGrad, node *graph.Node) []*graph.Node {
	return op.gradient(outGrad, node)
}

func TestBackward_BrokenOperators(t *testing.T) {
	engine := graph.New(cpu.New())
	x := engine.Variable(raw([]float64{1, 2}, 2))

	tests := []struct {
		name     string
		gradient func(outGrad, node *graph.Node) []*graph.Node
	}{
		{"TooManyGradients", func(g, _ *graph.Node) []*graph.Node { return []*graph.Node{g, g} }},
		{"NilGradient", func(_, _ *graph.Node) []*graph.Node { return []*graph.Node{nil} }},
		{"WrongShape", func(g, _ *graph.Node) []*graph.Node { return []*graph.Node{ops.Summation(g)} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y := graph.Apply(fakeOp{gradient: tt.gradient}, x)
			assert.Panics(t, func() { autodiff.Backward(y, nil) })
		})
	}
}
