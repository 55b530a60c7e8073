package cpu

import (
	"math"
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/vjp/internal/parallel"
	"github.com/born-ml/vjp/internal/tensor"
)

func raw(data []float64, shape ...int) *tensor.RawTensor {
	return must.M1(tensor.FromSlice(data, shape))
}

// seq returns 1, 2, ..., n laid out with the given shape.
func seq(shape ...int) *tensor.RawTensor {
	n := tensor.Shape(shape).NumElements()
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(i + 1)
	}
	return raw(data, shape...)
}

func TestCPUBackend_New(t *testing.T) {
	backend := New()
	require.NotNil(t, backend)
	assert.Equal(t, "CPU", backend.Name())
}

func TestCPUBackend_Add(t *testing.T) {
	backend := New()

	t.Run("SameShape", func(t *testing.T) {
		a := seq(2, 3)
		b := raw([]float64{10, 11, 12, 13, 14, 15}, 2, 3)
		result := backend.Add(a, b)
		assert.Equal(t, tensor.Shape{2, 3}, result.Shape())
		assert.Equal(t, []float64{11, 13, 15, 17, 19, 21}, result.Data())
		// Inputs are never modified.
		assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, a.Data())
	})

	t.Run("Broadcast", func(t *testing.T) {
		a := raw([]float64{1, 2}, 2, 1)
		b := raw([]float64{10, 20, 30}, 3)
		result := backend.Add(a, b)
		assert.Equal(t, tensor.Shape{2, 3}, result.Shape())
		assert.Equal(t, []float64{11, 21, 31, 12, 22, 32}, result.Data())
	})

	t.Run("Incompatible", func(t *testing.T) {
		assert.Panics(t, func() { backend.Add(seq(2, 3), seq(2, 4)) })
	})
}

func TestCPUBackend_SubMulDiv(t *testing.T) {
	backend := New()
	a := raw([]float64{6, 8, 10}, 3)
	b := raw([]float64{2, 4, 5}, 3)

	assert.Equal(t, []float64{4, 4, 5}, backend.Sub(a, b).Data())
	assert.Equal(t, []float64{12, 32, 50}, backend.Mul(a, b).Data())
	assert.Equal(t, []float64{3, 2, 2}, backend.Div(a, b).Data())

	// Division by zero is not guarded.
	div := backend.Div(raw([]float64{1, -1, 0}, 3), raw([]float64{0, 0, 0}, 3)).Data()
	assert.True(t, math.IsInf(div[0], 1))
	assert.True(t, math.IsInf(div[1], -1))
	assert.True(t, math.IsNaN(div[2]))
}

func TestCPUBackend_Scalar(t *testing.T) {
	backend := New()
	x := raw([]float64{-2, 0, 3}, 3)

	assert.Equal(t, []float64{-1, 1, 4}, backend.AddScalar(x, 1).Data())
	assert.Equal(t, []float64{-4, 0, 6}, backend.MulScalar(x, 2).Data())
	assert.Equal(t, []float64{-1, 0, 1.5}, backend.DivScalar(x, 2).Data())
	assert.Equal(t, []float64{4, 0, 9}, backend.PowScalar(x, 2).Data())
	assert.Equal(t, []float64{0, 0, 3}, backend.MaximumScalar(x, 0).Data())
	assert.Equal(t, []float64{0, 0, 1}, backend.GreaterScalar(x, 0).Data())
}

func TestCPUBackend_Math(t *testing.T) {
	backend := New()
	x := raw([]float64{1, math.E, 0}, 3)

	assert.Equal(t, []float64{-1, -math.E, 0}, backend.Negate(x).Data())
	logs := backend.Log(x).Data()
	assert.InDelta(t, 0, logs[0], 1e-12)
	assert.InDelta(t, 1, logs[1], 1e-12)
	assert.True(t, math.IsInf(logs[2], -1))
	assert.InDelta(t, math.E, backend.Exp(raw([]float64{1}, 1)).Data()[0], 1e-12)
}

func TestCPUBackend_Reshape(t *testing.T) {
	backend := New()
	x := seq(2, 3)

	result := backend.Reshape(x, tensor.Shape{3, 2})
	assert.Equal(t, tensor.Shape{3, 2}, result.Shape())
	assert.Equal(t, x.Data(), result.Data())

	assert.Panics(t, func() { backend.Reshape(x, tensor.Shape{4, 2}) })
}

func TestCPUBackend_BroadcastTo(t *testing.T) {
	backend := New()

	result := backend.BroadcastTo(raw([]float64{1, 2, 3}, 3, 1), tensor.Shape{2, 3, 2})
	assert.Equal(t, tensor.Shape{2, 3, 2}, result.Shape())
	assert.Equal(t, []float64{1, 1, 2, 2, 3, 3, 1, 1, 2, 2, 3, 3}, result.Data())

	scalar := backend.BroadcastTo(tensor.Scalar(7), tensor.Shape{2, 2})
	assert.Equal(t, []float64{7, 7, 7, 7}, scalar.Data())

	assert.Panics(t, func() { backend.BroadcastTo(seq(3), tensor.Shape{4}) })
	assert.Panics(t, func() { backend.BroadcastTo(seq(2, 3), tensor.Shape{3}) })
}

func TestCPUBackend_SwapAxes(t *testing.T) {
	backend := New()

	t.Run("Matrix", func(t *testing.T) {
		result := backend.SwapAxes(seq(2, 3), -2, -1)
		assert.Equal(t, tensor.Shape{3, 2}, result.Shape())
		assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, result.Data())
	})

	t.Run("Batched", func(t *testing.T) {
		x := seq(2, 3, 4)
		result := backend.SwapAxes(x, 0, 2)
		assert.Equal(t, tensor.Shape{4, 3, 2}, result.Shape())
		assert.Equal(t, x.At(1, 2, 3), result.At(3, 2, 1))
		assert.Equal(t, x.At(0, 1, 2), result.At(2, 1, 0))
	})

	t.Run("OutOfRange", func(t *testing.T) {
		assert.Panics(t, func() { backend.SwapAxes(seq(2, 3), 0, 2) })
	})
}

func TestCPUBackend_Sum(t *testing.T) {
	backend := New()
	x := seq(2, 3, 4)

	t.Run("All", func(t *testing.T) {
		result := backend.Sum(x, nil)
		assert.Equal(t, tensor.Shape{}, result.Shape())
		assert.Equal(t, 300.0, result.Item())
	})

	t.Run("LastAxis", func(t *testing.T) {
		result := backend.Sum(x, []int{-1})
		assert.Equal(t, tensor.Shape{2, 3}, result.Shape())
		assert.Equal(t, []float64{10, 26, 42, 58, 74, 90}, result.Data())
	})

	t.Run("TwoAxes", func(t *testing.T) {
		result := backend.Sum(x, []int{0, 2})
		assert.Equal(t, tensor.Shape{3}, result.Shape())
		assert.Equal(t, []float64{68, 100, 132}, result.Data())
	})

	t.Run("NoAxes", func(t *testing.T) {
		result := backend.Sum(x, []int{})
		assert.Equal(t, x.Shape(), result.Shape())
		assert.Equal(t, x.Data(), result.Data())
	})

	t.Run("RepeatedAxis", func(t *testing.T) {
		assert.Panics(t, func() { backend.Sum(x, []int{1, -2}) })
	})
}

func TestCPUBackend_MatMul(t *testing.T) {
	backend := New()

	t.Run("2D", func(t *testing.T) {
		// [[1, 2], [3, 4]] @ [[5, 6], [7, 8]] = [[19, 22], [43, 50]]
		result := backend.MatMul(seq(2, 2), raw([]float64{5, 6, 7, 8}, 2, 2))
		assert.Equal(t, tensor.Shape{2, 2}, result.Shape())
		assert.Equal(t, []float64{19, 22, 43, 50}, result.Data())
	})

	t.Run("BroadcastBatch", func(t *testing.T) {
		a := seq(3, 4)
		b := seq(2, 3, 4, 5)
		result := backend.MatMul(a, b)
		require.Equal(t, tensor.Shape{2, 3, 3, 5}, result.Shape())

		// Every batch must equal the plain 2D product with the matching slice of b.
		for i := range 2 {
			for j := range 3 {
				for r := range 3 {
					for c := range 5 {
						want := 0.0
						for k := range 4 {
							want += a.At(r, k) * b.At(i, j, k, c)
						}
						assert.InDelta(t, want, result.At(i, j, r, c), 1e-9)
					}
				}
			}
		}
	})

	t.Run("SizeOneBatch", func(t *testing.T) {
		a := seq(1, 2, 3)
		b := seq(4, 3, 2)
		result := backend.MatMul(a, b)
		assert.Equal(t, tensor.Shape{4, 2, 2}, result.Shape())
	})

	t.Run("InnerMismatch", func(t *testing.T) {
		assert.Panics(t, func() { backend.MatMul(seq(2, 3), seq(2, 3)) })
	})

	t.Run("Rank1", func(t *testing.T) {
		assert.Panics(t, func() { backend.MatMul(seq(3), seq(3, 2)) })
	})
}

func TestCPUBackend_ParallelMatchesSequential(t *testing.T) {
	seqBackend := New(WithParallel(parallel.Sequential()))
	parBackend := New(WithParallel(parallel.Config{Workers: 4, Grain: 3}))

	a := seq(4, 3, 5)
	b := seq(4, 5, 2)
	assert.Equal(t, seqBackend.MatMul(a, b).Data(), parBackend.MatMul(a, b).Data())

	x := seq(7, 9)
	y := seq(9)
	assert.Equal(t, seqBackend.Add(x, y).Data(), parBackend.Add(x, y).Data())
	assert.Equal(t, seqBackend.Exp(x).Data(), parBackend.Exp(x).Data())
	assert.Equal(t, seqBackend.MulScalar(x, 3).Data(), parBackend.MulScalar(x, 3).Data())
	assert.Equal(t, seqBackend.AddScalar(x, -1).Data(), parBackend.AddScalar(x, -1).Data())
	assert.Equal(t, seqBackend.PowScalar(x, 0.5).Data(), parBackend.PowScalar(x, 0.5).Data())
}
