package cpu

import (
	"github.com/gomlx/exceptions"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/vjp/internal/tensor"
)

// MatMul performs (batched) matrix multiplication.
//
// The last two axes are the matrix axes: (..., M, K) @ (..., K, N) -> (..., M, N).
// Leading batch axes broadcast independently following NumPy rules, so
// (3, 4) @ (2, 3, 4, 5) -> (2, 3, 3, 5). Each batch is one gonum GEMM.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) < 2 || len(bShape) < 2 {
		exceptions.Panicf("matmul: operands must be at least 2D, got %s @ %s", aShape, bShape)
	}

	m, k := aShape[len(aShape)-2], aShape[len(aShape)-1]
	kAlt, n := bShape[len(bShape)-2], bShape[len(bShape)-1]
	if k != kAlt {
		exceptions.Panicf("matmul: inner dimension mismatch %s @ %s", aShape, bShape)
	}

	aBatch := aShape[:len(aShape)-2]
	bBatch := bShape[:len(bShape)-2]
	batchShape, _, err := tensor.BroadcastShapes(aBatch, bBatch)
	if err != nil {
		exceptions.Panicf("matmul: batch dimensions of %s and %s: %v", aShape, bShape, err)
	}

	outShape := append(batchShape.Clone(), m, n)
	result := tensor.MustNewRaw(outShape)
	if m == 0 || n == 0 || k == 0 {
		// Empty product: result is already all zeros.
		return result
	}

	batchStrides := batchShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aBatch, batchShape)
	bStrides := computeBroadcastStridesForShape(bBatch, batchShape)
	aData, bData, cData := a.Data(), b.Data(), result.Data()
	sizeA, sizeB, sizeC := m*k, k*n, m*n

	// Each batch writes its own output block, so batches can run concurrently.
	par := cpu.par.WithGrain(max(1, cpu.par.Grain/(m*k*n)))
	par.For(batchShape.NumElements(), func(batch int) {
		ai := computeFlatIndex(batch, batchStrides, aStrides) * sizeA
		bi := computeFlatIndex(batch, batchStrides, bStrides) * sizeB
		ci := batch * sizeC

		aMat := mat.NewDense(m, k, aData[ai:ai+sizeA])
		bMat := mat.NewDense(k, n, bData[bi:bi+sizeB])
		cMat := mat.NewDense(m, n, cData[ci:ci+sizeC])
		cMat.Mul(aMat, bMat)
	})

	return result
}
