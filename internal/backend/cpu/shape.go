package cpu

import (
	"github.com/gomlx/exceptions"

	"github.com/born-ml/vjp/internal/tensor"
)

// Reshape returns a copy of x laid out with newShape.
// The element count must be preserved.
func (cpu *CPUBackend) Reshape(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		exceptions.Panicf("reshape: %v", err)
	}
	if newShape.NumElements() != x.NumElements() {
		exceptions.Panicf("reshape: cannot reshape %s (%d elements) into %s (%d elements)",
			x.Shape(), x.NumElements(), newShape, newShape.NumElements())
	}
	result := tensor.MustNewRaw(newShape)
	copy(result.Data(), x.Data())
	return result
}

// BroadcastTo expands x to target following trailing-alignment rules.
func (cpu *CPUBackend) BroadcastTo(x *tensor.RawTensor, target tensor.Shape) *tensor.RawTensor {
	if err := target.Validate(); err != nil {
		exceptions.Panicf("broadcast_to: %v", err)
	}
	if !x.Shape().CanBroadcastTo(target) {
		exceptions.Panicf("broadcast_to: cannot broadcast shape %s to %s", x.Shape(), target)
	}
	result := tensor.MustNewRaw(target)
	copy(result.Data(), broadcastData(x, target))
	return result
}

// SwapAxes exchanges two axes. Negative axes count from the end.
func (cpu *CPUBackend) SwapAxes(x *tensor.RawTensor, axis1, axis2 int) *tensor.RawTensor {
	rank := x.Rank()
	a1 := tensor.NormalizeAxis(axis1, rank)
	a2 := tensor.NormalizeAxis(axis2, rank)

	perm := make([]int, rank)
	for i := range perm {
		perm[i] = i
	}
	perm[a1], perm[a2] = perm[a2], perm[a1]
	return permute(x, perm)
}

// permute returns x with its axes reordered: output axis i is input axis perm[i].
func permute(x *tensor.RawTensor, perm []int) *tensor.RawTensor {
	inShape := x.Shape()
	inStrides := x.Strides()

	outShape := make(tensor.Shape, len(perm))
	srcStrides := make([]int, len(perm))
	for i, p := range perm {
		outShape[i] = inShape[p]
		srcStrides[i] = inStrides[p]
	}

	result := tensor.MustNewRaw(outShape)
	dst := result.Data()
	src := x.Data()
	outStrides := outShape.ComputeStrides()
	for i := range dst {
		dst[i] = src[computeFlatIndex(i, outStrides, srcStrides)]
	}
	return result
}
