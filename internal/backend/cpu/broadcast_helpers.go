package cpu

import (
	"github.com/born-ml/vjp/internal/tensor"
)

// computeBroadcastStridesForShape computes strides for broadcasting a shape to outShape.
// Returns strides where dimensions of size 1 have stride 0 (for broadcasting).
func computeBroadcastStridesForShape(inShape, outShape tensor.Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)

	// Pad input shape with 1s on the left
	inDim := len(inShape)
	offset := outDim - inDim

	origStrides := inShape.ComputeStrides()

	for i := range outDim {
		inIdx := i - offset
		switch {
		case inIdx < 0 || inIdx >= inDim:
			// Padded dimension, stride is 0
			strides[i] = 0
		case inShape[inIdx] == 1:
			// Broadcast dimension, stride is 0
			strides[i] = 0
		default:
			strides[i] = origStrides[inIdx]
		}
	}

	return strides
}

// computeFlatIndex computes the flat index in the source array for a given output index.
// outStrides: strides of the output shape.
// inStrides: broadcast-adjusted strides of the input shape.
func computeFlatIndex(outIdx int, outStrides, inStrides []int) int {
	flatIdx := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flatIdx += coord * inStrides[i]
	}
	return flatIdx
}

// broadcastData materializes x's values at outShape.
// The caller guarantees that x's shape broadcasts to outShape.
func broadcastData(x *tensor.RawTensor, outShape tensor.Shape) []float64 {
	src := x.Data()
	if x.Shape().Equal(outShape) {
		return src
	}

	dst := make([]float64, outShape.NumElements())
	outStrides := outShape.ComputeStrides()
	inStrides := computeBroadcastStridesForShape(x.Shape(), outShape)
	for i := range dst {
		dst[i] = src[computeFlatIndex(i, outStrides, inStrides)]
	}
	return dst
}
