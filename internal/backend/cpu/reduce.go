package cpu

import (
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/vjp/internal/tensor"
)

// Sum reduces x over axes, dropping the reduced axes from the result.
//
// A nil axes slice reduces every axis to a scalar. An empty, non-nil slice
// reduces nothing and returns a copy of x. Negative axes count from the end.
//
// Example:
//
//	x := shape (2, 3, 4)
//	backend.Sum(x, []int{-1})   // shape: (2, 3)
//	backend.Sum(x, []int{0, 2}) // shape: (3,)
//	backend.Sum(x, nil)         // shape: ()
func (cpu *CPUBackend) Sum(x *tensor.RawTensor, axes []int) *tensor.RawTensor {
	if axes == nil {
		return tensor.Scalar(floats.Sum(x.Data()))
	}

	shape := x.Shape()
	reduced := make([]bool, len(shape))
	for _, axis := range tensor.NormalizeAxes(axes, len(shape)) {
		reduced[axis] = true
	}

	outShape := make(tensor.Shape, 0, len(shape))
	for i, dim := range shape {
		if !reduced[i] {
			outShape = append(outShape, dim)
		}
	}

	// Map each input axis to its stride in the output; reduced axes map to 0.
	outStrides := outShape.ComputeStrides()
	mapStrides := make([]int, len(shape))
	j := 0
	for i := range shape {
		if !reduced[i] {
			mapStrides[i] = outStrides[j]
			j++
		}
	}

	result := tensor.MustNewRaw(outShape)
	dst := result.Data()
	inStrides := x.Strides()
	for i, v := range x.Data() {
		dst[computeFlatIndex(i, inStrides, mapStrides)] += v
	}
	return result
}
