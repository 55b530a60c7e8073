package cpu

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/vjp/internal/tensor"
)

// Negate computes element-wise -x.
func (cpu *CPUBackend) Negate(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.scale(x, -1)
}

// Exp computes element-wise exponential: exp(x).
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryOp(x, math.Exp)
}

// Log computes element-wise natural logarithm: ln(x).
// Non-positive inputs yield -Inf or NaN.
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryOp(x, math.Log)
}

// unaryOp applies fn to every element.
func (cpu *CPUBackend) unaryOp(x *tensor.RawTensor, fn func(float64) float64) *tensor.RawTensor {
	result := tensor.MustNewRaw(x.Shape())
	dst, src := result.Data(), x.Data()
	cpu.par.Range(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = fn(src[i])
		}
	})
	return result
}

// scale multiplies every element by s with gonum's vector kernel.
func (cpu *CPUBackend) scale(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	result := tensor.MustNewRaw(x.Shape())
	dst, src := result.Data(), x.Data()
	cpu.par.Range(len(dst), func(start, end int) {
		floats.ScaleTo(dst[start:end], s, src[start:end])
	})
	return result
}
