package cpu

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/vjp/internal/tensor"
)

// AddScalar adds a scalar to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	result := x.Clone()
	dst := result.Data()
	cpu.par.Range(len(dst), func(start, end int) {
		floats.AddConst(scalar, dst[start:end])
	})
	return result
}

// MulScalar multiplies every element by a scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.scale(x, scalar)
}

// DivScalar divides every element by a scalar.
// Dividing by zero yields ±Inf or NaN.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.unaryOp(x, func(v float64) float64 { return v / scalar })
}

// PowScalar raises every element to a scalar exponent.
func (cpu *CPUBackend) PowScalar(x *tensor.RawTensor, exponent float64) *tensor.RawTensor {
	switch exponent {
	case 1:
		return x.Clone()
	case 2:
		return cpu.unaryOp(x, func(v float64) float64 { return v * v })
	}
	return cpu.unaryOp(x, func(v float64) float64 { return math.Pow(v, exponent) })
}

// MaximumScalar computes element-wise max(x, scalar). NaN inputs stay NaN.
func (cpu *CPUBackend) MaximumScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.unaryOp(x, func(v float64) float64 { return math.Max(v, scalar) })
}

// GreaterScalar returns a 0/1 mask of x > scalar.
func (cpu *CPUBackend) GreaterScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.unaryOp(x, func(v float64) float64 {
		if v > scalar {
			return 1
		}
		return 0
	})
}
