// Package cpu implements the CPU backend on top of gonum vector and matrix kernels.
package cpu

import (
	"github.com/gomlx/exceptions"
	"gonum.org/v1/gonum/floats"
	"k8s.io/klog/v2"

	"github.com/born-ml/vjp/internal/parallel"
	"github.com/born-ml/vjp/internal/tensor"
)

// CPUBackend implements tensor.Backend on CPU.
//
// Large kernels are split across goroutines according to its parallel
// configuration. It holds no mutable state and is safe for concurrent use.
type CPUBackend struct {
	par parallel.Config
}

// Compile-time check that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithParallel sets how kernels split their work. parallel.Sequential()
// keeps every kernel on the calling goroutine.
func WithParallel(cfg parallel.Config) Option {
	return func(cpu *CPUBackend) {
		cpu.par = cfg
	}
}

// New creates a new CPU backend using parallel.DefaultConfig unless
// overridden.
func New(options ...Option) *CPUBackend {
	cpu := &CPUBackend{par: parallel.DefaultConfig()}
	for _, option := range options {
		option(cpu)
	}
	klog.V(2).Infof("cpu backend: %d workers, grain %d", cpu.par.Workers, cpu.par.Grain)
	return cpu
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("add", a, b, floats.AddTo)
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("sub", a, b, floats.SubTo)
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("mul", a, b, floats.MulTo)
}

// Div performs element-wise division with broadcasting.
// Division by zero yields ±Inf or NaN.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("div", a, b, floats.DivTo)
}

// binaryOp broadcasts both operands to their common shape, then runs kernel
// over the flat buffers.
func (cpu *CPUBackend) binaryOp(name string, a, b *tensor.RawTensor, kernel func(dst, s, t []float64) []float64) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		exceptions.Panicf("%s: %v", name, err)
	}

	result := tensor.MustNewRaw(outShape)
	aData, bData := a.Data(), b.Data()
	if needsBroadcast {
		// Slow path: materialize both operands at the output shape
		aData = broadcastData(a, outShape)
		bData = broadcastData(b, outShape)
	}
	dst := result.Data()
	cpu.par.Range(len(dst), func(start, end int) {
		kernel(dst[start:end], aData[start:end], bData[start:end])
	})
	return result
}
