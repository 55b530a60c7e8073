// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/vjp/internal/backend/cpu"
	"github.com/born-ml/vjp/internal/parallel"
	"github.com/born-ml/vjp/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Option configures the backend.
type Option = internalcpu.Option

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/vjp/autodiff"
//	    "github.com/born-ml/vjp/backend/cpu"
//	)
//
//	func main() {
//	    engine := autodiff.New(cpu.New())
//	}
func New(options ...Option) *Backend {
	return internalcpu.New(options...)
}

// WithWorkers limits the goroutines each kernel may use. With 1 every kernel
// runs on the calling goroutine.
func WithWorkers(workers int) Option {
	cfg := parallel.DefaultConfig()
	cfg.Workers = workers
	return internalcpu.WithParallel(cfg)
}
