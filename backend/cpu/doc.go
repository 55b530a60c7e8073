// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for the autodiff engine.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO), float64 storage
//   - gonum vector kernels for element-wise operations
//   - One gonum GEMM per batch for batched matrix multiplication
//   - NumPy-compatible broadcasting
//
// Large kernels are split across goroutines; WithWorkers bounds how many.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each kernel allocates its
// result and does not share mutable state.
package cpu
