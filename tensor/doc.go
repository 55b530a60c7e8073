// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 arrays the autodiff engine
// computes with.
//
// # Overview
//
// A RawTensor is a row-major buffer plus a Shape. Tensors are created here
// and handed to an autodiff engine as variables or constants; operators never
// modify them.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/vjp/tensor"
//	)
//
//	func main() {
//	    x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(x.At(1, 2)) // 6
//	}
//
// # Broadcasting
//
// Element-wise operators follow NumPy broadcasting rules: shapes are aligned
// from the right and size-1 or missing axes are stretched.
//
//	shape, _, err := tensor.BroadcastShapes(tensor.Shape{3, 1}, tensor.Shape{4}) // (3, 4)
package tensor
