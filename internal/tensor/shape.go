package tensor

import (
	"fmt"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Shape represents the dimensions of a tensor.
type Shape []int

// Rank returns the number of axes. A scalar has rank 0.
func (s Shape) Rank() int {
	return len(s)
}

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	n := 1 // Scalar has 1 element
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions >= 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return errors.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// String implements fmt.Stringer, e.g. "(2, 3, 4)".
func (s Shape) String() string {
	if len(s) == 1 {
		return fmt.Sprintf("(%d,)", s[0])
	}
	out := "("
	for i, dim := range s {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprint(dim)
	}
	return out + ")"
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// PadLeft returns the shape left-padded with 1s up to the given rank.
// Shapes already at or above rank are returned as a copy.
func (s Shape) PadLeft(rank int) Shape {
	if len(s) >= rank {
		return s.Clone()
	}
	padded := make(Shape, rank)
	offset := rank - len(s)
	for i := range offset {
		padded[i] = 1
	}
	copy(padded[offset:], s)
	return padded
}

// NormalizeAxis maps a possibly negative axis into [0, rank).
// It panics if the axis is out of range.
func NormalizeAxis(axis, rank int) int {
	adjusted := axis
	if adjusted < 0 {
		adjusted += rank
	}
	if adjusted < 0 || adjusted >= rank {
		exceptions.Panicf("axis %d out of range for rank %d", axis, rank)
	}
	return adjusted
}

// NormalizeAxes applies NormalizeAxis to every axis and rejects duplicates.
func NormalizeAxes(axes []int, rank int) []int {
	normalized := make([]int, len(axes))
	seen := make(map[int]bool, len(axes))
	for i, axis := range axes {
		adjusted := NormalizeAxis(axis, rank)
		if seen[adjusted] {
			exceptions.Panicf("axis %d repeated in %v", axis, axes)
		}
		seen[adjusted] = true
		normalized[i] = adjusted
	}
	return normalized
}

// BroadcastShapes implements NumPy-style broadcasting rules.
//
// Rules:
// 1. Compare shapes element-wise from right to left
// 2. Dimensions are compatible if:
//   - They are equal, OR
//   - One of them is 1
//
// 3. Missing dimensions are treated as 1
//
// Returns the broadcasted shape, a flag indicating if broadcasting is needed, and an error if incompatible.
//
// Examples:
//
//	(3, 1) + (3, 5) → (3, 5), true, nil
//	(1, 5) + (3, 5) → (3, 5), true, nil
//	(3, 5) + (3, 5) → (3, 5), false, nil
//	(3, 4) + (3, 5) → nil, false, Error
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)
	needsBroadcast := len(a) != len(b)

	for i := range maxLen {
		aIdx := len(a) - 1 - i
		bIdx := len(b) - 1 - i

		aDim := 1
		if aIdx >= 0 {
			aDim = a[aIdx]
		}

		bDim := 1
		if bIdx >= 0 {
			bDim = b[bIdx]
		}

		switch {
		case aDim == bDim:
			result[maxLen-1-i] = aDim
		case aDim == 1:
			result[maxLen-1-i] = bDim
			needsBroadcast = true
		case bDim == 1:
			result[maxLen-1-i] = aDim
			needsBroadcast = true
		default:
			return nil, false, errors.Errorf("shapes not compatible for broadcasting: %v vs %v (dimension %d: %d vs %d)",
				a, b, maxLen-1-i, aDim, bDim)
		}
	}

	return result, needsBroadcast, nil
}

// CanBroadcastTo reports whether s can be stretched to target following
// trailing-alignment rules: every axis of s is either 1 or equal to the
// matching target axis, and s has no more axes than target.
func (s Shape) CanBroadcastTo(target Shape) bool {
	if len(s) > len(target) {
		return false
	}
	offset := len(target) - len(s)
	for i, dim := range s {
		if dim != 1 && dim != target[offset+i] {
			return false
		}
	}
	return true
}

// BroadcastAxes returns the axes of target that broadcasting s to target
// creates or stretches: s is left-padded with 1s to the rank of target and an
// axis is reported iff the padded size differs from the target size.
func BroadcastAxes(s, target Shape) []int {
	padded := s.PadLeft(len(target))
	axes := make([]int, 0, len(target))
	for i := range target {
		if padded[i] != target[i] {
			axes = append(axes, i)
		}
	}
	return axes
}
