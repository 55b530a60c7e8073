package tensor

import (
	"fmt"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// RawTensor is the low-level dense array representation: a row-major float64
// buffer plus its shape.
//
// RawTensors handed to the graph are treated as immutable. Backends always
// allocate a new result instead of writing into their inputs.
type RawTensor struct {
	data   []float64
	shape  Shape
	stride []int
}

// NewRaw creates a new zero-filled RawTensor with the given shape.
func NewRaw(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid shape")
	}
	return &RawTensor{
		data:   make([]float64, shape.NumElements()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
	}, nil
}

// MustNewRaw is like NewRaw but panics on an invalid shape.
// Backends use it for results whose shapes they already validated.
func MustNewRaw(shape Shape) *RawTensor {
	t, err := NewRaw(shape)
	if err != nil {
		exceptions.Panicf("%+v", err)
	}
	return t
}

// FromSlice creates a RawTensor holding a copy of data with the given shape.
func FromSlice(data []float64, shape Shape) (*RawTensor, error) {
	t, err := NewRaw(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != len(t.data) {
		return nil, errors.Errorf("data length %d does not match shape %s (%d elements)",
			len(data), shape, len(t.data))
	}
	copy(t.data, data)
	return t, nil
}

// Scalar creates a rank-0 RawTensor.
func Scalar(value float64) *RawTensor {
	return &RawTensor{data: []float64{value}, shape: Shape{}, stride: []int{}}
}

// Full creates a RawTensor with every element set to value.
func Full(shape Shape, value float64) (*RawTensor, error) {
	t, err := NewRaw(shape)
	if err != nil {
		return nil, err
	}
	for i := range t.data {
		t.data[i] = value
	}
	return t, nil
}

// Zeros creates a zero-filled RawTensor.
func Zeros(shape Shape) (*RawTensor, error) {
	return NewRaw(shape)
}

// Ones creates a RawTensor filled with 1.
func Ones(shape Shape) (*RawTensor, error) {
	return Full(shape, 1)
}

// OnesLike returns a RawTensor of ones with the shape of t.
func OnesLike(t *RawTensor) *RawTensor {
	ones, err := Ones(t.shape)
	if err != nil {
		// t already holds a valid shape.
		exceptions.Panicf("%+v", err)
	}
	return ones
}

// ZerosLike returns a zero-filled RawTensor with the shape of t.
func ZerosLike(t *RawTensor) *RawTensor {
	return MustNewRaw(t.shape)
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// Rank returns the number of axes.
func (r *RawTensor) Rank() int {
	return len(r.shape)
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return len(r.data)
}

// Data returns the underlying row-major buffer.
// WARNING: Direct access to underlying memory. Mutating it after the tensor
// was given to a graph node corrupts the recorded forward values.
func (r *RawTensor) Data() []float64 {
	return r.data
}

// At returns the element at the given multi-dimensional index.
func (r *RawTensor) At(indices ...int) float64 {
	if len(indices) != len(r.shape) {
		exceptions.Panicf("RawTensor.At: got %d indices for shape %s", len(indices), r.shape)
	}
	flat := 0
	for i, idx := range indices {
		if idx < 0 || idx >= r.shape[i] {
			exceptions.Panicf("RawTensor.At: index %d out of range for axis %d of shape %s", idx, i, r.shape)
		}
		flat += idx * r.stride[i]
	}
	return r.data[flat]
}

// Item returns the single value of a tensor with exactly one element.
func (r *RawTensor) Item() float64 {
	if len(r.data) != 1 {
		exceptions.Panicf("RawTensor.Item: tensor of shape %s has %d elements", r.shape, len(r.data))
	}
	return r.data[0]
}

// Clone creates a deep copy of the RawTensor.
func (r *RawTensor) Clone() *RawTensor {
	return &RawTensor{
		data:   append([]float64(nil), r.data...),
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
	}
}

// WithShape returns a tensor sharing r's buffer under a new shape with the
// same number of elements.
func (r *RawTensor) WithShape(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid shape")
	}
	if shape.NumElements() != len(r.data) {
		return nil, errors.Errorf("cannot view %d elements of shape %s as shape %s",
			len(r.data), r.shape, shape)
	}
	return &RawTensor{data: r.data, shape: shape.Clone(), stride: shape.ComputeStrides()}, nil
}

// String returns a compact description with shape and, for small tensors, values.
func (r *RawTensor) String() string {
	const maxPrinted = 16
	var sb strings.Builder
	fmt.Fprintf(&sb, "RawTensor%s", r.shape)
	if len(r.data) <= maxPrinted {
		fmt.Fprintf(&sb, "%v", r.data)
	}
	return sb.String()
}
