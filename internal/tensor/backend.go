package tensor

// Backend defines the array kernels the operator layer relies on.
// Backends handle the actual computation; operators only compose them.
//
// Every method returns a newly allocated tensor and leaves its inputs
// untouched. Binary element-wise methods follow NumPy broadcasting.
// Shape errors (incompatible broadcast, element-count mismatch on reshape,
// matmul inner-dimension mismatch, axis out of range) panic. Numeric
// anomalies (division by zero, log of non-positive values, overflow) are not
// checked and produce IEEE Inf/NaN.
type Backend interface {
	// Name returns a human-readable backend name.
	Name() string

	// Element-wise binary operations
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar operations (element-wise with scalar)
	AddScalar(x *RawTensor, scalar float64) *RawTensor
	MulScalar(x *RawTensor, scalar float64) *RawTensor
	DivScalar(x *RawTensor, scalar float64) *RawTensor
	PowScalar(x *RawTensor, exponent float64) *RawTensor

	// Math operations (element-wise)
	Negate(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	Exp(x *RawTensor) *RawTensor
	MaximumScalar(x *RawTensor, scalar float64) *RawTensor
	// GreaterScalar returns 1 where x > scalar and 0 elsewhere.
	GreaterScalar(x *RawTensor, scalar float64) *RawTensor

	// MatMul performs batched matrix multiplication over the last two axes.
	// Leading (batch) axes broadcast independently. Both operands must have
	// rank >= 2.
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations
	SwapAxes(x *RawTensor, axis1, axis2 int) *RawTensor
	Reshape(x *RawTensor, newShape Shape) *RawTensor
	BroadcastTo(x *RawTensor, target Shape) *RawTensor

	// Sum reduces over the given axes, dropping them from the result.
	// A nil axes slice reduces every axis to a scalar.
	Sum(x *RawTensor, axes []int) *RawTensor
}
