// Package gradcheck compares analytic gradients against central finite
// differences.
//
// For a function f and inputs x, the checker builds the scalar
// L(x) = Σ c ⊙ f(x) for a fixed random projection c, back-propagates c
// through f to obtain ∂L/∂x, and compares every entry with
//
//	(L(x + h·e_i) - L(x - h·e_i)) / 2h
package gradcheck

import (
	"math"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"k8s.io/klog/v2"

	"github.com/born-ml/vjp/internal/autodiff"
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

// Default settings: central differences with step 1e-6 must agree with the
// analytic gradient within 1e-5.
const (
	DefaultStep      = 1e-6
	DefaultTolerance = 1e-5
)

// Func is the computation under test. It receives one node per input.
type Func func(inputs ...*graph.Node) *graph.Node

type config struct {
	step      float64
	tolerance float64
	seed      uint64
}

// Option configures Check.
type Option func(*config)

// WithStep sets the finite-difference step.
func WithStep(step float64) Option {
	return func(c *config) { c.step = step }
}

// WithTolerance sets the maximum accepted absolute difference.
func WithTolerance(tolerance float64) Option {
	return func(c *config) { c.tolerance = tolerance }
}

// WithSeed sets the seed of the random output projection.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = seed }
}

// Report holds the outcome of a Check.
type Report struct {
	// OutputShape is the shape of f's output.
	OutputShape tensor.Shape

	// Analytic and Numerical hold, per input, the two gradient estimates.
	Analytic  []*tensor.RawTensor
	Numerical []*tensor.RawTensor

	// MaxAbsErr is, per input, the largest absolute difference between the
	// two estimates.
	MaxAbsErr []float64

	// Evaluations counts the forward evaluations of f.
	Evaluations int
}

// MaxErr returns the largest error over all inputs, or NaN if any is NaN.
func (r *Report) MaxErr() float64 {
	if floats.HasNaN(r.MaxAbsErr) {
		return math.NaN()
	}
	if len(r.MaxAbsErr) == 0 {
		return 0
	}
	return floats.Max(r.MaxAbsErr)
}

// Check runs f on inputs and verifies its gradient with respect to every
// input. It returns an error if f panics (e.g. on a shape mismatch) or if an
// input's gradient differs from the numerical estimate by more than the
// tolerance; the report is returned whenever the gradients were computed.
func Check(engine *graph.Engine, f Func, inputs []*tensor.RawTensor, options ...Option) (*Report, error) {
	cfg := config{step: DefaultStep, tolerance: DefaultTolerance}
	for _, option := range options {
		option(&cfg)
	}

	var report *Report
	err := exceptions.TryCatch[error](func() {
		report = check(engine, f, inputs, cfg)
	})
	if err != nil {
		return nil, errors.WithMessage(err, "gradcheck")
	}

	for i, e := range report.MaxAbsErr {
		if !(e <= cfg.tolerance) { // NaN fails too
			return report, errors.Errorf("gradcheck: input #%d: max abs error %g exceeds tolerance %g",
				i, e, cfg.tolerance)
		}
	}
	return report, nil
}

func check(engine *graph.Engine, f Func, inputs []*tensor.RawTensor, cfg config) *Report {
	vars := make([]*graph.Node, len(inputs))
	for i, input := range inputs {
		vars[i] = engine.Variable(input.Clone())
	}
	out := f(vars...)
	outShape := out.Shape()
	projection := Uniform(outShape, -1, 1, cfg.seed)

	grads := autodiff.Backward(out, engine.Constant(projection))

	report := &Report{
		OutputShape: outShape.Clone(),
		Analytic:    make([]*tensor.RawTensor, len(inputs)),
		Numerical:   make([]*tensor.RawTensor, len(inputs)),
		MaxAbsErr:   make([]float64, len(inputs)),
		Evaluations: 1,
	}

	// loss evaluates Σ c ⊙ f(x) on constants, so nothing is recorded for backward.
	loss := func(values []*tensor.RawTensor) float64 {
		consts := make([]*graph.Node, len(values))
		for i, v := range values {
			consts[i] = engine.Constant(v)
		}
		report.Evaluations++
		return floats.Dot(projection.Data(), f(consts...).Realize().Data())
	}

	for i, input := range inputs {
		if g := grads.Of(vars[i]); g != nil {
			report.Analytic[i] = g.Realize()
		} else {
			report.Analytic[i] = tensor.ZerosLike(input)
		}

		numerical := tensor.ZerosLike(input)
		values := make([]*tensor.RawTensor, len(inputs))
		copy(values, inputs)
		perturbed := input.Clone()
		values[i] = perturbed
		data := perturbed.Data()
		for j := range data {
			orig := data[j]
			data[j] = orig + cfg.step
			plus := loss(values)
			data[j] = orig - cfg.step
			minus := loss(values)
			data[j] = orig
			numerical.Data()[j] = (plus - minus) / (2 * cfg.step)
		}
		report.Numerical[i] = numerical

		report.MaxAbsErr[i] = maxAbsDiff(report.Analytic[i].Data(), numerical.Data())
		klog.V(2).Infof("gradcheck: input #%d %s max abs error %g", i, input.Shape(), report.MaxAbsErr[i])
	}
	return report
}

// maxAbsDiff returns the L∞ distance of a and b. Unlike floats.Distance it
// returns NaN when any difference is NaN.
func maxAbsDiff(a, b []float64) float64 {
	var maxErr float64
	for j := range a {
		if d := math.Abs(a[j] - b[j]); !(d <= maxErr) {
			maxErr = d
		}
	}
	return maxErr
}
