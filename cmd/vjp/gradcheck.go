package main

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/vjp/internal/autodiff/ops"
	"github.com/born-ml/vjp/internal/backend/cpu"
	"github.com/born-ml/vjp/internal/gradcheck"
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/parallel"
)

type gradcheckOptions struct {
	lazy      bool
	seed      uint64
	tolerance float64
	step      float64
	workers   int
}

// result is the outcome of one checkCase.
type result struct {
	c      checkCase
	report *gradcheck.Report
	err    error
}

// runGradcheck checks every case, writes the report table to w and returns an
// error if any case failed or an operator kind has no case.
func runGradcheck(w io.Writer, opts gradcheckOptions) error {
	cfg := parallel.DefaultConfig()
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
	backend := cpu.New(cpu.WithParallel(cfg))

	cases := checkCases()
	if missing := uncoveredKinds(cases); len(missing) > 0 {
		return errors.Errorf("no gradient check for %v", missing)
	}

	start := time.Now()
	results := make([]result, 0, len(cases))
	var failed, evaluations int
	for i, c := range cases {
		engine := graph.New(backend, graph.WithLazy(opts.lazy))
		report, err := gradcheck.Check(engine, c.f, c.inputs(opts.seed+uint64(i)),
			gradcheck.WithStep(opts.step),
			gradcheck.WithTolerance(opts.tolerance),
			gradcheck.WithSeed(opts.seed))
		if err != nil {
			failed++
			klog.V(1).Infof("%s: %v", c.name, err)
		}
		if report != nil {
			evaluations += report.Evaluations
		}
		results = append(results, result{c: c, report: report, err: err})
	}

	fmt.Fprintln(w, renderResults(results))
	fmt.Fprintf(w, "%d checks over %d operator kinds, %s forward evaluations in %s (lazy=%v, seed=%d)\n",
		len(results), len(ops.Kinds()), humanize.Comma(int64(evaluations)),
		time.Since(start).Round(time.Millisecond), opts.lazy, opts.seed)

	if failed > 0 {
		return errors.Errorf("%d of %d gradient checks failed", failed, len(results))
	}
	return nil
}

// uncoveredKinds lists the operator kinds no case exercises.
func uncoveredKinds(cases []checkCase) []ops.Kind {
	var missing []ops.Kind
	for _, kind := range ops.Kinds() {
		if !slices.ContainsFunc(cases, func(c checkCase) bool { return c.kind == kind }) {
			missing = append(missing, kind)
		}
	}
	return missing
}
