package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/vjp/internal/autodiff/ops"
	"github.com/born-ml/vjp/internal/gradcheck"
)

func TestCheckCases_CoverEveryKind(t *testing.T) {
	assert.Empty(t, uncoveredKinds(checkCases()))
	assert.Equal(t, ops.Kinds(), uncoveredKinds(nil))
}

func TestRunGradcheck(t *testing.T) {
	for _, lazy := range []bool{false, true} {
		var out bytes.Buffer
		opts := gradcheckOptions{
			lazy:      lazy,
			seed:      7,
			tolerance: gradcheck.DefaultTolerance,
			step:      gradcheck.DefaultStep,
			workers:   2,
		}
		require.NoError(t, runGradcheck(&out, opts))

		report := out.String()
		for _, kind := range ops.Kinds() {
			assert.Contains(t, report, kind.String())
		}
		assert.NotContains(t, report, "FAIL")
		assert.Contains(t, report, "25 checks over 16 operator kinds")
	}
}

func TestRunGradcheck_Fails(t *testing.T) {
	var out bytes.Buffer
	opts := gradcheckOptions{tolerance: 0, step: 1e-1}
	err := runGradcheck(&out, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gradient checks failed")
	assert.Contains(t, out.String(), "FAIL")
}

func TestRenderResults(t *testing.T) {
	cases := checkCases()
	rendered := renderResults([]result{
		{c: cases[0], report: &gradcheck.Report{MaxAbsErr: []float64{1e-9, 2e-9}, Evaluations: 12345}},
		{c: cases[len(cases)-1], err: errors.New("boom")},
	})
	lines := strings.Split(rendered, "\n")
	assert.Greater(t, len(lines), 4)
	assert.Contains(t, rendered, "2.00e-09")
	assert.Contains(t, rendered, "12,345")
	assert.Contains(t, rendered, "(2, 1, 3, 4) (5, 4, 2)")
	assert.Contains(t, rendered, "FAIL")
}
