package cpu_test

import (
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"

	"github.com/born-ml/vjp/backend/cpu"
	"github.com/born-ml/vjp/tensor"
)

func TestNew(t *testing.T) {
	for _, backend := range []*cpu.Backend{cpu.New(), cpu.New(cpu.WithWorkers(1))} {
		assert.Equal(t, "CPU", backend.Name())
		a := must.M1(tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}))
		assert.Equal(t, []float64{7, 10, 15, 22}, backend.MatMul(a, a).Data())
	}
}
