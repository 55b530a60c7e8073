package gradcheck

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/vjp/internal/tensor"
)

// Uniform returns a tensor of the given shape with values drawn uniformly
// from [lo, hi), reproducible for a given seed.
func Uniform(shape tensor.Shape, lo, hi float64, seed uint64) *tensor.RawTensor {
	dist := distuv.Uniform{Min: lo, Max: hi, Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
	t := tensor.MustNewRaw(shape)
	data := t.Data()
	for i := range data {
		data[i] = dist.Rand()
	}
	return t
}
