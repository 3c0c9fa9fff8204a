package nn

import (
	"fmt"
	"math"
	"math/rand"

	"pinet/internal/model"
)

// dense is one learned affine map on the trailing feature axis. Weights are
// fixed once created; a bias-free dense maps an exactly zero row to an
// exactly zero row, which the cutoff continuity of the network relies on.
type dense struct {
	name    string
	in, out int
	act     ActivationFunc // nil leaves the output linear
	weights [][]float64    // [in][out]
	bias    []float64      // nil when bias-free
}

func newDense(name string, in, out int, useBias bool, act ActivationFunc, rng *rand.Rand) *dense {
	stddev := math.Sqrt(2.0 / float64(in))
	weights := make([][]float64, in)
	for i := range weights {
		row := make([]float64, out)
		for j := range row {
			row[j] = rng.NormFloat64() * stddev
		}
		weights[i] = row
	}
	var bias []float64
	if useBias {
		bias = make([]float64, out)
	}
	return &dense{name: name, in: in, out: out, act: act, weights: weights, bias: bias}
}

func (d *dense) apply(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for r, row := range rows {
		if len(row) != d.in {
			return nil, fmt.Errorf("%w: %s: input width at row %d: got=%d want=%d",
				model.ErrShape, d.name, r, len(row), d.in)
		}
		vec := make([]float64, d.out)
		for j := 0; j < d.out; j++ {
			sum := 0.0
			for i, v := range row {
				sum += v * d.weights[i][j]
			}
			if d.bias != nil {
				sum += d.bias[j]
			}
			if d.act != nil {
				sum = d.act(sum)
			}
			vec[j] = sum
		}
		out[r] = vec
	}
	return out, nil
}
