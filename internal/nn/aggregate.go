package nn

import (
	"fmt"

	"pinet/internal/model"
)

// Aggregate scatter-sums per-pair interaction rows onto each pair's
// receiving entity. It carries no parameters, is commutative in pair order
// up to floating-point rounding, and leaves entities without incident pairs
// at the additive identity. The caller supplies the channel width so that a
// batch with zero pairs still produces correctly shaped zero rows.
func Aggregate(pairs [][2]int, inter [][]float64, nEntities, width int) ([][]float64, error) {
	if len(inter) != len(pairs) {
		return nil, fmt.Errorf("%w: aggregation: interaction rows: got=%d want=%d",
			model.ErrShape, len(inter), len(pairs))
	}
	out := make([][]float64, nEntities)
	for i := range out {
		out[i] = make([]float64, width)
	}
	for k, pr := range pairs {
		recv := pr[0]
		if recv < 0 || recv >= nEntities {
			return nil, fmt.Errorf("%w: aggregation: pair %d receiver %d outside [0,%d)",
				model.ErrShape, k, recv, nEntities)
		}
		row := inter[k]
		if len(row) != width {
			return nil, fmt.Errorf("%w: aggregation: interaction width at pair %d: got=%d want=%d",
				model.ErrShape, k, len(row), width)
		}
		dst := out[recv]
		for ci, v := range row {
			dst[ci] += v
		}
	}
	return out, nil
}
