package nn

import (
	"fmt"
	"math/rand"

	"pinet/internal/model"
)

// Readout converts the current property matrix into an incremental
// contribution to the running output accumulator: a biased FeedForward
// followed by a bias-free linear scaling to the output width, added onto
// the previous accumulator. Every depth level contributes additively, so
// the final output is the sum of the per-block contributions over the
// zero-initialized seed.
type Readout struct {
	name     string
	hidden   *FeedForward
	outUnits int
	rng      *rand.Rand

	project *dense // materialized at the first call
}

func NewReadout(name string, hiddenWidths []int, outUnits int, act ActivationFunc, rng *rand.Rand) (*Readout, error) {
	if outUnits <= 0 {
		return nil, fmt.Errorf("%w: %s: output units must be positive: got=%d",
			model.ErrConfig, name, outUnits)
	}
	return &Readout{
		name:     name,
		hidden:   NewFeedForward(name+" hidden", hiddenWidths, act, true, rng),
		outUnits: outUnits,
		rng:      rng,
	}, nil
}

// Apply returns a fresh accumulator; the previous one is never mutated.
func (ro *Readout) Apply(prop, acc [][]float64) ([][]float64, error) {
	if len(acc) != len(prop) {
		return nil, fmt.Errorf("%w: %s: accumulator rows: got=%d want=%d",
			model.ErrShape, ro.name, len(acc), len(prop))
	}

	hidden, err := ro.hidden.Apply(prop)
	if err != nil {
		return nil, err
	}
	if len(hidden) == 0 {
		return [][]float64{}, nil
	}

	if ro.project == nil {
		ro.project = newDense(ro.name+" scaling", len(hidden[0]), ro.outUnits, false, nil, ro.rng)
	}
	contrib, err := ro.project.apply(hidden)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, len(acc))
	for i := range acc {
		if len(acc[i]) != ro.outUnits {
			return nil, fmt.Errorf("%w: %s: accumulator width at row %d: got=%d want=%d",
				model.ErrShape, ro.name, i, len(acc[i]), ro.outUnits)
		}
		row := make([]float64, ro.outUnits)
		for j := range row {
			row[j] = acc[i][j] + contrib[i][j]
		}
		out[i] = row
	}
	return out, nil
}
