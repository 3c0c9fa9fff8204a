package nn

import (
	"fmt"
	"math/rand"

	"pinet/internal/model"
)

const (
	residualUnset = iota
	residualIdentity
	residualProject
)

// Residual merges a block's candidate update with the previous property
// matrix. Matching widths sum elementwise; differing widths project the old
// matrix through a bias-free linear map first, so an exactly zero input
// still yields an exactly zero contribution. The identity-vs-projection
// choice is made once, at the first call with concrete widths, and is fixed
// afterwards; calling with different widths later is a shape error.
type Residual struct {
	name string
	rng  *rand.Rand

	mode     int
	oldWidth int
	newWidth int
	project  *dense
}

func NewResidual(name string, rng *rand.Rand) *Residual {
	return &Residual{name: name, rng: rng}
}

func (r *Residual) Apply(old, new [][]float64) ([][]float64, error) {
	if len(old) != len(new) {
		return nil, fmt.Errorf("%w: %s: row counts: old=%d new=%d",
			model.ErrShape, r.name, len(old), len(new))
	}
	if len(old) == 0 {
		return [][]float64{}, nil
	}

	a, b := len(old[0]), len(new[0])
	if r.mode == residualUnset {
		r.oldWidth, r.newWidth = a, b
		if a == b {
			r.mode = residualIdentity
		} else {
			r.mode = residualProject
			r.project = newDense(r.name+" projection", a, b, false, nil, r.rng)
		}
	} else if a != r.oldWidth || b != r.newWidth {
		return nil, fmt.Errorf("%w: %s: widths changed after materialization: got=(%d,%d) want=(%d,%d)",
			model.ErrShape, r.name, a, b, r.oldWidth, r.newWidth)
	}

	base := old
	if r.mode == residualProject {
		projected, err := r.project.apply(old)
		if err != nil {
			return nil, err
		}
		base = projected
	}

	out := make([][]float64, len(new))
	for i := range new {
		if len(old[i]) != a || len(new[i]) != b {
			return nil, fmt.Errorf("%w: %s: ragged row %d", model.ErrShape, r.name, i)
		}
		row := make([]float64, b)
		for j := range row {
			row[j] = base[i][j] + new[i][j]
		}
		out[i] = row
	}
	return out, nil
}
