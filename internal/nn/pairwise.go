package nn

import (
	"fmt"
	"math/rand"

	"pinet/internal/model"
)

// PairInteraction synthesizes per-pair interaction features from the two
// endpoint property rows and a precomputed radial basis row. The endpoint
// rows are gathered and concatenated receiver-first (the map is not
// symmetric), fed through a FeedForward whose last width is internally
// multiplied by the basis width, and the result is contracted against the
// basis vector per pair. The network thus learns, per pair, a linear
// combination of the fixed basis conditioned on endpoint properties.
type PairInteraction struct {
	name   string
	widths []int // last entry is the output channel count, before basis multiplication
	act    ActivationFunc
	rng    *rand.Rand

	nBasis int // 0 until the first concrete basis width is seen
	ff     *FeedForward
}

func NewPairInteraction(name string, widths []int, act ActivationFunc, rng *rand.Rand) (*PairInteraction, error) {
	if len(widths) == 0 {
		return nil, fmt.Errorf("%w: %s: at least one width is required", model.ErrConfig, name)
	}
	return &PairInteraction{
		name:   name,
		widths: append([]int(nil), widths...),
		act:    act,
		rng:    rng,
	}, nil
}

// OutWidth is the interaction channel count, fixed by configuration.
func (p *PairInteraction) OutWidth() int {
	return p.widths[len(p.widths)-1]
}

// Apply builds the (n_pairs × c) interaction matrix. With zero pairs it
// returns zero rows and defers materialization.
func (p *PairInteraction) Apply(pairs [][2]int, prop [][]float64, basis [][]float64) ([][]float64, error) {
	if len(basis) != len(pairs) {
		return nil, fmt.Errorf("%w: %s: basis rows: got=%d want=%d",
			model.ErrShape, p.name, len(basis), len(pairs))
	}
	if len(pairs) == 0 {
		return [][]float64{}, nil
	}

	nb := len(basis[0])
	if p.nBasis == 0 {
		if nb <= 0 {
			return nil, fmt.Errorf("%w: %s: basis width must be positive", model.ErrShape, p.name)
		}
		widths := append([]int(nil), p.widths...)
		widths[len(widths)-1] *= nb
		p.ff = NewFeedForward(p.name+" synthesis", widths, p.act, true, p.rng)
		p.nBasis = nb
	} else if nb != p.nBasis {
		return nil, fmt.Errorf("%w: %s: basis width changed after materialization: got=%d want=%d",
			model.ErrShape, p.name, nb, p.nBasis)
	}

	gathered := make([][]float64, len(pairs))
	for k, pr := range pairs {
		recv, send := pr[0], pr[1]
		if recv < 0 || recv >= len(prop) || send < 0 || send >= len(prop) {
			return nil, fmt.Errorf("%w: %s: pair %d references entity outside [0,%d)",
				model.ErrShape, p.name, k, len(prop))
		}
		row := make([]float64, 0, len(prop[recv])+len(prop[send]))
		row = append(row, prop[recv]...)
		row = append(row, prop[send]...)
		gathered[k] = row
	}

	weights, err := p.ff.Apply(gathered)
	if err != nil {
		return nil, err
	}

	// weights rows have width c*nBasis, laid out channel-major; contract the
	// basis axis with an inner product per pair.
	c := p.OutWidth()
	out := make([][]float64, len(pairs))
	for k := range pairs {
		wrow := weights[k]
		if len(wrow) != c*p.nBasis {
			return nil, fmt.Errorf("%w: %s: synthesized width at pair %d: got=%d want=%d",
				model.ErrShape, p.name, k, len(wrow), c*p.nBasis)
		}
		brow := basis[k]
		if len(brow) != p.nBasis {
			return nil, fmt.Errorf("%w: %s: basis width at pair %d: got=%d want=%d",
				model.ErrShape, p.name, k, len(brow), p.nBasis)
		}
		vec := make([]float64, c)
		for ci := 0; ci < c; ci++ {
			sum := 0.0
			base := ci * p.nBasis
			for bi := 0; bi < p.nBasis; bi++ {
				sum += wrow[base+bi] * brow[bi]
			}
			vec[ci] = sum
		}
		out[k] = vec
	}
	return out, nil
}
