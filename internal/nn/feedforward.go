package nn

import (
	"fmt"
	"math/rand"

	"pinet/internal/model"
)

// FeedForward is a stack of dense layers applied to the trailing feature
// axis of an entity or pair matrix. An empty width list is the identity;
// the first convolution block's entity-side transform is configured that
// way.
//
// Construction is two-phase: widths and options are fixed up front, weights
// are created once the first concrete input width is seen. A later call
// with a different input width is a shape error, never a silent rebuild.
type FeedForward struct {
	name    string
	widths  []int
	act     ActivationFunc
	useBias bool
	rng     *rand.Rand

	inWidth int // 0 until materialized
	layers  []*dense
}

func NewFeedForward(name string, widths []int, act ActivationFunc, useBias bool, rng *rand.Rand) *FeedForward {
	return &FeedForward{
		name:    name,
		widths:  append([]int(nil), widths...),
		act:     act,
		useBias: useBias,
		rng:     rng,
	}
}

// OutWidth reports the trailing width produced for a given input width.
func (f *FeedForward) OutWidth(in int) int {
	if len(f.widths) == 0 {
		return in
	}
	return f.widths[len(f.widths)-1]
}

// Apply runs the stack. Zero input rows pass through without materializing
// parameters; nothing can be inferred from them.
func (f *FeedForward) Apply(rows [][]float64) ([][]float64, error) {
	if len(f.widths) == 0 {
		return rows, nil
	}
	if len(rows) == 0 {
		return rows, nil
	}

	in := len(rows[0])
	if f.inWidth == 0 {
		if in <= 0 {
			return nil, fmt.Errorf("%w: %s: input width must be positive", model.ErrShape, f.name)
		}
		if err := f.materialize(in); err != nil {
			return nil, err
		}
	} else if in != f.inWidth {
		return nil, fmt.Errorf("%w: %s: input width changed after materialization: got=%d want=%d",
			model.ErrShape, f.name, in, f.inWidth)
	}

	var err error
	for _, layer := range f.layers {
		rows, err = layer.apply(rows)
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}

func (f *FeedForward) materialize(in int) error {
	if f.layers != nil {
		return fmt.Errorf("%w: %s: already materialized", model.ErrShape, f.name)
	}
	layers := make([]*dense, 0, len(f.widths))
	prev := in
	for li, width := range f.widths {
		if width <= 0 {
			return fmt.Errorf("%w: %s: layer %d width must be positive: got=%d",
				model.ErrConfig, f.name, li, width)
		}
		layers = append(layers, newDense(fmt.Sprintf("%s layer %d", f.name, li),
			prev, width, f.useBias, f.act, f.rng))
		prev = width
	}
	f.layers = layers
	f.inWidth = in
	return nil
}
