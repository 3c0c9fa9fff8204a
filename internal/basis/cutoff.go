// Package basis holds the radial descriptors of the network: smooth cutoff
// envelopes that vanish at the cutoff radius and fixed-width basis
// expansions of the pair distance. Both are closed variant sets chosen at
// configuration time; an unrecognized name is a configuration error before
// any computation runs.
package basis

import (
	"fmt"
	"math"

	"pinet/internal/model"
)

// CutoffFunc maps a pair distance to its envelope value. Implementations
// decay smoothly to zero at the cutoff radius and are clamped to zero
// beyond it, so pair contributions vanish continuously at the boundary.
type CutoffFunc func(dist float64) float64

// Cutoff variant names.
const (
	CutoffCosine = "f1"
	CutoffTanh   = "f2"
)

// NewCutoff selects a cutoff envelope by name.
func NewCutoff(name string, rc float64) (CutoffFunc, error) {
	if rc <= 0 {
		return nil, fmt.Errorf("%w: cutoff radius must be positive: got=%v", model.ErrConfig, rc)
	}
	switch name {
	case CutoffCosine:
		return func(dist float64) float64 {
			if dist >= rc {
				return 0
			}
			return 0.5 * (math.Cos(math.Pi*dist/rc) + 1)
		}, nil
	case CutoffTanh:
		norm := math.Tanh(1)
		return func(dist float64) float64 {
			if dist >= rc {
				return 0
			}
			v := math.Tanh(1-dist/rc) / norm
			return v * v * v
		}, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized cutoff variant: %s", model.ErrConfig, name)
	}
}
