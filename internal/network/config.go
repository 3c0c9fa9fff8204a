package network

import (
	"fmt"

	"pinet/internal/basis"
	"pinet/internal/model"
	"pinet/internal/nn"
)

// Pooling mode names. An empty mode keeps per-atom outputs.
const (
	PoolNone = ""
	PoolSum  = "sum"
	PoolAvg  = "avg"
	PoolMax  = "max"
	PoolMin  = "min"
)

// Config is the immutable construction surface of a network. Hidden widths
// come in four independent families: entity-side transforms (PP), pairwise
// interaction synthesis (PI), pairwise refinement (II), and readout (Out).
type Config struct {
	AtomTypes []int `json:"atom_types"`

	CutoffRadius float64    `json:"cutoff_radius"`
	CutoffType   string     `json:"cutoff_type"`
	Basis        basis.Spec `json:"basis"`

	PPNodes  []int `json:"pp_nodes"`
	PINodes  []int `json:"pi_nodes"`
	IINodes  []int `json:"ii_nodes"`
	OutNodes []int `json:"out_nodes"`

	OutUnits   int    `json:"out_units"`
	OutPool    string `json:"out_pool"`
	Activation string `json:"activation"`
	Depth      int    `json:"depth"`

	// Seed fixes parameter initialization; zero means seed 1.
	Seed int64 `json:"seed"`
}

// DefaultConfig mirrors the reference network: H/C/N/O vocabulary, 4 Å
// cosine cutoff, 4 polynomial basis functions, 16-wide transforms, depth 4,
// one output per atom.
func DefaultConfig() Config {
	return Config{
		AtomTypes:    []int{1, 6, 7, 8},
		CutoffRadius: 4.0,
		CutoffType:   basis.CutoffCosine,
		Basis:        basis.Spec{Type: basis.BasisPolynomial, N: 4},
		PPNodes:      []int{16, 16},
		PINodes:      []int{16, 16},
		IINodes:      []int{16, 16},
		OutNodes:     []int{16, 16},
		OutUnits:     1,
		OutPool:      PoolNone,
		Activation:   "tanh",
		Depth:        4,
	}
}

// Validate raises every configuration error before any computation: the
// closed variant sets, the vocabulary, the width families, depth and
// output shape.
func (c Config) Validate() error {
	if c.Depth < 1 {
		return fmt.Errorf("%w: depth must be at least 1: got=%d", model.ErrConfig, c.Depth)
	}
	if len(c.AtomTypes) == 0 {
		return fmt.Errorf("%w: atom type vocabulary is empty", model.ErrConfig)
	}
	seen := make(map[int]bool, len(c.AtomTypes))
	for _, at := range c.AtomTypes {
		if seen[at] {
			return fmt.Errorf("%w: duplicate atom type %d in vocabulary", model.ErrConfig, at)
		}
		seen[at] = true
	}
	if _, err := basis.NewCutoff(c.CutoffType, c.CutoffRadius); err != nil {
		return err
	}
	if _, err := basis.New(c.Basis, c.CutoffRadius); err != nil {
		return err
	}
	if len(c.PINodes) == 0 {
		return fmt.Errorf("%w: pairwise interaction needs at least one width", model.ErrConfig)
	}
	for _, family := range [][]int{c.PPNodes, c.PINodes, c.IINodes, c.OutNodes} {
		for _, width := range family {
			if width <= 0 {
				return fmt.Errorf("%w: hidden width must be positive: got=%d", model.ErrConfig, width)
			}
		}
	}
	if c.OutUnits < 1 {
		return fmt.Errorf("%w: output units must be at least 1: got=%d", model.ErrConfig, c.OutUnits)
	}
	switch c.OutPool {
	case PoolNone, "none", PoolSum, PoolAvg, PoolMax, PoolMin:
	default:
		return fmt.Errorf("%w: unrecognized pooling mode: %s", model.ErrConfig, c.OutPool)
	}
	if _, err := nn.GetActivation(c.Activation); err != nil {
		return fmt.Errorf("%w: %v", model.ErrConfig, err)
	}
	return nil
}
