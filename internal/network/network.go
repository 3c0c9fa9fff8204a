// Package network wires preprocessing, the radial basis, and the
// depth-indexed sequence of convolution block / readout / residual triples
// into one forward computation over a batched set of atoms.
package network

import (
	"fmt"
	"math/rand"

	"pinet/internal/basis"
	"pinet/internal/model"
	"pinet/internal/neighbor"
	"pinet/internal/nn"
)

// Input is the free-form input bag of one forward call. Groups, Types and
// Coords are always required. The preprocessed fields skip the internal
// neighbor build and embedding and must be supplied together: Pairs, Dist,
// Diff and Prop are all present or all absent.
type Input struct {
	Groups []int
	Types  []int
	Coords [][3]float64

	Pairs [][2]int
	Dist  []float64
	Diff  [][3]float64
	Prop  [][]float64
}

func (in Input) preprocessed() bool {
	return in.Pairs != nil || in.Dist != nil || in.Diff != nil || in.Prop != nil
}

func (in Input) validate() error {
	set := model.EntitySet{Groups: in.Groups, Types: in.Types, Coords: in.Coords}
	if err := set.Validate(); err != nil {
		return err
	}
	if !in.preprocessed() {
		return nil
	}
	if in.Pairs == nil || in.Dist == nil || in.Diff == nil || in.Prop == nil {
		return fmt.Errorf("%w: preprocessed inputs require pair index, distance, displacement and property together", model.ErrInput)
	}
	if len(in.Prop) != set.Len() {
		return fmt.Errorf("%w: property rows: got=%d want=%d", model.ErrInput, len(in.Prop), set.Len())
	}
	pairSet := model.PairSet{Index: in.Pairs, Dist: in.Dist, Diff: in.Diff}
	return pairSet.Validate(set.Len())
}

// Network is the depth-stacked message-passing model. Construction
// validates the configuration and builds one convolution block, one
// residual update and one readout per depth level; parameters materialize
// lazily on the first forward call, once concrete widths are known.
//
// A forward call only reads parameters, so concurrent calls are safe after
// the first call has materialized every transform. The first call is that
// one-time initialization and must not run concurrently; do a single
// warm-up call before sharing the network across goroutines.
type Network struct {
	cfg    Config
	act    nn.ActivationFunc
	cutoff basis.CutoffFunc
	expand *basis.Expansion

	blocks    []*nn.ConvBlock
	residuals []*nn.Residual
	readouts  []*nn.Readout
}

func New(cfg Config) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	act, err := nn.GetActivation(cfg.Activation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrConfig, err)
	}
	cutoff, err := basis.NewCutoff(cfg.CutoffType, cfg.CutoffRadius)
	if err != nil {
		return nil, err
	}
	expand, err := basis.New(cfg.Basis, cfg.CutoffRadius)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))

	net := &Network{
		cfg:    cfg,
		act:    act,
		cutoff: cutoff,
		expand: expand,
	}
	for i := 0; i < cfg.Depth; i++ {
		// At depth 0 the properties are the raw embedding; the entity-side
		// transform is the identity there.
		ppNodes := cfg.PPNodes
		if i == 0 {
			ppNodes = nil
		}
		name := fmt.Sprintf("block %d", i)
		block, err := nn.NewConvBlock(name, ppNodes, cfg.PINodes, cfg.IINodes, act, rng)
		if err != nil {
			return nil, err
		}
		readout, err := nn.NewReadout(fmt.Sprintf("readout %d", i), cfg.OutNodes, cfg.OutUnits, act, rng)
		if err != nil {
			return nil, err
		}
		net.blocks = append(net.blocks, block)
		net.readouts = append(net.readouts, readout)
		net.residuals = append(net.residuals, nn.NewResidual(fmt.Sprintf("residual %d", i), rng))
	}
	return net, nil
}

// Config returns a copy of the construction configuration.
func (n *Network) Config() Config {
	return n.cfg
}

// Forward runs one prediction over a batched input and returns per-atom
// rows, or per-molecule rows when pooling is configured. The input is
// validated before any computation; property and accumulator matrices are
// replaced, never mutated, between depth levels.
func (n *Network) Forward(in Input) ([][]float64, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	pairs, dist, prop := in.Pairs, in.Dist, in.Prop
	if !in.preprocessed() {
		var err error
		pairs, dist, _, err = neighbor.BuildPairs(in.Coords, in.Groups, n.cfg.CutoffRadius)
		if err != nil {
			return nil, err
		}
		prop, err = Embed(in.Types, n.cfg.AtomTypes)
		if err != nil {
			return nil, err
		}
	}

	envelope := make([]float64, len(dist))
	for k, d := range dist {
		envelope[k] = n.cutoff(d)
	}
	basisRows, err := n.expand.Expand(dist, envelope)
	if err != nil {
		return nil, err
	}

	nAtoms := len(in.Groups)
	output := make([][]float64, nAtoms)
	for i := range output {
		output[i] = make([]float64, n.cfg.OutUnits)
	}

	for i := 0; i < n.cfg.Depth; i++ {
		candidate, err := n.blocks[i].Apply(pairs, prop, basisRows)
		if err != nil {
			return nil, err
		}
		output, err = n.readouts[i].Apply(candidate, output)
		if err != nil {
			return nil, err
		}
		prop, err = n.residuals[i].Apply(prop, candidate)
		if err != nil {
			return nil, err
		}
	}

	return Pool(in.Groups, output, n.cfg.OutPool)
}
