package nn

import (
	"fmt"
	"math/rand"
)

// ConvBlock is one message-passing step: entity-side FeedForward (possibly
// identity), pairwise interaction synthesis, a bias-free refinement of the
// raw interactions, and the scatter-sum back onto entities. It returns the
// candidate property update only; merging with the previous property matrix
// is the residual update's job, which keeps the block stateless beyond its
// owned parameters.
type ConvBlock struct {
	entity *FeedForward
	pair   *PairInteraction
	refine *FeedForward
}

func NewConvBlock(name string, entityWidths, pairWidths, refineWidths []int, act ActivationFunc, rng *rand.Rand) (*ConvBlock, error) {
	pair, err := NewPairInteraction(name+" pair interaction", pairWidths, act, rng)
	if err != nil {
		return nil, err
	}
	return &ConvBlock{
		entity: NewFeedForward(name+" entity transform", entityWidths, act, true, rng),
		pair:   pair,
		refine: NewFeedForward(name+" pair refine", refineWidths, act, false, rng),
	}, nil
}

// OutWidth is the channel width of the candidate update, fixed by
// configuration: the refine stack's last width, or the interaction width
// when the refine stack is empty.
func (b *ConvBlock) OutWidth() int {
	return b.refine.OutWidth(b.pair.OutWidth())
}

func (b *ConvBlock) Apply(pairs [][2]int, prop [][]float64, basis [][]float64) ([][]float64, error) {
	transformed, err := b.entity.Apply(prop)
	if err != nil {
		return nil, fmt.Errorf("convolution block: %w", err)
	}
	raw, err := b.pair.Apply(pairs, transformed, basis)
	if err != nil {
		return nil, fmt.Errorf("convolution block: %w", err)
	}
	refined, err := b.refine.Apply(raw)
	if err != nil {
		return nil, fmt.Errorf("convolution block: %w", err)
	}
	return Aggregate(pairs, refined, len(prop), b.OutWidth())
}
