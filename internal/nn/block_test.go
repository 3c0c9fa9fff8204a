package nn

import (
	"math"
	"math/rand"
	"testing"
)

func TestConvBlockCandidateShape(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	block, err := NewConvBlock("block 0", nil, []int{8, 4}, []int{4}, math.Tanh, rng)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := block.OutWidth(); got != 4 {
		t.Fatalf("unexpected out width: got=%d want=4", got)
	}

	prop := [][]float64{{1, 0}, {0, 1}, {1, 1}}
	pairs := [][2]int{{0, 1}, {1, 0}, {0, 2}, {2, 0}, {1, 2}, {2, 1}}
	basis := make([][]float64, len(pairs))
	for k := range basis {
		basis[k] = []float64{0.9, 0.5, 0.2}
	}

	cand, err := block.Apply(pairs, prop, basis)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(cand) != len(prop) {
		t.Fatalf("unexpected candidate rows: got=%d want=%d", len(cand), len(prop))
	}
	for i, row := range cand {
		if len(row) != 4 {
			t.Fatalf("unexpected candidate width at row %d: got=%d want=4", i, len(row))
		}
	}
}

func TestConvBlockEmptyRefineUsesInteractionWidth(t *testing.T) {
	block, err := NewConvBlock("block", nil, []int{5}, nil, math.Tanh, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := block.OutWidth(); got != 5 {
		t.Fatalf("unexpected out width: got=%d want=5", got)
	}
}

func TestConvBlockZeroPairsGivesZeroCandidate(t *testing.T) {
	block, err := NewConvBlock("block", []int{4}, []int{4}, []int{4}, math.Tanh, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	prop := [][]float64{{1, 2}, {3, 4}}
	cand, err := block.Apply(nil, prop, nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(cand) != 2 {
		t.Fatalf("unexpected candidate rows: got=%d want=2", len(cand))
	}
	for i, row := range cand {
		if len(row) != 4 {
			t.Fatalf("unexpected width at row %d: got=%d want=4", i, len(row))
		}
		for j, v := range row {
			if v != 0 {
				t.Fatalf("isolated entities must get the additive identity, got %v at (%d,%d)", v, i, j)
			}
		}
	}
}
