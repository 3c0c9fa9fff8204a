package model

import "fmt"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// EntitySet is a batch of atoms, possibly spanning several molecules. The
// per-atom property matrix is replaced, never mutated, between convolution
// blocks; its width changes across depths.
type EntitySet struct {
	Groups []int
	Types  []int
	Coords [][3]float64
	Prop   [][]float64
}

func (e EntitySet) Len() int {
	return len(e.Groups)
}

// Validate checks the batch layout: matching row counts and a non-negative,
// non-decreasing group index (the pooling step depends on it).
func (e EntitySet) Validate() error {
	n := len(e.Groups)
	if n == 0 {
		return fmt.Errorf("%w: entity set is empty", ErrInput)
	}
	if len(e.Types) != n {
		return fmt.Errorf("%w: type rows: got=%d want=%d", ErrInput, len(e.Types), n)
	}
	if len(e.Coords) != n {
		return fmt.Errorf("%w: coord rows: got=%d want=%d", ErrInput, len(e.Coords), n)
	}
	prev := 0
	for i, g := range e.Groups {
		if g < 0 {
			return fmt.Errorf("%w: group index at row %d is negative", ErrInput, i)
		}
		if g < prev {
			return fmt.Errorf("%w: group index at row %d decreases: %d after %d", ErrInput, i, g, prev)
		}
		prev = g
	}
	return nil
}

// NumGroups returns the number of molecules in the batch. Valid only after
// Validate has accepted the group index.
func (e EntitySet) NumGroups() int {
	if len(e.Groups) == 0 {
		return 0
	}
	return e.Groups[len(e.Groups)-1] + 1
}

// PairSet holds one row per ordered neighbor pair inside the cutoff radius.
// Index rows are (receiver, sender); Diff points from receiver to sender.
// A pair set is immutable once built; each forward pass gets its own.
type PairSet struct {
	Index [][2]int
	Dist  []float64
	Diff  [][3]float64
	Basis [][]float64
}

func (p PairSet) Len() int {
	return len(p.Index)
}

// Validate checks row counts and that every pair references a valid entity.
func (p PairSet) Validate(nEntities int) error {
	n := len(p.Index)
	if len(p.Dist) != n {
		return fmt.Errorf("%w: pair distance rows: got=%d want=%d", ErrInput, len(p.Dist), n)
	}
	if len(p.Diff) != n {
		return fmt.Errorf("%w: pair displacement rows: got=%d want=%d", ErrInput, len(p.Diff), n)
	}
	for i, pr := range p.Index {
		for _, idx := range pr {
			if idx < 0 || idx >= nEntities {
				return fmt.Errorf("%w: pair %d references entity %d outside [0,%d)", ErrShape, i, idx, nEntities)
			}
		}
		if pr[0] == pr[1] {
			return fmt.Errorf("%w: pair %d is a self pair on entity %d", ErrInput, i, pr[0])
		}
	}
	return nil
}
