package model

import (
	"encoding/json"
	"fmt"
)

// Molecule is one structure of a dataset: atomic numbers and coordinates,
// optionally with a reference value (e.g. a known energy) for comparison
// against predictions.
type Molecule struct {
	Types     []int        `json:"types"`
	Coords    [][3]float64 `json:"coords"`
	Reference *float64     `json:"reference,omitempty"`
}

func (m Molecule) Validate() error {
	if len(m.Types) == 0 {
		return fmt.Errorf("%w: molecule has no atoms", ErrInput)
	}
	if len(m.Coords) != len(m.Types) {
		return fmt.Errorf("%w: molecule coord rows: got=%d want=%d", ErrInput, len(m.Coords), len(m.Types))
	}
	return nil
}

// Dataset is a named collection of molecules.
type Dataset struct {
	VersionedRecord
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	CreatedAtUTC string     `json:"created_at_utc"`
	Molecules    []Molecule `json:"molecules"`
}

// PredictionRun records one prediction over a dataset: the network
// configuration used (kept as raw JSON so the storage layer stays agnostic
// of the network package), the per-molecule or per-atom outputs, and the
// summary computed from them. Trained parameters are deliberately not part
// of the record.
type PredictionRun struct {
	VersionedRecord
	ID           string          `json:"id"`
	CreatedAtUTC string          `json:"created_at_utc"`
	DatasetID    string          `json:"dataset_id"`
	Config       json.RawMessage `json:"config"`
	Outputs      [][]float64     `json:"outputs"`
}

// Batch concatenates molecules into one EntitySet with a fresh group index,
// the layout every forward pass consumes.
func Batch(molecules []Molecule) (EntitySet, error) {
	var set EntitySet
	for gi, mol := range molecules {
		if err := mol.Validate(); err != nil {
			return EntitySet{}, fmt.Errorf("molecule %d: %w", gi, err)
		}
		for ai := range mol.Types {
			set.Groups = append(set.Groups, gi)
			set.Types = append(set.Types, mol.Types[ai])
			set.Coords = append(set.Coords, mol.Coords[ai])
		}
	}
	if err := set.Validate(); err != nil {
		return EntitySet{}, err
	}
	return set, nil
}
