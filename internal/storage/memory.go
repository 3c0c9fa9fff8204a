package storage

import (
	"context"
	"sort"
	"sync"

	"pinet/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	datasets    map[string]model.Dataset
	runs        map[string]model.PredictionRun
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.datasets = make(map[string]model.Dataset)
	s.runs = make(map[string]model.PredictionRun)
	return nil
}

func (s *MemoryStore) SaveDataset(_ context.Context, dataset model.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.datasets[dataset.ID] = copyDataset(dataset)
	return nil
}

func (s *MemoryStore) GetDataset(_ context.Context, id string) (model.Dataset, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dataset, ok := s.datasets[id]
	if !ok {
		return model.Dataset{}, false, nil
	}
	return copyDataset(dataset), true, nil
}

func (s *MemoryStore) ListDatasets(_ context.Context) ([]model.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listed := make([]model.Dataset, 0, len(s.datasets))
	for _, dataset := range s.datasets {
		listed = append(listed, copyDataset(dataset))
	}
	sortNewestFirst(listed, func(d model.Dataset) (string, string) { return d.CreatedAtUTC, d.ID })
	return listed, nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.PredictionRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = copyRun(run)
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.PredictionRun, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return model.PredictionRun{}, false, nil
	}
	return copyRun(run), true, nil
}

func (s *MemoryStore) ListRuns(_ context.Context, limit int) ([]model.PredictionRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listed := make([]model.PredictionRun, 0, len(s.runs))
	for _, run := range s.runs {
		listed = append(listed, copyRun(run))
	}
	sortNewestFirst(listed, func(r model.PredictionRun) (string, string) { return r.CreatedAtUTC, r.ID })
	if limit > 0 && len(listed) > limit {
		listed = listed[:limit]
	}
	return listed, nil
}

// sortNewestFirst orders records by descending RFC 3339 timestamp, which
// sorts lexicographically, with the ID as a deterministic tie break.
func sortNewestFirst[T any](records []T, key func(T) (string, string)) {
	sort.Slice(records, func(i, j int) bool {
		ti, idi := key(records[i])
		tj, idj := key(records[j])
		if ti != tj {
			return ti > tj
		}
		return idi < idj
	})
}

func copyDataset(d model.Dataset) model.Dataset {
	copied := d
	copied.Molecules = make([]model.Molecule, len(d.Molecules))
	for i, molecule := range d.Molecules {
		copied.Molecules[i] = model.Molecule{
			Types:  append([]int(nil), molecule.Types...),
			Coords: append([][3]float64(nil), molecule.Coords...),
		}
		if molecule.Reference != nil {
			reference := *molecule.Reference
			copied.Molecules[i].Reference = &reference
		}
	}
	return copied
}

func copyRun(r model.PredictionRun) model.PredictionRun {
	copied := r
	copied.Config = append([]byte(nil), r.Config...)
	copied.Outputs = make([][]float64, len(r.Outputs))
	for i, row := range r.Outputs {
		copied.Outputs[i] = append([]float64(nil), row...)
	}
	return copied
}
