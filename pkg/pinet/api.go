// Package pinet is the public client surface: dataset import, prediction
// runs and run inspection over a configurable persistence backend.
package pinet

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"pinet/internal/model"
	"pinet/internal/network"
	"pinet/internal/stats"
	"pinet/internal/storage"
)

const defaultDBPath = "pinet.db"

type Options struct {
	StoreKind string
	DBPath    string
}

type Client struct {
	store storage.Store
}

type ImportRequest struct {
	Name      string
	Molecules []model.Molecule
}

type ImportSummary struct {
	DatasetID string
	Name      string
	Molecules int
}

type PredictRequest struct {
	DatasetID string
	Config    network.Config
}

type PredictSummary struct {
	RunID     string
	DatasetID string
	Outputs   [][]float64
	Summary   *stats.Summary
}

type RunsRequest struct {
	Limit int
}

type RunItem struct {
	RunID        string
	CreatedAtUTC string
	DatasetID    string
	Outputs      int
}

type DatasetItem struct {
	DatasetID    string
	CreatedAtUTC string
	Name         string
	Molecules    int
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	return &Client{store: store}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

// ImportDataset stores a named molecule collection and returns its
// generated dataset ID.
func (c *Client) ImportDataset(ctx context.Context, req ImportRequest) (ImportSummary, error) {
	if req.Name == "" {
		return ImportSummary{}, fmt.Errorf("%w: dataset name is required", model.ErrInput)
	}
	if len(req.Molecules) == 0 {
		return ImportSummary{}, fmt.Errorf("%w: dataset has no molecules", model.ErrInput)
	}
	for i, molecule := range req.Molecules {
		if len(molecule.Types) == 0 || len(molecule.Types) != len(molecule.Coords) {
			return ImportSummary{}, fmt.Errorf("%w: molecule %d: types=%d coords=%d", model.ErrInput, i, len(molecule.Types), len(molecule.Coords))
		}
	}

	dataset := model.Dataset{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:           uuid.NewString(),
		Name:         req.Name,
		CreatedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Molecules:    req.Molecules,
	}
	if err := c.store.SaveDataset(ctx, dataset); err != nil {
		return ImportSummary{}, fmt.Errorf("save dataset: %w", err)
	}
	return ImportSummary{DatasetID: dataset.ID, Name: dataset.Name, Molecules: len(dataset.Molecules)}, nil
}

// ImportXYZFile parses a multi-frame XYZ file and imports it as a dataset.
func (c *Client) ImportXYZFile(ctx context.Context, name, path string) (ImportSummary, error) {
	file, err := os.Open(path)
	if err != nil {
		return ImportSummary{}, err
	}
	defer file.Close()

	molecules, err := model.ReadXYZ(file)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("read %s: %w", path, err)
	}
	return c.ImportDataset(ctx, ImportRequest{Name: name, Molecules: molecules})
}

// Predict runs a forward pass over every molecule of a stored dataset and
// persists the outputs as a prediction run. The per-run summary compares
// against dataset reference values when pooling yields one row per
// molecule.
func (c *Client) Predict(ctx context.Context, req PredictRequest) (PredictSummary, error) {
	if req.DatasetID == "" {
		return PredictSummary{}, fmt.Errorf("%w: dataset id is required", model.ErrInput)
	}
	dataset, ok, err := c.store.GetDataset(ctx, req.DatasetID)
	if err != nil {
		return PredictSummary{}, fmt.Errorf("get dataset: %w", err)
	}
	if !ok {
		return PredictSummary{}, fmt.Errorf("%w: unknown dataset %s", model.ErrInput, req.DatasetID)
	}

	net, err := network.New(req.Config)
	if err != nil {
		return PredictSummary{}, err
	}

	set, err := model.Batch(dataset.Molecules)
	if err != nil {
		return PredictSummary{}, err
	}
	outputs, err := net.Forward(network.Input{Groups: set.Groups, Types: set.Types, Coords: set.Coords})
	if err != nil {
		return PredictSummary{}, err
	}

	var summary *stats.Summary
	if req.Config.OutPool != network.PoolNone && req.Config.OutPool != "none" {
		references := make([]*float64, len(dataset.Molecules))
		for i, molecule := range dataset.Molecules {
			references[i] = molecule.Reference
		}
		s, err := stats.Summarize(outputs, references)
		if err != nil {
			return PredictSummary{}, err
		}
		summary = &s
	}

	config, err := json.Marshal(req.Config)
	if err != nil {
		return PredictSummary{}, fmt.Errorf("encode config: %w", err)
	}
	run := model.PredictionRun{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:           uuid.NewString(),
		CreatedAtUTC: time.Now().UTC().Format(time.RFC3339),
		DatasetID:    dataset.ID,
		Config:       config,
		Outputs:      outputs,
	}
	if err := c.store.SaveRun(ctx, run); err != nil {
		return PredictSummary{}, fmt.Errorf("save run: %w", err)
	}

	return PredictSummary{
		RunID:     run.ID,
		DatasetID: dataset.ID,
		Outputs:   outputs,
		Summary:   summary,
	}, nil
}

// Runs lists stored prediction runs, newest first.
func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]RunItem, error) {
	runs, err := c.store.ListRuns(ctx, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	items := make([]RunItem, 0, len(runs))
	for _, run := range runs {
		items = append(items, RunItem{
			RunID:        run.ID,
			CreatedAtUTC: run.CreatedAtUTC,
			DatasetID:    run.DatasetID,
			Outputs:      len(run.Outputs),
		})
	}
	return items, nil
}

// Datasets lists stored datasets, newest first.
func (c *Client) Datasets(ctx context.Context) ([]DatasetItem, error) {
	datasets, err := c.store.ListDatasets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	items := make([]DatasetItem, 0, len(datasets))
	for _, dataset := range datasets {
		items = append(items, DatasetItem{
			DatasetID:    dataset.ID,
			CreatedAtUTC: dataset.CreatedAtUTC,
			Name:         dataset.Name,
			Molecules:    len(dataset.Molecules),
		})
	}
	return items, nil
}

// ExportRun returns one stored run encoded as JSON.
func (c *Client) ExportRun(ctx context.Context, runID string) ([]byte, error) {
	run, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: unknown run %s", model.ErrInput, runID)
	}
	return json.MarshalIndent(run, "", "  ")
}

// ExportDataset returns one stored dataset encoded as JSON.
func (c *Client) ExportDataset(ctx context.Context, datasetID string) ([]byte, error) {
	dataset, ok, err := c.store.GetDataset(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("get dataset: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: unknown dataset %s", model.ErrInput, datasetID)
	}
	return json.MarshalIndent(dataset, "", "  ")
}
