package storage

import (
	"context"

	"pinet/internal/model"
)

// Store defines persistence operations for datasets and prediction runs.
type Store interface {
	Init(ctx context.Context) error
	SaveDataset(ctx context.Context, dataset model.Dataset) error
	GetDataset(ctx context.Context, id string) (model.Dataset, bool, error)
	ListDatasets(ctx context.Context) ([]model.Dataset, error)
	SaveRun(ctx context.Context, run model.PredictionRun) error
	GetRun(ctx context.Context, id string) (model.PredictionRun, bool, error)
	ListRuns(ctx context.Context, limit int) ([]model.PredictionRun, error)
}
