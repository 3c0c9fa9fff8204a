//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteStoreDatasetAndRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "pinet.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	dataset := testDataset("d1", "2026-01-02T03:04:05Z")
	if err := store.SaveDataset(ctx, dataset); err != nil {
		t.Fatalf("save dataset: %v", err)
	}

	loadedDataset, ok, err := store.GetDataset(ctx, dataset.ID)
	if err != nil {
		t.Fatalf("get dataset: %v", err)
	}
	if !ok {
		t.Fatalf("expected dataset %s", dataset.ID)
	}
	if loadedDataset.Name != dataset.Name || len(loadedDataset.Molecules) != len(dataset.Molecules) {
		t.Fatalf("unexpected dataset loaded: %+v", loadedDataset)
	}

	run := testRun("r1", "2026-01-02T03:04:05Z")
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("save run: %v", err)
	}

	loadedRun, ok, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !ok {
		t.Fatalf("expected run %s", run.ID)
	}
	if loadedRun.DatasetID != run.DatasetID || len(loadedRun.Outputs) != len(run.Outputs) {
		t.Fatalf("unexpected run loaded: %+v", loadedRun)
	}
}

func TestSQLiteStoreListRunsOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "pinet.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	for _, run := range []struct{ id, createdAt string }{
		{"r1", "2026-01-01T00:00:00Z"},
		{"r2", "2026-01-03T00:00:00Z"},
		{"r3", "2026-01-02T00:00:00Z"},
	} {
		if err := store.SaveRun(ctx, testRun(run.id, run.createdAt)); err != nil {
			t.Fatalf("save run %s: %v", run.id, err)
		}
	}

	listed, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("unexpected run count: got=%d want=2", len(listed))
	}
	if listed[0].ID != "r2" || listed[1].ID != "r3" {
		t.Fatalf("unexpected run order: %s, %s", listed[0].ID, listed[1].ID)
	}
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	store := NewSQLiteStore("")
	if err := store.Init(context.Background()); err == nil {
		t.Fatal("expected error for empty sqlite path")
	}
}
