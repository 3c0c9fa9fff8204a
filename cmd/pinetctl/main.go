package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"pinet/internal/storage"
	pinetapi "pinet/pkg/pinet"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "import":
		return runImport(ctx, args[1:])
	case "datasets":
		return runDatasets(ctx, args[1:])
	case "predict":
		return runPredict(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func newClient(storeKind, dbPath string) (*pinetapi.Client, error) {
	return pinetapi.New(pinetapi.Options{StoreKind: storeKind, DBPath: dbPath})
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pinet.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pinet.db", "sqlite database path")
	name := fs.String("name", "", "dataset name")
	xyzPath := fs.String("xyz", "", "multi-frame xyz file to import")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return usageError("import requires -name")
	}
	if *xyzPath == "" {
		return usageError("import requires -xyz")
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	summary, err := client.ImportXYZFile(ctx, *name, *xyzPath)
	if err != nil {
		return err
	}
	fmt.Printf("imported dataset=%s name=%s molecules=%d\n", summary.DatasetID, summary.Name, summary.Molecules)
	return nil
}

func runDatasets(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("datasets", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pinet.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	datasets, err := client.Datasets(ctx)
	if err != nil {
		return err
	}
	if len(datasets) == 0 {
		fmt.Println("no datasets")
		return nil
	}
	for _, dataset := range datasets {
		fmt.Printf("%s  %s  name=%s molecules=%d\n", dataset.DatasetID, dataset.CreatedAtUTC, dataset.Name, dataset.Molecules)
	}
	return nil
}

func runPredict(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pinet.db", "sqlite database path")
	datasetID := fs.String("dataset", "", "dataset id to predict over")
	configPath := fs.String("config", "", "json network configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *datasetID == "" {
		return usageError("predict requires -dataset")
	}

	cfg, err := loadNetworkConfig(*configPath)
	if err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	summary, err := client.Predict(ctx, pinetapi.PredictRequest{DatasetID: *datasetID, Config: cfg})
	if err != nil {
		return err
	}
	fmt.Printf("run=%s dataset=%s outputs=%d\n", summary.RunID, summary.DatasetID, len(summary.Outputs))
	if summary.Summary != nil {
		s := summary.Summary
		fmt.Printf("mean=%.6f std=%.6f min=%.6f max=%.6f\n", s.Mean, s.Std, s.Min, s.Max)
		if s.Compared > 0 {
			fmt.Printf("compared=%d mae=%.6f rmse=%.6f\n", s.Compared, s.MAE, s.RMSE)
		}
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pinet.db", "sqlite database path")
	limit := fs.Int("limit", 20, "maximum runs to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	runs, err := client.Runs(ctx, pinetapi.RunsRequest{Limit: *limit})
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}
	for _, item := range runs {
		fmt.Printf("%s  %s  dataset=%s outputs=%d\n", item.RunID, item.CreatedAtUTC, item.DatasetID, item.Outputs)
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pinet.db", "sqlite database path")
	runID := fs.String("run", "", "run id to export")
	datasetID := fs.String("dataset", "", "dataset id to export")
	outPath := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (*runID == "") == (*datasetID == "") {
		return usageError("export requires exactly one of -run or -dataset")
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	var payload []byte
	if *runID != "" {
		payload, err = client.ExportRun(ctx, *runID)
	} else {
		payload, err = client.ExportDataset(ctx, *datasetID)
	}
	if err != nil {
		return err
	}

	if *outPath == "" {
		fmt.Println(string(payload))
		return nil
	}
	if err := os.WriteFile(*outPath, payload, 0o644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", *outPath)
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: pinetctl <init|import|datasets|predict|runs|export> [flags]", msg)
}
