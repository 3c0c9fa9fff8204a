package main

import (
	"os"
	"path/filepath"
	"testing"

	"pinet/internal/basis"
	"pinet/internal/network"
)

func TestLoadNetworkConfigDefaults(t *testing.T) {
	cfg, err := loadNetworkConfig("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	want := network.DefaultConfig()
	if cfg.CutoffRadius != want.CutoffRadius || cfg.Depth != want.Depth {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadNetworkConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"atom_types": [1, 8],
		"cutoff_radius": 6.5,
		"cutoff_type": "f2",
		"basis": {"type": "gaussian", "n": 8, "gamma": 2.5},
		"pp_nodes": [32],
		"pi_nodes": [32, 32],
		"ii_nodes": [32],
		"out_nodes": [32],
		"out_units": 2,
		"out_pool": "sum",
		"activation": "relu",
		"depth": 3,
		"seed": 99,
		"unknown_key": true
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadNetworkConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.AtomTypes) != 2 || cfg.AtomTypes[1] != 8 {
		t.Fatalf("unexpected atom types: %v", cfg.AtomTypes)
	}
	if cfg.CutoffRadius != 6.5 || cfg.CutoffType != basis.CutoffTanh {
		t.Fatalf("unexpected cutoff: %v %s", cfg.CutoffRadius, cfg.CutoffType)
	}
	if cfg.Basis.Type != basis.BasisGaussian || cfg.Basis.N != 8 || cfg.Basis.Gamma != 2.5 {
		t.Fatalf("unexpected basis: %+v", cfg.Basis)
	}
	if len(cfg.PINodes) != 2 || cfg.PINodes[0] != 32 {
		t.Fatalf("unexpected pi nodes: %v", cfg.PINodes)
	}
	if cfg.OutUnits != 2 || cfg.OutPool != network.PoolSum {
		t.Fatalf("unexpected output config: units=%d pool=%s", cfg.OutUnits, cfg.OutPool)
	}
	if cfg.Activation != "relu" || cfg.Depth != 3 || cfg.Seed != 99 {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("loaded config invalid: %v", err)
	}
}

func TestLoadNetworkConfigPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"depth": 2}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadNetworkConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Depth != 2 {
		t.Fatalf("unexpected depth: %d", cfg.Depth)
	}
	want := network.DefaultConfig()
	if cfg.CutoffRadius != want.CutoffRadius || len(cfg.PINodes) != len(want.PINodes) {
		t.Fatalf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadNetworkConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"depth":`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadNetworkConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}
