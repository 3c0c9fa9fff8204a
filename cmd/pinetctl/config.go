package main

import (
	"encoding/json"
	"fmt"
	"os"

	"pinet/internal/basis"
	"pinet/internal/network"
)

// loadNetworkConfig reads a JSON configuration file on top of the built-in
// defaults; an empty path returns the defaults unchanged. Unknown keys are
// ignored so config files stay forward compatible.
func loadNetworkConfig(path string) (network.Config, error) {
	cfg := network.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return network.Config{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return network.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if v, ok := asIntSlice(raw["atom_types"]); ok {
		cfg.AtomTypes = v
	}
	if v, ok := asFloat64(raw["cutoff_radius"]); ok {
		cfg.CutoffRadius = v
	}
	if v, ok := asString(raw["cutoff_type"]); ok {
		cfg.CutoffType = v
	}
	if v, ok := raw["basis"].(map[string]any); ok {
		cfg.Basis = basisSpecFromMap(v, cfg.Basis)
	}
	if v, ok := asIntSlice(raw["pp_nodes"]); ok {
		cfg.PPNodes = v
	}
	if v, ok := asIntSlice(raw["pi_nodes"]); ok {
		cfg.PINodes = v
	}
	if v, ok := asIntSlice(raw["ii_nodes"]); ok {
		cfg.IINodes = v
	}
	if v, ok := asIntSlice(raw["out_nodes"]); ok {
		cfg.OutNodes = v
	}
	if v, ok := asInt(raw["out_units"]); ok {
		cfg.OutUnits = v
	}
	if v, ok := asString(raw["out_pool"]); ok {
		cfg.OutPool = v
	}
	if v, ok := asString(raw["activation"]); ok {
		cfg.Activation = v
	}
	if v, ok := asInt(raw["depth"]); ok {
		cfg.Depth = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		cfg.Seed = v
	}
	return cfg, nil
}

func basisSpecFromMap(raw map[string]any, spec basis.Spec) basis.Spec {
	if v, ok := asString(raw["type"]); ok {
		spec.Type = v
	}
	if v, ok := asInt(raw["n"]); ok {
		spec.N = v
	}
	if v, ok := asFloat64(raw["gamma"]); ok {
		spec.Gamma = v
	}
	if v, ok := asFloatSlice(raw["centers"]); ok {
		spec.Centers = v
	}
	return spec
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

func asIntSlice(v any) ([]int, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	values := make([]int, 0, len(items))
	for _, item := range items {
		value, ok := asInt(item)
		if !ok {
			return nil, false
		}
		values = append(values, value)
	}
	return values, true
}

func asFloatSlice(v any) ([]float64, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	values := make([]float64, 0, len(items))
	for _, item := range items {
		value, ok := asFloat64(item)
		if !ok {
			return nil, false
		}
		values = append(values, value)
	}
	return values, true
}
