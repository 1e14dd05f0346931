// Package config holds the engine's tunable configuration: composite
// weights, validation tolerances, and strictness switches. Files are
// HJSON so deployments can annotate their overrides in place.
package config

import (
	"fmt"
	"os"

	hjson "github.com/hjson/hjson-go/v4"
)

// Weights are the fixed component weights of the composite score.
// They must sum to 1.0.
type Weights struct {
	Liquidity     float64 `json:"liquidity"`
	Profitability float64 `json:"profitability"`
	Efficiency    float64 `json:"efficiency"`
	Leverage      float64 `json:"leverage"`
	Growth        float64 `json:"growth"`
	Quality       float64 `json:"quality"`
}

// Sum returns the total of all component weights.
func (w Weights) Sum() float64 {
	return w.Liquidity + w.Profitability + w.Efficiency + w.Leverage + w.Growth + w.Quality
}

// EngineConfig collects everything a deployment may tune.
type EngineConfig struct {
	Weights               Weights `json:"weights"`
	BalanceSheetTolerance float64 `json:"balance_sheet_tolerance"`
	CashFlowTolerance     float64 `json:"cash_flow_tolerance"`
	StrictValidation      bool    `json:"strict_validation"`
}

// Default returns the canonical configuration.
func Default() EngineConfig {
	return EngineConfig{
		Weights: Weights{
			Liquidity:     0.20,
			Profitability: 0.25,
			Efficiency:    0.15,
			Leverage:      0.15,
			Growth:        0.15,
			Quality:       0.10,
		},
		BalanceSheetTolerance: 0.01,
		CashFlowTolerance:     0.01,
	}
}

// Load reads an HJSON config file, layering it over the defaults.
func Load(path string) (EngineConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := hjson.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if sum := cfg.Weights.Sum(); sum < 0.999 || sum > 1.001 {
		return cfg, fmt.Errorf("component weights must sum to 1.0, got %.3f", sum)
	}
	return cfg, nil
}
