// Package config provides configuration management for the risk engine.
// All tolerances and regulatory thresholds have fixed defaults so the pure
// components work without any environment; Load applies .env / environment
// overrides on top for deployments that tune them.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every tunable threshold of the engine. Percent-suffixed
// fields are on the 0-100 scale; everything else is a decimal fraction.
type Config struct {
	LogLevel string

	// Risk metrics
	RiskFreeRate      float64 // annual, decimal (0.025 = 2.5%)
	DefaultConfidence float64 // tail probability (0.05 = 95% confidence)
	DefaultHorizon    float64 // years

	// Look-through validation
	DecompositionTolerancePct float64 // value mismatch tolerance, % of total
	CriticalDifferencePct     float64 // mismatch above this % is Critical
	PercentSumTolerance       float64 // percentage columns must sum to 100 +/- this
	RowConsistencyTolerance   float64 // stated vs recomputed row percentage
	WeightSumTolerance        float64 // holding weights must sum to 1 +/- this
	HedgeRatioMin             float64 // minimum hedged share of foreign exposure

	// German regulatory compliance
	UCITSDerivativeWarnPct     float64 // derivative exposure warning threshold
	UCITSDerivativeCriticalPct float64 // derivative exposure critical threshold
	ReportingTolerance         float64 // reporting total must be 100 +/- this

	// Change-impact analysis
	SignificantChangePts  float64 // |delta percentage| above this is significant
	ConcentrationWarnPct  float64 // single-position share warning threshold
	ConcentrationLimitPct float64 // single-position share violation threshold
	EquityCapPct          float64 // aggregate equity share warning threshold
	AlternativesCapPct    float64 // aggregate alternatives warning threshold
	MinAssetClasses       int     // below this, recommend diversification
	MinPositions          int     // below this, recommend diversification
}

// Default returns the engine defaults without consulting the environment.
func Default() *Config {
	return &Config{
		LogLevel: "info",

		RiskFreeRate:      0.025,
		DefaultConfidence: 0.05,
		DefaultHorizon:    1.0,

		DecompositionTolerancePct: 0.01,
		CriticalDifferencePct:     0.1,
		PercentSumTolerance:       0.1,
		RowConsistencyTolerance:   0.1,
		WeightSumTolerance:        0.001,
		HedgeRatioMin:             0.80,

		UCITSDerivativeWarnPct:     10.0,
		UCITSDerivativeCriticalPct: 25.0,
		ReportingTolerance:         0.01,

		SignificantChangePts:  5.0,
		ConcentrationWarnPct:  20.0,
		ConcentrationLimitPct: 25.0,
		EquityCapPct:          80.0,
		AlternativesCapPct:    15.0,
		MinAssetClasses:       3,
		MinPositions:          10,
	}
}

// Load reads configuration from environment variables, loading a .env file
// first if one exists. Unset variables keep their defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	cfg.LogLevel = getEnv("RISK_LOG_LEVEL", cfg.LogLevel)

	var err error
	if cfg.RiskFreeRate, err = getEnvFloat("RISK_FREE_RATE", cfg.RiskFreeRate); err != nil {
		return nil, err
	}
	if cfg.DefaultConfidence, err = getEnvFloat("RISK_DEFAULT_CONFIDENCE", cfg.DefaultConfidence); err != nil {
		return nil, err
	}
	if cfg.DefaultHorizon, err = getEnvFloat("RISK_DEFAULT_HORIZON", cfg.DefaultHorizon); err != nil {
		return nil, err
	}
	if cfg.UCITSDerivativeWarnPct, err = getEnvFloat("UCITS_DERIVATIVE_WARN_PCT", cfg.UCITSDerivativeWarnPct); err != nil {
		return nil, err
	}
	if cfg.UCITSDerivativeCriticalPct, err = getEnvFloat("UCITS_DERIVATIVE_CRITICAL_PCT", cfg.UCITSDerivativeCriticalPct); err != nil {
		return nil, err
	}
	if cfg.ConcentrationWarnPct, err = getEnvFloat("CONCENTRATION_WARN_PCT", cfg.ConcentrationWarnPct); err != nil {
		return nil, err
	}
	if cfg.ConcentrationLimitPct, err = getEnvFloat("CONCENTRATION_LIMIT_PCT", cfg.ConcentrationLimitPct); err != nil {
		return nil, err
	}

	if cfg.DefaultConfidence <= 0 || cfg.DefaultConfidence >= 1 {
		return nil, fmt.Errorf("invalid RISK_DEFAULT_CONFIDENCE: %v (must be in (0,1))", cfg.DefaultConfidence)
	}
	if cfg.DefaultHorizon <= 0 {
		return nil, fmt.Errorf("invalid RISK_DEFAULT_HORIZON: %v (must be > 0)", cfg.DefaultHorizon)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable value, returning a fallback if
// the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvFloat retrieves a float environment variable with a fallback.
func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
