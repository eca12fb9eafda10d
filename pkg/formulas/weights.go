// Package formulas provides the pure float64 building blocks of the risk
// engine: weight normalization, parametric tail-risk measures, ratio
// calculations and concentration indices. Functions here carry no logging,
// no configuration and no state; policy (tolerances, penalties, severity)
// lives in the validator modules.
package formulas

import (
	"gonum.org/v1/gonum/floats"
)

// Sum returns the sum of a slice of float64 values.
func Sum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values)
}

// NormalizeWeights scales weights so they sum to 1.0. Input weights need not
// pre-sum to 1; every consumer of position weights normalizes through this
// single pre-pass so rounding drift cannot depend on evaluation order.
//
// Returns the normalized weights and the original sum. A non-positive sum
// yields a nil slice; callers treat that as incomplete data.
func NormalizeWeights(weights []float64) ([]float64, float64) {
	total := Sum(weights)
	if total <= 0 {
		return nil, total
	}

	normalized := make([]float64, len(weights))
	for i, w := range weights {
		normalized[i] = w / total
	}
	return normalized, total
}

// WeightedAverage computes sum(weights[i] * values[i]) over already
// normalized weights. Slices must be equal length.
func WeightedAverage(weights, values []float64) float64 {
	if len(weights) != len(values) || len(weights) == 0 {
		return 0
	}
	return floats.Dot(weights, values)
}
