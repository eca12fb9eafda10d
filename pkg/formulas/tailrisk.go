package formulas

import "math"

// VaRZScore returns the z-score used for parametric Value at Risk at the
// given confidence level (the level is the tail probability, e.g. 0.05 for
// 95% VaR). The engine uses a fixed three-tier policy rather than an exact
// inverse-CDF lookup so that results are reproducible across platforms:
//
//	confidence <= 0.01 -> 2.33   (99%)
//	confidence <= 0.05 -> 1.645  (95%)
//	otherwise          -> 1.28   (90%)
func VaRZScore(confidence float64) float64 {
	switch {
	case confidence <= 0.01:
		return 2.33
	case confidence <= 0.05:
		return 1.645
	default:
		return 1.28
	}
}

// ESZScore returns the z-score used for parametric Expected Shortfall. The
// tiers mirror VaRZScore with Gaussian-tail multipliers. This is an
// approximation of the analytic ES factor, not a literature-exact formula.
func ESZScore(confidence float64) float64 {
	switch {
	case confidence <= 0.01:
		return 2.67
	case confidence <= 0.05:
		return 2.06
	default:
		return 1.75
	}
}

// ParametricVaR calculates Gaussian Value at Risk as a positive loss number.
// Expected return scales linearly with the horizon (in years), volatility
// with its square root.
//
//	VaR = -(r*h - z * sigma * sqrt(h))
func ParametricVaR(expectedReturn, volatility, confidence, horizon float64) float64 {
	z := VaRZScore(confidence)
	adjustedReturn := expectedReturn * horizon
	adjustedVolatility := volatility * math.Sqrt(horizon)
	return -(adjustedReturn - z*adjustedVolatility)
}

// ParametricES calculates Gaussian-tail Expected Shortfall with the same
// horizon scaling as ParametricVaR. ES dominates VaR for every confidence
// tier because the ES z-score tiers are strictly larger.
func ParametricES(expectedReturn, volatility, confidence, horizon float64) float64 {
	z := ESZScore(confidence)
	adjustedReturn := expectedReturn * horizon
	adjustedVolatility := volatility * math.Sqrt(horizon)
	return -(adjustedReturn - z*adjustedVolatility)
}

// HeuristicMaxDrawdown estimates maximum drawdown from volatility alone:
// 2.5 * sigma * sqrt(horizon). This is a documented heuristic for position
// sets without price history, not a simulated path statistic.
func HeuristicMaxDrawdown(volatility, horizon float64) float64 {
	return 2.5 * volatility * math.Sqrt(horizon)
}
