// Package riskmetrics computes standard risk/return measures from weighted
// position-level data: expected return, volatility, Sharpe ratio, parametric
// VaR and Expected Shortfall, a max-drawdown heuristic and the
// diversification ratio. All calculations are deterministic pure functions
// of their inputs; nothing is cached between calls.
package riskmetrics

import (
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/fondsblick/riskengine/internal/config"
	"github.com/fondsblick/riskengine/internal/domain"
	"github.com/fondsblick/riskengine/pkg/formulas"
)

// Calculator computes portfolio risk metrics. Safe for concurrent use; it
// holds configuration and a logger only.
type Calculator struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewCalculator creates a new risk metrics calculator.
func NewCalculator(cfg *config.Config, log zerolog.Logger) *Calculator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Calculator{
		cfg: cfg,
		log: log.With().Str("component", "risk_metrics").Logger(),
	}
}

// Calculate orchestrates the full metric set for one position snapshot.
// correlations is optional: nil (or a matrix whose dimension does not match
// the position count) falls back to the conservative simple volatility.
//
// Hard failures: domain.ErrEmptyPortfolio on zero positions, a
// domain.IncompleteDataError if any position has a missing or non-finite
// ExpectedReturn, Volatility or Weight.
func (c *Calculator) Calculate(positions []domain.Position, correlations [][]float64) (domain.RiskMetrics, error) {
	if err := c.validatePositions(positions); err != nil {
		return domain.RiskMetrics{}, err
	}

	expectedReturn, err := c.ExpectedReturn(positions)
	if err != nil {
		return domain.RiskMetrics{}, err
	}

	volatility, err := c.PortfolioVolatility(positions, correlations)
	if err != nil {
		return domain.RiskMetrics{}, err
	}

	diversification, err := c.DiversificationRatio(positions, volatility)
	if err != nil {
		return domain.RiskMetrics{}, err
	}

	confidence := c.cfg.DefaultConfidence
	horizon := c.cfg.DefaultHorizon

	return domain.RiskMetrics{
		ExpectedReturn:       expectedReturn,
		Volatility:           volatility,
		SharpeRatio:          c.SharpeRatio(expectedReturn, volatility),
		ValueAtRisk:          c.ValueAtRisk(expectedReturn, volatility, confidence, horizon),
		ExpectedShortfall:    c.ExpectedShortfall(expectedReturn, volatility, confidence, horizon),
		MaxDrawdown:          c.MaxDrawdown(volatility, horizon),
		DiversificationRatio: diversification,
	}, nil
}

// ExpectedReturn computes the weight-normalized expected portfolio return.
func (c *Calculator) ExpectedReturn(positions []domain.Position) (float64, error) {
	weights, returns, _, err := c.normalized(positions)
	if err != nil {
		return 0, err
	}
	return formulas.WeightedAverage(weights, returns), nil
}

// SimpleVolatility computes the weighted sum of standalone volatilities - a
// conservative upper bound used when no correlation matrix is available
// (it assumes all pairwise correlations are 1).
func (c *Calculator) SimpleVolatility(positions []domain.Position) (float64, error) {
	weights, _, volatilities, err := c.normalized(positions)
	if err != nil {
		return 0, err
	}
	return formulas.WeightedAverage(weights, volatilities), nil
}

// PortfolioVolatility computes sigma_p = sqrt(sum_ij w_i w_j s_i s_j rho_ij).
// Diagonal correlations are forced to 1.0 regardless of matrix content, and
// the radicand is clamped to >= 0 before the square root to absorb numerical
// noise. A nil matrix or a dimension mismatch falls back to SimpleVolatility.
func (c *Calculator) PortfolioVolatility(positions []domain.Position, correlations [][]float64) (float64, error) {
	weights, _, volatilities, err := c.normalized(positions)
	if err != nil {
		return 0, err
	}

	n := len(positions)
	if len(correlations) != n {
		if correlations != nil {
			c.log.Warn().
				Int("positions", n).
				Int("matrix_dim", len(correlations)).
				Msg("Correlation matrix dimension mismatch, using simple volatility")
		}
		return formulas.WeightedAverage(weights, volatilities), nil
	}
	for _, row := range correlations {
		if len(row) != n {
			c.log.Warn().Int("positions", n).Msg("Ragged correlation matrix, using simple volatility")
			return formulas.WeightedAverage(weights, volatilities), nil
		}
	}

	// radicand = v^T P v with v_i = w_i * s_i and P the correlation matrix.
	v := make([]float64, n)
	for i := range positions {
		v[i] = weights[i] * volatilities[i]
	}

	rho := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				rho.Set(i, j, 1.0)
				continue
			}
			rho.Set(i, j, correlations[i][j])
		}
	}

	radicand := mat.Inner(mat.NewVecDense(n, v), rho, mat.NewVecDense(n, v))
	if radicand < 0 {
		c.log.Debug().Float64("radicand", radicand).Msg("Clamping negative variance to zero")
		radicand = 0
	}
	return math.Sqrt(radicand), nil
}

// SharpeRatio computes the Sharpe ratio using the configured risk-free rate.
// Returns 0 (not an error) when volatility is non-positive.
func (c *Calculator) SharpeRatio(expectedReturn, volatility float64) float64 {
	return formulas.SharpeRatio(expectedReturn, volatility, c.cfg.RiskFreeRate)
}

// ValueAtRisk computes parametric Gaussian VaR as a positive loss number.
// Non-positive confidence or horizon fall back to the configured defaults.
func (c *Calculator) ValueAtRisk(expectedReturn, volatility, confidence, horizon float64) float64 {
	confidence, horizon = c.applyDefaults(confidence, horizon)
	return formulas.ParametricVaR(expectedReturn, volatility, confidence, horizon)
}

// ExpectedShortfall computes Gaussian-tail Expected Shortfall with the same
// horizon scaling as VaR. If the computation produces a non-finite value it
// falls back to 1.25 x VaR - the sole deliberate internal fallback in the
// engine, a documented approximation rather than a suppressed error.
func (c *Calculator) ExpectedShortfall(expectedReturn, volatility, confidence, horizon float64) float64 {
	confidence, horizon = c.applyDefaults(confidence, horizon)

	es := formulas.ParametricES(expectedReturn, volatility, confidence, horizon)
	if math.IsNaN(es) || math.IsInf(es, 0) {
		fallback := 1.25 * formulas.ParametricVaR(expectedReturn, volatility, confidence, horizon)
		c.log.Warn().
			Float64("fallback", fallback).
			Msg("Expected shortfall computation failed, falling back to 1.25 x VaR")
		return fallback
	}
	return es
}

// MaxDrawdown estimates maximum drawdown as 2.5 x volatility x sqrt(horizon).
// A documented heuristic for snapshots without price history, not a
// simulated path statistic.
func (c *Calculator) MaxDrawdown(volatility, horizon float64) float64 {
	if horizon <= 0 {
		horizon = c.cfg.DefaultHorizon
	}
	return formulas.HeuristicMaxDrawdown(volatility, horizon)
}

// DiversificationRatio computes the ratio of the weighted standalone
// volatility to the portfolio volatility. Returns 1.0 when portfolio
// volatility is non-positive (no diversification benefit signal).
func (c *Calculator) DiversificationRatio(positions []domain.Position, portfolioVolatility float64) (float64, error) {
	weighted, err := c.SimpleVolatility(positions)
	if err != nil {
		return 0, err
	}
	return formulas.DiversificationRatio(weighted, portfolioVolatility), nil
}

// applyDefaults substitutes configured defaults for unset parameters.
func (c *Calculator) applyDefaults(confidence, horizon float64) (float64, float64) {
	if confidence <= 0 {
		confidence = c.cfg.DefaultConfidence
	}
	if horizon <= 0 {
		horizon = c.cfg.DefaultHorizon
	}
	return confidence, horizon
}

// validatePositions enforces the hard-failure preconditions.
func (c *Calculator) validatePositions(positions []domain.Position) error {
	if len(positions) == 0 {
		return domain.ErrEmptyPortfolio
	}
	for _, p := range positions {
		switch {
		case !isFinite(p.ExpectedReturn):
			return &domain.IncompleteDataError{Position: p.Name, Field: "expected_return"}
		case !isFinite(p.Volatility):
			return &domain.IncompleteDataError{Position: p.Name, Field: "volatility"}
		case !isFinite(p.Weight):
			return &domain.IncompleteDataError{Position: p.Name, Field: "weight"}
		}
	}
	return nil
}

// normalized runs validation and the single weight-normalization pre-pass,
// returning parallel slices of normalized weights, returns and volatilities.
// A weight sum outside 1 +/- WeightSumTolerance is a correctable discrepancy
// and is logged, not failed.
func (c *Calculator) normalized(positions []domain.Position) (weights, returns, volatilities []float64, err error) {
	if err := c.validatePositions(positions); err != nil {
		return nil, nil, nil, err
	}

	raw := make([]float64, len(positions))
	returns = make([]float64, len(positions))
	volatilities = make([]float64, len(positions))
	for i, p := range positions {
		raw[i] = p.Weight
		returns[i] = p.ExpectedReturn
		volatilities[i] = p.Volatility
	}

	weights, sum := formulas.NormalizeWeights(raw)
	if weights == nil {
		return nil, nil, nil, &domain.IncompleteDataError{Position: positions[0].Name, Field: "weight"}
	}
	if math.Abs(sum-1.0) > c.cfg.WeightSumTolerance {
		c.log.Warn().
			Float64("weight_sum", sum).
			Msg("Position weights do not sum to 1.0, normalizing")
	}
	return weights, returns, volatilities, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
