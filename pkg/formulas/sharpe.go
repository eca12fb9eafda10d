package formulas

// SharpeRatio calculates the Sharpe ratio from an already computed portfolio
// return and volatility.
//
//	Sharpe = (Expected Return - Risk-free Rate) / Volatility
//
// Returns 0 (not an error) when volatility is non-positive: a portfolio with
// no measurable risk has no meaningful risk-adjusted excess return.
func SharpeRatio(expectedReturn, volatility, riskFreeRate float64) float64 {
	if volatility <= 0 {
		return 0
	}
	return (expectedReturn - riskFreeRate) / volatility
}

// DiversificationRatio is the ratio of the weighted average of standalone
// volatilities to the portfolio volatility. Values above 1.0 indicate a
// diversification benefit. Returns 1.0 when portfolio volatility is
// non-positive (no benefit signal can be derived).
func DiversificationRatio(weightedVolatility, portfolioVolatility float64) float64 {
	if portfolioVolatility <= 0 {
		return 1.0
	}
	return weightedVolatility / portfolioVolatility
}
