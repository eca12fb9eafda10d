// Package domain provides the core value objects of the risk engine:
// positions, fund holdings, allocations, validation issues and result types.
// Every entity is an immutable value created per call; the engine keeps no
// cross-call state and no identity beyond value equality.
package domain

// Currency represents a currency code
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyCHF Currency = "CHF"
	CurrencyJPY Currency = "JPY"
)

// Position represents one portfolio holding as supplied by the caller.
// Weights need not pre-sum to 1.0 - every consumer normalizes by the sum of
// the given weights before use. ISIN and AssetClass are optional; they are
// only consulted by the compliance and double-counting checks.
type Position struct {
	Name           string  `json:"name"`
	ISIN           string  `json:"isin,omitempty"`
	AssetClass     string  `json:"asset_class,omitempty"`
	ExpectedReturn float64 `json:"expected_return"`
	Volatility     float64 `json:"volatility"`
	Weight         float64 `json:"weight"`
	Value          float64 `json:"value"`
}

// FundHolding represents one underlying holding inside a look-through
// decomposition of a fund position. Sector is optional ("not provided", not
// "empty sector").
type FundHolding struct {
	Name         string   `json:"name"`
	ISIN         string   `json:"isin,omitempty"`
	Weight       float64  `json:"weight"`
	Value        float64  `json:"value"`
	Currency     Currency `json:"currency"`
	AssetClass   string   `json:"asset_class"`
	Geography    string   `json:"geography"`
	Sector       string   `json:"sector,omitempty"`
	IsDerivative bool     `json:"is_derivative,omitempty"`
}

// CurrencyExposure represents one currency's share of a fund, with the
// hedged portion of that share (both in percentage points of fund value).
type CurrencyExposure struct {
	Currency   Currency `json:"currency"`
	Percentage float64  `json:"percentage"`
	Hedged     float64  `json:"hedged,omitempty"`
}

// Allocation represents one row of a category breakdown (asset class,
// geography or currency) with its absolute value and stated percentage.
type Allocation struct {
	Category   string  `json:"category"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// RiskMetrics holds the standard risk/return measures of one portfolio
// snapshot. All values are decimals (0.08 = 8%), computed fresh per call and
// never cached inside the engine.
type RiskMetrics struct {
	ExpectedReturn       float64 `json:"expected_return"`
	Volatility           float64 `json:"volatility"`
	SharpeRatio          float64 `json:"sharpe_ratio"`
	ValueAtRisk          float64 `json:"value_at_risk"`
	ExpectedShortfall    float64 `json:"expected_shortfall"`
	MaxDrawdown          float64 `json:"max_drawdown"`
	DiversificationRatio float64 `json:"diversification_ratio"`
}
