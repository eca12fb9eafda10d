package domain

// PositionChange describes one proposed portfolio change: the position's new
// absolute value. Changes are merged into the current positions by
// case-insensitive name; a value of 0 removes the position, a name not yet in
// the portfolio adds it.
type PositionChange struct {
	Name       string  `json:"name"`
	AssetClass string  `json:"asset_class,omitempty"`
	Value      float64 `json:"value"`
}

// SignificantChange reports a category whose allocation share moved by more
// than the significance threshold between the original and proposed
// breakdowns. Percentages are points on the 0-100 scale.
type SignificantChange struct {
	Category     string  `json:"category"`
	OriginalPct  float64 `json:"original_pct"`
	NewPct       float64 `json:"new_pct"`
	ChangePoints float64 `json:"change_points"`
}

// PortfolioImpactResult quantifies how a proposed allocation differs from the
// original: absolute and relative value change, per-category shifts beyond
// the significance threshold, and concentration/diversification before and
// after.
type PortfolioImpactResult struct {
	TotalValueChange           float64             `json:"total_value_change"`
	TotalValueChangePct        float64             `json:"total_value_change_pct"`
	SignificantChanges         []SignificantChange `json:"significant_changes,omitempty"`
	ConcentrationBefore        float64             `json:"concentration_before"`
	ConcentrationAfter         float64             `json:"concentration_after"`
	DiversificationBefore      float64             `json:"diversification_before"`
	DiversificationAfter       float64             `json:"diversification_after"`
	DiversificationImprovement float64             `json:"diversification_improvement"`
}

// ChangeComplianceResult is the outcome of checking a changed portfolio
// against concentration and diversification thresholds. IsCompliant is true
// iff the violations list is empty; warnings and recommendations are
// advisory.
type ChangeComplianceResult struct {
	IsCompliant     bool     `json:"is_compliant"`
	Violations      []string `json:"violations,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}
