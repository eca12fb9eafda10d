package domain

// DoubleCountingResult reports instruments that appear both directly and via
// one or more wrapping funds. OverlapValue accumulates the holding value (not
// the portfolio value) of every overlapping key.
type DoubleCountingResult struct {
	Detected       bool     `json:"detected"`
	AffectedAssets []string `json:"affected_assets,omitempty"`
	OverlapValue   float64  `json:"overlap_value"`
}

// CurrencyExposureResult reports whether a fund's currency breakdown is
// internally consistent.
type CurrencyExposureResult struct {
	IsConsistent  bool                 `json:"is_consistent"`
	Exposures     map[Currency]float64 `json:"exposures,omitempty"`
	HedgingStatus string               `json:"hedging_status,omitempty"`
}

// GeographicIntegrityResult reports whether a geographic breakdown covers the
// required regions and sums to 100%.
type GeographicIntegrityResult struct {
	IsValid            bool     `json:"is_valid"`
	TotalAllocation    float64  `json:"total_allocation"`
	MissingAllocations []string `json:"missing_allocations,omitempty"`
}

// LookThroughResult is the outcome of reconciling a portfolio's top-level
// allocation against its looked-through decomposition. IsValid is true iff no
// issue reaches Error severity. Errors and Warnings are the legacy flattened
// views of Issues.
type LookThroughResult struct {
	IsValid               bool                      `json:"is_valid"`
	OverallScore          float64                   `json:"overall_score"`
	Issues                []ValidationIssue         `json:"issues"`
	Errors                []string                  `json:"errors,omitempty"`
	Warnings              []string                  `json:"warnings,omitempty"`
	TotalValueDifference  float64                   `json:"total_value_difference"`
	DecompositionAccuracy float64                   `json:"decomposition_accuracy"`
	DoubleCounting        DoubleCountingResult      `json:"double_counting"`
	CurrencyExposure      CurrencyExposureResult    `json:"currency_exposure"`
	GeographicIntegrity   GeographicIntegrityResult `json:"geographic_integrity"`
}

// BaFinChecks mirrors the three German regulatory check groups as booleans
// for callers that only need a pass/fail view.
type BaFinChecks struct {
	AssetClassification bool `json:"asset_classification"`
	UCITSCompliance     bool `json:"ucits_compliance"`
	ReportingStandards  bool `json:"reporting_standards"`
}

// ComplianceResult is the outcome of scoring a position set against German
// financial standards. IsCompliant is true iff no issue reaches Error
// severity; ComplianceScore starts at 100 and is penalized per violation
// category.
type ComplianceResult struct {
	IsCompliant     bool              `json:"is_compliant"`
	BaFin           BaFinChecks       `json:"bafin"`
	Issues          []ValidationIssue `json:"issues"`
	ComplianceScore float64           `json:"compliance_score"`
}
