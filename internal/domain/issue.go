package domain

// Severity classifies a validation finding. The set is closed and ordered:
// Warning < Error < Critical. Validity and compliance flags are derived from
// this ordering - a result is valid iff no issue reaches SeverityError.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// severityRank maps severities onto their ordering.
var severityRank = map[Severity]int{
	SeverityWarning:  1,
	SeverityError:    2,
	SeverityCritical: 3,
}

// AtLeast reports whether s is at least as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return severityRank[s] >= severityRank[other]
}

// Issue codes are stable machine-readable identifiers. Tests and callers key
// off these constants, never off the prose messages.
const (
	CodeFundDecomp001 = "FUND_DECOMP_001" // portfolio vs look-through total mismatch
	CodeFundDecomp002 = "FUND_DECOMP_002" // single fund value vs holdings mismatch
	CodeFundDecomp003 = "FUND_DECOMP_003" // negative holding value or weight
	CodeFundDecomp004 = "FUND_DECOMP_004" // holding weights deviate from 1.0
	CodePercentSum001 = "PERCENT_SUM_001" // percentage column does not sum to 100
	CodeConsistency001 = "CONSISTENCY_001" // stated vs recomputed row percentage
	CodeDoubleCount001 = "DOUBLE_COUNT_001" // same instrument counted twice
	CodeGeographic001 = "GEO_001" // required region missing or total off

	CodeCurrency001 = "CURRENCY_001" // exposures do not sum to 100
	CodeCurrency002 = "CURRENCY_002" // negative currency exposure
	CodeCurrency003 = "CURRENCY_003" // hedge ratio below claim

	CodeBaFin001     = "BAFIN_001"     // asset class outside BaFin taxonomy
	CodeUCITS001     = "UCITS_001"     // derivative exposure above UCITS limit
	CodeISIN001      = "ISIN_001"      // missing or malformed ISIN
	CodeReporting001 = "REPORTING_001" // reporting total off 100%

	// Internal-failure codes: a validator that panics internally yields a
	// single Critical issue with one of these codes instead of propagating.
	CodeValidationError = "VALIDATION_ERROR"
	CodeFundDecompError = "FUND_DECOMP_ERROR"
	CodeCurrencyError   = "CURRENCY_ERROR"
	CodeComplianceError = "COMPLIANCE_ERROR"
)

// ValidationIssue is the uniform unit of feedback across all validators.
// Soft findings are data, not control flow: validators collect every issue
// over the full evaluation instead of stopping at the first one. MessageDE
// carries the German-localized text so the presentation layer needs no
// translation step.
type ValidationIssue struct {
	Severity          Severity `json:"severity"`
	Code              string   `json:"code"`
	Message           string   `json:"message"`
	MessageDE         string   `json:"message_de,omitempty"`
	AffectedPositions []string `json:"affected_positions,omitempty"`
	SuggestedAction   string   `json:"suggested_action,omitempty"`
}

// HasBlocking reports whether any issue reaches Error severity. This is the
// single definition of "valid"/"compliant" across all result types.
func HasBlocking(issues []ValidationIssue) bool {
	for _, issue := range issues {
		if issue.Severity.AtLeast(SeverityError) {
			return true
		}
	}
	return false
}

// FlattenMessages splits issues into legacy errors/warnings string lists.
// Older callers consume these flattened lists alongside the structured
// issues; both views are always populated.
func FlattenMessages(issues []ValidationIssue) (errors, warnings []string) {
	for _, issue := range issues {
		if issue.Severity.AtLeast(SeverityError) {
			errors = append(errors, issue.Message)
		} else {
			warnings = append(warnings, issue.Message)
		}
	}
	return errors, warnings
}
