// Package lookthrough reconciles a portfolio's top-level category allocation
// against its decomposed ("looked through") allocation. It detects value
// mismatches, percentage-sum errors, double counting of the same instrument
// across nested funds, currency-exposure inconsistency and geographic
// coverage gaps.
//
// All findings are soft: they come back as domain.ValidationIssue data, never
// as errors, so one bad row can never abort a batch evaluation. An unexpected
// internal panic is converted into a single Critical VALIDATION_ERROR issue.
package lookthrough

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/fondsblick/riskengine/internal/config"
	"github.com/fondsblick/riskengine/internal/domain"
)

// Penalty points per finding. Decomposition penalties follow severity; the
// delegated checks (currency, geography, double counting) are deducted flat.
const (
	penaltyDecompCritical = 25.0
	penaltyDecompError    = 15.0
	penaltyPercentSum     = 5.0
	penaltyRowMismatch    = 2.0
	penaltyDoubleCount    = 5.0
	penaltyGeographic     = 5.0
	penaltyCurrencyError  = 10.0
	penaltyCurrencyWarn   = 3.0
)

// Validator performs look-through structural validation. Safe for concurrent
// use.
type Validator struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewValidator creates a new look-through validator.
func NewValidator(cfg *config.Config, log zerolog.Logger) *Validator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Validator{
		cfg: cfg,
		log: log.With().Str("component", "lookthrough").Logger(),
	}
}

// Validate reconciles the original top-level allocation against the
// look-through allocation, optionally enriched with the underlying fund
// holdings. Scoring starts at 100 and is penalized per finding; IsValid is
// true iff no issue reaches Error severity.
//
// Never returns an error: an unexpected internal panic yields a zeroed
// result carrying a single Critical VALIDATION_ERROR issue.
func (v *Validator) Validate(original, lookThrough []domain.Allocation, holdings []domain.FundHolding) (result domain.LookThroughResult) {
	defer func() {
		if r := recover(); r != nil {
			v.log.Error().Interface("panic", r).Msg("Look-through validation failed internally")
			msg := fmt.Sprintf("look-through validation failed internally: %v", r)
			result = domain.LookThroughResult{
				IsValid: false,
				Issues: []domain.ValidationIssue{{
					Severity:  domain.SeverityCritical,
					Code:      domain.CodeValidationError,
					Message:   msg,
					MessageDE: "Die Look-Through-Validierung ist intern fehlgeschlagen.",
				}},
				Errors: []string{msg},
			}
		}
	}()

	score := 100.0
	var issues []domain.ValidationIssue

	originalTotal := sumValues(original)
	lookThroughTotal := sumValues(lookThrough)
	difference := math.Abs(originalTotal - lookThroughTotal)

	// Decomposition accuracy: tolerance is a fraction of the original total.
	var pctDifference float64
	if originalTotal > 0 {
		pctDifference = difference / originalTotal * 100.0
	}
	accuracy := math.Max(0, 100.0-pctDifference)

	tolerance := originalTotal * v.cfg.DecompositionTolerancePct / 100.0
	if difference > tolerance {
		severity := domain.SeverityError
		penalty := penaltyDecompError
		if pctDifference > v.cfg.CriticalDifferencePct {
			severity = domain.SeverityCritical
			penalty = penaltyDecompCritical
		}
		score -= penalty
		issues = append(issues, domain.ValidationIssue{
			Severity: severity,
			Code:     domain.CodeFundDecomp001,
			Message: fmt.Sprintf("look-through total %.2f deviates from portfolio total %.2f by %.2f (%.3f%%)",
				lookThroughTotal, originalTotal, difference, pctDifference),
			MessageDE: fmt.Sprintf("Die Summe der Look-Through-Positionen weicht um %.2f (%.3f%%) vom Portfoliowert ab.",
				difference, pctDifference),
			SuggestedAction: "Reconcile the fund decomposition against the stated portfolio value",
		})
	}

	// Both percentage columns must sum to 100.
	for _, col := range []struct {
		label       string
		allocations []domain.Allocation
	}{
		{"original", original},
		{"look-through", lookThrough},
	} {
		sum := sumPercentages(col.allocations)
		if math.Abs(sum-100.0) > v.cfg.PercentSumTolerance {
			score -= penaltyPercentSum
			issues = append(issues, domain.ValidationIssue{
				Severity: domain.SeverityWarning,
				Code:     domain.CodePercentSum001,
				Message:  fmt.Sprintf("%s allocation percentages sum to %.2f instead of 100", col.label, sum),
				MessageDE: fmt.Sprintf("Die prozentualen Anteile der %s-Aufteilung summieren sich auf %.2f statt 100.",
					col.label, sum),
			})
		}
	}

	// Per-row value/percentage consistency of the look-through column.
	if lookThroughTotal > 0 {
		for _, row := range lookThrough {
			implied := row.Value / lookThroughTotal * 100.0
			if math.Abs(implied-row.Percentage) > v.cfg.RowConsistencyTolerance {
				score -= penaltyRowMismatch
				issues = append(issues, domain.ValidationIssue{
					Severity: domain.SeverityWarning,
					Code:     domain.CodeConsistency001,
					Message: fmt.Sprintf("category %q states %.2f%% but its value implies %.2f%%",
						row.Category, row.Percentage, implied),
					AffectedPositions: []string{row.Category},
				})
			}
		}
	}

	// Double counting across the underlying holdings.
	doubleCounting := v.DetectDoubleCounting(nil, holdings)
	if doubleCounting.Detected {
		score -= penaltyDoubleCount
		issues = append(issues, domain.ValidationIssue{
			Severity: domain.SeverityWarning,
			Code:     domain.CodeDoubleCount001,
			Message: fmt.Sprintf("%d instrument(s) appear in more than one fund, overlapping value %.2f",
				len(doubleCounting.AffectedAssets), doubleCounting.OverlapValue),
			MessageDE:         "Mindestens ein Instrument ist in mehreren Fonds gleichzeitig enthalten.",
			AffectedPositions: doubleCounting.AffectedAssets,
			SuggestedAction:   "Review overlapping fund holdings to avoid double-counted exposure",
		})
	}

	// Currency exposure: pass-through when no fund data is given.
	currency := domain.CurrencyExposureResult{IsConsistent: true, HedgingStatus: "unknown"}
	if len(holdings) > 0 {
		exposures := exposuresFromHoldings(holdings)
		var currencyIssues []domain.ValidationIssue
		currency, currencyIssues = v.ValidateCurrencyExposure(domain.CurrencyEUR, exposures, false)
		for _, issue := range currencyIssues {
			if issue.Severity.AtLeast(domain.SeverityError) {
				score -= penaltyCurrencyError
			} else {
				score -= penaltyCurrencyWarn
			}
		}
		issues = append(issues, currencyIssues...)
	}

	// Geographic integrity over the rows naming a recognized region. A
	// breakdown with no regional rows at all means "not computed", not
	// "everything missing".
	geographic := domain.GeographicIntegrityResult{IsValid: true}
	if regionRows := filterRegionRows(lookThrough); len(regionRows) > 0 {
		geographic = v.ValidateGeographicIntegrity(regionRows)
	}
	if !geographic.IsValid {
		score -= penaltyGeographic
		issues = append(issues, domain.ValidationIssue{
			Severity:          domain.SeverityWarning,
			Code:              domain.CodeGeographic001,
			Message:           fmt.Sprintf("geographic allocation incomplete: total %.2f%%, missing %v", geographic.TotalAllocation, geographic.MissingAllocations),
			MessageDE:         "Die geografische Aufteilung ist unvollständig.",
			AffectedPositions: geographic.MissingAllocations,
		})
	}

	errors, warnings := domain.FlattenMessages(issues)

	return domain.LookThroughResult{
		IsValid:               !domain.HasBlocking(issues),
		OverallScore:          clampScore(score),
		Issues:                issues,
		Errors:                errors,
		Warnings:              warnings,
		TotalValueDifference:  difference,
		DecompositionAccuracy: accuracy,
		DoubleCounting:        doubleCounting,
		CurrencyExposure:      currency,
		GeographicIntegrity:   geographic,
	}
}

func sumValues(allocations []domain.Allocation) float64 {
	total := 0.0
	for _, a := range allocations {
		total += a.Value
	}
	return total
}

func sumPercentages(allocations []domain.Allocation) float64 {
	total := 0.0
	for _, a := range allocations {
		total += a.Percentage
	}
	return total
}

// exposuresFromHoldings derives a percentage currency breakdown from holding
// values. Hedging data is not available at this level, so Hedged stays 0.
func exposuresFromHoldings(holdings []domain.FundHolding) []domain.CurrencyExposure {
	total := 0.0
	byCurrency := make(map[domain.Currency]float64)
	order := make([]domain.Currency, 0, 4)
	for _, h := range holdings {
		if _, seen := byCurrency[h.Currency]; !seen {
			order = append(order, h.Currency)
		}
		byCurrency[h.Currency] += h.Value
		total += h.Value
	}
	if total <= 0 {
		return nil
	}

	exposures := make([]domain.CurrencyExposure, 0, len(order))
	for _, currency := range order {
		exposures = append(exposures, domain.CurrencyExposure{
			Currency:   currency,
			Percentage: byCurrency[currency] / total * 100.0,
		})
	}
	return exposures
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
