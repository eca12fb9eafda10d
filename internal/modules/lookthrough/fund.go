package lookthrough

import (
	"fmt"
	"math"

	"github.com/fondsblick/riskengine/internal/domain"
)

// ValidateFundDecomposition reconciles a single fund's stated value against
// its underlying holdings, using the same tolerance policy as the
// portfolio-level check: a deviation beyond 0.01% of the fund value is an
// Error (FUND_DECOMP_002), beyond 0.1% a Critical. Holdings with negative
// value or weight raise FUND_DECOMP_003; holding weights deviating from 1.0
// by more than the weight tolerance raise FUND_DECOMP_004.
//
// An unexpected internal panic yields a single Critical FUND_DECOMP_ERROR
// issue instead of propagating.
func (v *Validator) ValidateFundDecomposition(fundValue float64, holdings []domain.FundHolding) (issues []domain.ValidationIssue) {
	defer func() {
		if r := recover(); r != nil {
			v.log.Error().Interface("panic", r).Msg("Fund decomposition validation failed internally")
			issues = []domain.ValidationIssue{{
				Severity:  domain.SeverityCritical,
				Code:      domain.CodeFundDecompError,
				Message:   fmt.Sprintf("fund decomposition validation failed internally: %v", r),
				MessageDE: "Die Fondszerlegung konnte nicht validiert werden.",
			}}
		}
	}()

	holdingsTotal := 0.0
	weightTotal := 0.0
	var negative []string
	for _, h := range holdings {
		holdingsTotal += h.Value
		weightTotal += h.Weight
		if h.Value < 0 || h.Weight < 0 {
			negative = append(negative, h.Name)
		}
	}

	difference := math.Abs(fundValue - holdingsTotal)
	tolerance := fundValue * v.cfg.DecompositionTolerancePct / 100.0
	if difference > tolerance {
		var pctDifference float64
		if fundValue > 0 {
			pctDifference = difference / fundValue * 100.0
		}
		severity := domain.SeverityError
		if pctDifference > v.cfg.CriticalDifferencePct {
			severity = domain.SeverityCritical
		}
		issues = append(issues, domain.ValidationIssue{
			Severity: severity,
			Code:     domain.CodeFundDecomp002,
			Message: fmt.Sprintf("holdings total %.2f deviates from fund value %.2f by %.2f (%.3f%%)",
				holdingsTotal, fundValue, difference, pctDifference),
			MessageDE: fmt.Sprintf("Die Summe der Einzelpositionen weicht um %.2f (%.3f%%) vom Fondswert ab.",
				difference, pctDifference),
		})
	}

	if len(negative) > 0 {
		issues = append(issues, domain.ValidationIssue{
			Severity:          domain.SeverityError,
			Code:              domain.CodeFundDecomp003,
			Message:           fmt.Sprintf("%d holding(s) carry a negative value or weight", len(negative)),
			MessageDE:         "Mindestens eine Einzelposition hat einen negativen Wert oder ein negatives Gewicht.",
			AffectedPositions: negative,
		})
	}

	if len(holdings) > 0 && math.Abs(weightTotal-1.0) > v.cfg.WeightSumTolerance {
		issues = append(issues, domain.ValidationIssue{
			Severity:  domain.SeverityWarning,
			Code:      domain.CodeFundDecomp004,
			Message:   fmt.Sprintf("holding weights sum to %.4f instead of 1.0", weightTotal),
			MessageDE: fmt.Sprintf("Die Gewichte der Einzelpositionen summieren sich auf %.4f statt 1,0.", weightTotal),
		})
	}

	return issues
}
