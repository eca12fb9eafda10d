// Package compliance scores a position set against German regulatory
// standards: the BaFin asset-class taxonomy, the UCITS derivative-exposure
// limit, ISIN presence and format, and the 100%-allocation reporting rule.
// ISO 6166 ISIN structure and checksum validation are exposed as standalone
// utilities.
package compliance

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fondsblick/riskengine/internal/config"
	"github.com/fondsblick/riskengine/internal/domain"
)

// Score penalties per violation category.
const (
	penaltyBaFin     = 15.0
	penaltyUCITS     = 10.0
	penaltyUCITSHard = 25.0
	penaltyISIN      = 5.0
	penaltyReporting = 10.0
)

// bafinAssetClasses is the closed BaFin classification set. Liquidität and
// Cash name the same class; both spellings are accepted.
var bafinAssetClasses = map[string]struct{}{
	"aktien":                  {},
	"anleihen":                {},
	"geldmarktinstrumente":    {},
	"alternative investments": {},
	"derivate":                {},
	"edelmetalle":             {},
	"rohstoffe":               {},
	"immobilien":              {},
	"liquidität":              {},
	"cash":                    {},
}

// Validator scores position sets against German financial standards. Safe
// for concurrent use; it holds configuration and a logger only.
type Validator struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewValidator creates a new compliance validator.
func NewValidator(cfg *config.Config, log zerolog.Logger) *Validator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Validator{
		cfg: cfg,
		log: log.With().Str("component", "compliance").Logger(),
	}
}

// ValidateGermanStandards evaluates positions and the reported allocation
// breakdown against the BaFin taxonomy, the UCITS derivative limit, ISIN
// presence and the reporting-total rule. The score starts at 100 and is
// penalized per violation category; IsCompliant is true iff no issue reaches
// Error severity.
//
// An unexpected internal panic yields a single Critical COMPLIANCE_ERROR
// issue and a zeroed result instead of propagating.
func (v *Validator) ValidateGermanStandards(positions []domain.Position, allocations []domain.Allocation) (result domain.ComplianceResult) {
	defer func() {
		if r := recover(); r != nil {
			v.log.Error().Interface("panic", r).Msg("Compliance validation failed internally")
			result = domain.ComplianceResult{
				Issues: []domain.ValidationIssue{{
					Severity:  domain.SeverityCritical,
					Code:      domain.CodeComplianceError,
					Message:   fmt.Sprintf("compliance validation failed internally: %v", r),
					MessageDE: "Die Compliance-Prüfung konnte nicht durchgeführt werden.",
				}},
			}
		}
	}()

	score := 100.0
	var issues []domain.ValidationIssue
	checks := domain.BaFinChecks{
		AssetClassification: true,
		UCITSCompliance:     true,
		ReportingStandards:  true,
	}

	if issue := v.checkAssetClassification(positions); issue != nil {
		checks.AssetClassification = false
		score -= penaltyBaFin
		issues = append(issues, *issue)
	}

	if issue := v.checkDerivativeExposure(positions); issue != nil {
		checks.UCITSCompliance = false
		if issue.Severity == domain.SeverityCritical {
			score -= penaltyUCITSHard
		} else {
			score -= penaltyUCITS
		}
		issues = append(issues, *issue)
	}

	if issue := v.checkISINPresence(positions); issue != nil {
		score -= penaltyISIN
		issues = append(issues, *issue)
	}

	if issue := v.checkReportingTotal(allocations); issue != nil {
		checks.ReportingStandards = false
		score -= penaltyReporting
		issues = append(issues, *issue)
	}

	result = domain.ComplianceResult{
		IsCompliant:     !domain.HasBlocking(issues),
		BaFin:           checks,
		Issues:          issues,
		ComplianceScore: math.Max(0, score),
	}

	v.log.Debug().
		Bool("compliant", result.IsCompliant).
		Float64("score", result.ComplianceScore).
		Int("issues", len(issues)).
		Msg("German standards validation complete")

	return result
}

// checkAssetClassification flags positions whose asset class is outside the
// BaFin taxonomy.
func (v *Validator) checkAssetClassification(positions []domain.Position) *domain.ValidationIssue {
	var invalid []string
	for _, p := range positions {
		class := strings.ToLower(strings.TrimSpace(p.AssetClass))
		if _, ok := bafinAssetClasses[class]; !ok {
			invalid = append(invalid, p.Name)
		}
	}
	if len(invalid) == 0 {
		return nil
	}
	return &domain.ValidationIssue{
		Severity:          domain.SeverityError,
		Code:              domain.CodeBaFin001,
		Message:           fmt.Sprintf("%d position(s) carry an asset class outside the BaFin classification", len(invalid)),
		MessageDE:         "Mindestens eine Position ist keiner BaFin-Anlageklasse zugeordnet.",
		AffectedPositions: invalid,
		SuggestedAction:   "Map each position to one of the BaFin asset classes",
	}
}

// checkDerivativeExposure enforces the UCITS derivative limit. Severity
// scales with magnitude: a Warning above the warn threshold, Critical once
// the exposure materially exceeds it.
func (v *Validator) checkDerivativeExposure(positions []domain.Position) *domain.ValidationIssue {
	total := 0.0
	derivatives := 0.0
	for _, p := range positions {
		total += p.Value
		if strings.EqualFold(strings.TrimSpace(p.AssetClass), "Derivate") {
			derivatives += p.Value
		}
	}
	if total <= 0 {
		return nil
	}

	exposurePct := derivatives / total * 100.0
	if exposurePct <= v.cfg.UCITSDerivativeWarnPct {
		return nil
	}

	severity := domain.SeverityWarning
	if exposurePct > v.cfg.UCITSDerivativeCriticalPct {
		severity = domain.SeverityCritical
	}
	return &domain.ValidationIssue{
		Severity: severity,
		Code:     domain.CodeUCITS001,
		Message: fmt.Sprintf("derivative exposure of %.1f%% exceeds the UCITS limit of %.0f%%",
			exposurePct, v.cfg.UCITSDerivativeWarnPct),
		MessageDE: fmt.Sprintf("Das Derivate-Exposure von %.1f%% überschreitet die UCITS-Grenze von %.0f%%.",
			exposurePct, v.cfg.UCITSDerivativeWarnPct),
		SuggestedAction: "Reduce derivative exposure below the UCITS limit",
	}
}

// checkISINPresence collects positions with a missing or malformed ISIN into
// one Warning listing the affected names.
func (v *Validator) checkISINPresence(positions []domain.Position) *domain.ValidationIssue {
	var affected []string
	for _, p := range positions {
		if len(p.ISIN) != 12 {
			affected = append(affected, p.Name)
		}
	}
	if len(affected) == 0 {
		return nil
	}
	return &domain.ValidationIssue{
		Severity:          domain.SeverityWarning,
		Code:              domain.CodeISIN001,
		Message:           fmt.Sprintf("%d position(s) have a missing or malformed ISIN", len(affected)),
		MessageDE:         "Mindestens einer Position fehlt eine gültige ISIN.",
		AffectedPositions: affected,
		SuggestedAction:   "Provide a 12-character ISO 6166 ISIN for each position",
	}
}

// checkReportingTotal enforces the German 100%-allocation reporting rule.
func (v *Validator) checkReportingTotal(allocations []domain.Allocation) *domain.ValidationIssue {
	if len(allocations) == 0 {
		return nil
	}
	total := 0.0
	for _, a := range allocations {
		total += a.Percentage
	}
	if math.Abs(total-100.0) <= v.cfg.ReportingTolerance {
		return nil
	}
	return &domain.ValidationIssue{
		Severity:        domain.SeverityError,
		Code:            domain.CodeReporting001,
		Message:         fmt.Sprintf("reported allocation percentages sum to %.2f%% instead of 100%%", total),
		MessageDE:       fmt.Sprintf("Die gemeldeten Allokationen summieren sich auf %.2f%% statt 100%%.", total),
		SuggestedAction: "Correct the allocation breakdown so it totals 100%",
	}
}
