// Package impact quantifies the effect of a proposed reallocation: value and
// percentage deltas per category, Herfindahl-Hirschman concentration before
// and after, a diversification score, and a compliance check of the changed
// portfolio against concentration and diversification thresholds.
package impact

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fondsblick/riskengine/internal/config"
	"github.com/fondsblick/riskengine/internal/domain"
	"github.com/fondsblick/riskengine/pkg/formulas"
)

// Analyzer computes change-impact measures and compliance checks. Safe for
// concurrent use; it holds configuration and a logger only.
type Analyzer struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewAnalyzer creates a new change-impact analyzer.
func NewAnalyzer(cfg *config.Config, log zerolog.Logger) *Analyzer {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Analyzer{
		cfg: cfg,
		log: log.With().Str("component", "change_impact").Logger(),
	}
}

// CalculatePortfolioImpact compares an original allocation breakdown against
// a proposed one. Significant changes are reported only for categories
// present in both breakdowns whose share moved by more than the configured
// threshold. The percentage change is 0 when originalTotal is 0.
func (a *Analyzer) CalculatePortfolioImpact(original, proposed []domain.Allocation, originalTotal, newTotal float64) domain.PortfolioImpactResult {
	change := newTotal - originalTotal
	changePct := 0.0
	if originalTotal != 0 {
		changePct = change / originalTotal * 100.0
	}

	originalPcts := make(map[string]float64, len(original))
	for _, alloc := range original {
		originalPcts[alloc.Category] = alloc.Percentage
	}

	var significant []domain.SignificantChange
	for _, alloc := range proposed {
		before, ok := originalPcts[alloc.Category]
		if !ok {
			continue
		}
		delta := alloc.Percentage - before
		if delta > a.cfg.SignificantChangePts || delta < -a.cfg.SignificantChangePts {
			significant = append(significant, domain.SignificantChange{
				Category:     alloc.Category,
				OriginalPct:  before,
				NewPct:       alloc.Percentage,
				ChangePoints: delta,
			})
		}
	}

	divBefore := formulas.DiversificationScore(percentages(original))
	divAfter := formulas.DiversificationScore(percentages(proposed))

	result := domain.PortfolioImpactResult{
		TotalValueChange:           change,
		TotalValueChangePct:        changePct,
		SignificantChanges:         significant,
		ConcentrationBefore:        formulas.HerfindahlIndex(percentages(original)),
		ConcentrationAfter:         formulas.HerfindahlIndex(percentages(proposed)),
		DiversificationBefore:      divBefore,
		DiversificationAfter:       divAfter,
		DiversificationImprovement: divAfter - divBefore,
	}

	a.log.Debug().
		Float64("value_change", change).
		Int("significant_changes", len(significant)).
		Float64("diversification_improvement", result.DiversificationImprovement).
		Msg("Portfolio impact calculated")

	return result
}

// ValidateChangeCompliance applies the proposed changes to the current
// positions and checks the resulting portfolio against concentration and
// diversification thresholds. A change's value is the position's new
// absolute value; changes are merged by case-insensitive name and positions
// whose resulting value is not positive are dropped.
func (a *Analyzer) ValidateChangeCompliance(positions []domain.Position, changes []domain.PositionChange, newTotalValue float64) domain.ChangeComplianceResult {
	merged := applyChanges(positions, changes)

	result := domain.ChangeComplianceResult{IsCompliant: true}

	if newTotalValue > 0 {
		for _, p := range merged {
			concentration := p.Value / newTotalValue * 100.0
			switch {
			case concentration > a.cfg.ConcentrationLimitPct:
				result.Violations = append(result.Violations,
					fmt.Sprintf("%s would hold %.1f%% of the portfolio, above the %.0f%% limit",
						p.Name, concentration, a.cfg.ConcentrationLimitPct))
			case concentration > a.cfg.ConcentrationWarnPct:
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%s would hold %.1f%% of the portfolio, approaching the %.0f%% limit",
						p.Name, concentration, a.cfg.ConcentrationLimitPct))
			}
		}

		equity := 0.0
		alternatives := 0.0
		for _, p := range merged {
			switch {
			case strings.EqualFold(p.AssetClass, "Aktien"):
				equity += p.Value
			case strings.EqualFold(p.AssetClass, "Alternative Investments"):
				alternatives += p.Value
			}
		}
		if pct := equity / newTotalValue * 100.0; pct > a.cfg.EquityCapPct {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("equity share of %.1f%% exceeds %.0f%%", pct, a.cfg.EquityCapPct))
		}
		if pct := alternatives / newTotalValue * 100.0; pct > a.cfg.AlternativesCapPct {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("alternative investments share of %.1f%% exceeds %.0f%%", pct, a.cfg.AlternativesCapPct))
		}
	}

	classes := map[string]struct{}{}
	for _, p := range merged {
		if class := strings.TrimSpace(p.AssetClass); class != "" {
			classes[strings.ToLower(class)] = struct{}{}
		}
	}
	if len(classes) < a.cfg.MinAssetClasses || len(merged) < a.cfg.MinPositions {
		result.Recommendations = append(result.Recommendations,
			fmt.Sprintf("consider diversifying: the changed portfolio has %d asset class(es) across %d position(s)",
				len(classes), len(merged)))
	}

	result.IsCompliant = len(result.Violations) == 0

	a.log.Debug().
		Bool("compliant", result.IsCompliant).
		Int("violations", len(result.Violations)).
		Int("warnings", len(result.Warnings)).
		Msg("Change compliance validated")

	return result
}

// applyChanges merges changes into positions by case-insensitive name and
// drops positions whose resulting value is not positive. Output order is
// deterministic: surviving positions sorted by name.
func applyChanges(positions []domain.Position, changes []domain.PositionChange) []domain.Position {
	working := make(map[string]domain.Position, len(positions))
	for _, p := range positions {
		working[strings.ToLower(strings.TrimSpace(p.Name))] = p
	}

	for _, c := range changes {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		p, ok := working[key]
		if !ok {
			p = domain.Position{Name: c.Name, AssetClass: c.AssetClass}
		}
		if c.AssetClass != "" {
			p.AssetClass = c.AssetClass
		}
		p.Value = c.Value
		working[key] = p
	}

	merged := make([]domain.Position, 0, len(working))
	for _, p := range working {
		if p.Value > 0 {
			merged = append(merged, p)
		}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Name < merged[j].Name })
	return merged
}

// percentages extracts the percentage column of an allocation breakdown.
func percentages(allocations []domain.Allocation) []float64 {
	out := make([]float64, len(allocations))
	for i, alloc := range allocations {
		out[i] = alloc.Percentage
	}
	return out
}
