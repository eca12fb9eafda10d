package lookthrough

import (
	"fmt"
	"math"

	"github.com/fondsblick/riskengine/internal/domain"
)

// ValidateCurrencyExposure checks a fund's currency breakdown for internal
// consistency. Exposures must sum to 100% within tolerance (Error
// CURRENCY_001 otherwise) and no single exposure may be negative (Warning
// CURRENCY_002). When the fund claims to be hedged, the hedged share of the
// foreign exposure must reach the configured minimum ratio or a CURRENCY_003
// warning is raised.
//
// The returned issues are also converted into a structured result; an
// unexpected internal panic yields a single Critical CURRENCY_ERROR issue.
func (v *Validator) ValidateCurrencyExposure(fundCurrency domain.Currency, exposures []domain.CurrencyExposure, claimsHedged bool) (result domain.CurrencyExposureResult, issues []domain.ValidationIssue) {
	defer func() {
		if r := recover(); r != nil {
			v.log.Error().Interface("panic", r).Msg("Currency exposure validation failed internally")
			issues = []domain.ValidationIssue{{
				Severity:  domain.SeverityCritical,
				Code:      domain.CodeCurrencyError,
				Message:   fmt.Sprintf("currency exposure validation failed internally: %v", r),
				MessageDE: "Die Währungsvalidierung ist intern fehlgeschlagen.",
			}}
			result = domain.CurrencyExposureResult{}
		}
	}()

	total := 0.0
	exposureMap := make(map[domain.Currency]float64, len(exposures))
	for _, e := range exposures {
		total += e.Percentage
		exposureMap[e.Currency] += e.Percentage

		if e.Percentage < 0 {
			issues = append(issues, domain.ValidationIssue{
				Severity:          domain.SeverityWarning,
				Code:              domain.CodeCurrency002,
				Message:           fmt.Sprintf("negative exposure %.2f%% for currency %s", e.Percentage, e.Currency),
				MessageDE:         fmt.Sprintf("Negative Währungsexposition von %.2f%% in %s.", e.Percentage, e.Currency),
				AffectedPositions: []string{string(e.Currency)},
			})
		}
	}

	if math.Abs(total-100.0) > v.cfg.PercentSumTolerance {
		issues = append(issues, domain.ValidationIssue{
			Severity:  domain.SeverityError,
			Code:      domain.CodeCurrency001,
			Message:   fmt.Sprintf("currency exposures sum to %.2f%% instead of 100%%", total),
			MessageDE: fmt.Sprintf("Die Währungsexpositionen summieren sich auf %.2f%% statt 100%%.", total),
		})
	}

	hedgingStatus := "unhedged"
	if claimsHedged {
		hedgingStatus = "hedged"

		foreign, hedgedForeign := 0.0, 0.0
		for _, e := range exposures {
			if e.Currency == fundCurrency {
				continue
			}
			foreign += e.Percentage
			hedgedForeign += e.Hedged
		}
		if foreign > 0 {
			ratio := hedgedForeign / foreign
			if ratio < v.cfg.HedgeRatioMin {
				issues = append(issues, domain.ValidationIssue{
					Severity: domain.SeverityWarning,
					Code:     domain.CodeCurrency003,
					Message: fmt.Sprintf("fund claims to be hedged but only %.0f%% of foreign exposure is hedged",
						ratio*100),
					MessageDE:       "Der Fonds gilt als währungsgesichert, die Absicherungsquote ist jedoch zu niedrig.",
					SuggestedAction: "Verify the hedging share reported in the fund factsheet",
				})
			}
		}
	}

	return domain.CurrencyExposureResult{
		IsConsistent:  !domain.HasBlocking(issues),
		Exposures:     exposureMap,
		HedgingStatus: hedgingStatus,
	}, issues
}
