package lookthrough

import (
	"strings"

	"github.com/fondsblick/riskengine/internal/domain"
)

// instrumentGroup accumulates all appearances of one instrument key across
// direct positions and underlying holdings.
type instrumentGroup struct {
	memberNames  []string
	holdingValue float64
	members      int
}

// DetectDoubleCounting finds instruments that appear both as direct portfolio
// positions and inside one or more fund decompositions (or in several funds
// at once). Instruments are keyed by ISIN when present, otherwise by their
// lower-cased trimmed name.
//
// OverlapValue accumulates the holding value (not the portfolio value) of
// every overlapping key; AffectedAssets is the de-duplicated union of the
// display names involved.
func (v *Validator) DetectDoubleCounting(positions []domain.Position, holdings []domain.FundHolding) domain.DoubleCountingResult {
	groups := make(map[string]*instrumentGroup)
	var order []string

	fold := func(key, name string, holdingValue float64) {
		group, ok := groups[key]
		if !ok {
			group = &instrumentGroup{}
			groups[key] = group
			order = append(order, key)
		}
		group.members++
		group.memberNames = append(group.memberNames, name)
		group.holdingValue += holdingValue
	}

	for _, p := range positions {
		fold(instrumentKey(p.ISIN, p.Name), p.Name, 0)
	}
	for _, h := range holdings {
		fold(instrumentKey(h.ISIN, h.Name), h.Name, h.Value)
	}

	result := domain.DoubleCountingResult{}
	seen := make(map[string]bool)
	for _, key := range order {
		group := groups[key]
		if group.members <= 1 {
			continue
		}
		result.Detected = true
		result.OverlapValue += group.holdingValue
		for _, name := range group.memberNames {
			if !seen[name] {
				seen[name] = true
				result.AffectedAssets = append(result.AffectedAssets, name)
			}
		}
	}

	if result.Detected {
		v.log.Debug().
			Strs("affected", result.AffectedAssets).
			Float64("overlap_value", result.OverlapValue).
			Msg("Double counting detected")
	}
	return result
}

// instrumentKey prefers the ISIN and falls back to the normalized name.
func instrumentKey(isin, name string) string {
	if isin != "" {
		return isin
	}
	return strings.ToLower(strings.TrimSpace(name))
}
