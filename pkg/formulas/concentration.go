package formulas

// HerfindahlIndex calculates the Herfindahl-Hirschman concentration index
// from percentage allocations (0-100 scale), scaled to the conventional
// 0-10000 range:
//
//	HHI = sum((pct/100)^2) * 10000
//
// A single-category portfolio scores 10000; an equally split n-category
// portfolio scores 10000/n.
func HerfindahlIndex(percentages []float64) float64 {
	hhi := 0.0
	for _, pct := range percentages {
		share := pct / 100.0
		hhi += share * share
	}
	return hhi * 10000.0
}

// EffectiveN is the effective number of categories implied by the
// concentration of percentage allocations: 1 / sum((pct/100)^2).
// Returns 0 for an empty or fully zero allocation.
func EffectiveN(percentages []float64) float64 {
	sumSq := 0.0
	for _, pct := range percentages {
		share := pct / 100.0
		sumSq += share * share
	}
	if sumSq <= 0 {
		return 0
	}
	return 1.0 / sumSq
}

// DiversificationScore maps concentration to a 0-100 score:
// min(effectiveN/categoryCount, 1) * 100. A perfectly even allocation
// scores 100.
func DiversificationScore(percentages []float64) float64 {
	n := len(percentages)
	if n == 0 {
		return 0
	}
	ratio := EffectiveN(percentages) / float64(n)
	if ratio > 1 {
		ratio = 1
	}
	return ratio * 100.0
}
