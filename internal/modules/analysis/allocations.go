package analysis

import (
	"sort"

	"github.com/fondsblick/riskengine/internal/domain"
)

// AllocationsFromHoldings aggregates fund holdings into an asset-class
// allocation breakdown, sorted by descending value. Percentages are relative
// to the total holding value; an empty or zero-value holding set yields nil.
func AllocationsFromHoldings(holdings []domain.FundHolding) []domain.Allocation {
	return aggregate(holdings, func(h domain.FundHolding) string { return h.AssetClass })
}

// GeographicAllocations aggregates fund holdings by geography.
func GeographicAllocations(holdings []domain.FundHolding) []domain.Allocation {
	return aggregate(holdings, func(h domain.FundHolding) string { return h.Geography })
}

// CurrencyExposures aggregates fund holdings into per-currency exposure
// percentages suitable for currency-consistency validation. Hedging
// information is not derivable from holdings and is left zero.
func CurrencyExposures(holdings []domain.FundHolding) []domain.CurrencyExposure {
	total := 0.0
	for _, h := range holdings {
		total += h.Value
	}
	if total <= 0 {
		return nil
	}

	byCurrency := map[domain.Currency]float64{}
	for _, h := range holdings {
		byCurrency[h.Currency] += h.Value
	}

	exposures := make([]domain.CurrencyExposure, 0, len(byCurrency))
	for currency, value := range byCurrency {
		exposures = append(exposures, domain.CurrencyExposure{
			Currency:   currency,
			Percentage: value / total * 100.0,
		})
	}
	sort.Slice(exposures, func(i, j int) bool {
		return exposures[i].Percentage > exposures[j].Percentage
	})
	return exposures
}

func aggregate(holdings []domain.FundHolding, key func(domain.FundHolding) string) []domain.Allocation {
	total := 0.0
	for _, h := range holdings {
		total += h.Value
	}
	if total <= 0 {
		return nil
	}

	byKey := map[string]float64{}
	for _, h := range holdings {
		byKey[key(h)] += h.Value
	}

	allocations := make([]domain.Allocation, 0, len(byKey))
	for category, value := range byKey {
		allocations = append(allocations, domain.Allocation{
			Category:   category,
			Value:      value,
			Percentage: value / total * 100.0,
		})
	}
	sort.Slice(allocations, func(i, j int) bool {
		return allocations[i].Value > allocations[j].Value
	})
	return allocations
}
