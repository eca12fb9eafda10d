package lookthrough

import (
	"math"
	"strings"

	"github.com/fondsblick/riskengine/internal/domain"
)

// requiredRegions is the fixed region set a German retail portfolio report
// must cover. Category names are matched by case-insensitive substring
// against any of the markers.
var requiredRegions = []struct {
	Name    string
	Markers []string
}{
	{"Deutschland", []string{"deutschland", "germany"}},
	{"Europa", []string{"europa", "europe"}},
	{"USA/Nordamerika", []string{"usa", "nordamerika", "north america"}},
	{"Emerging Markets", []string{"emerging"}},
}

// ValidateGeographicIntegrity checks a geographic breakdown for complete
// region coverage and a correct total. IsValid requires the percentages to
// sum to 100 within tolerance AND every required region to be present.
func (v *Validator) ValidateGeographicIntegrity(allocations []domain.Allocation) domain.GeographicIntegrityResult {
	result := domain.GeographicIntegrityResult{
		TotalAllocation: sumPercentages(allocations),
	}

	for _, region := range requiredRegions {
		found := false
		for _, a := range allocations {
			if matchesRegion(a.Category, region.Markers) {
				found = true
				break
			}
		}
		if !found {
			result.MissingAllocations = append(result.MissingAllocations, region.Name)
		}
	}

	result.IsValid = math.Abs(result.TotalAllocation-100.0) <= v.cfg.PercentSumTolerance &&
		len(result.MissingAllocations) == 0
	return result
}

// filterRegionRows keeps the allocation rows naming a recognized region, so
// mixed breakdowns (asset classes and regions in one list) can be validated
// geographically without false alarms from non-regional categories.
func filterRegionRows(allocations []domain.Allocation) []domain.Allocation {
	var rows []domain.Allocation
	for _, a := range allocations {
		for _, region := range requiredRegions {
			if matchesRegion(a.Category, region.Markers) {
				rows = append(rows, a)
				break
			}
		}
	}
	return rows
}

func matchesRegion(category string, markers []string) bool {
	lower := strings.ToLower(category)
	for _, marker := range markers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
