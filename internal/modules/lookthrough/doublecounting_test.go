package lookthrough

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fondsblick/riskengine/internal/domain"
)

func TestDetectDoubleCounting_PositionAndHolding(t *testing.T) {
	v := newValidator()

	positions := []domain.Position{
		{Name: "Apple Inc", ISIN: "US0378331005", Value: 10000},
	}
	holdings := []domain.FundHolding{
		{Name: "Apple Inc.", ISIN: "US0378331005", Value: 5000},
	}

	result := v.DetectDoubleCounting(positions, holdings)

	assert.True(t, result.Detected)
	// Only the holding value counts towards the overlap, not the
	// portfolio-level position value.
	assert.InDelta(t, 5000.0, result.OverlapValue, 1e-9)
	assert.Contains(t, result.AffectedAssets, "Apple Inc")
	assert.Contains(t, result.AffectedAssets, "Apple Inc.")
}

func TestDetectDoubleCounting_UniqueHoldings(t *testing.T) {
	v := newValidator()

	holdings := []domain.FundHolding{
		{Name: "Apple Inc", ISIN: "US0378331005", Value: 5000},
		{Name: "SAP SE", ISIN: "DE0007164600", Value: 4000},
		{Name: "Nestlé SA", ISIN: "CH0038863350", Value: 3000},
	}

	result := v.DetectDoubleCounting(nil, holdings)

	assert.False(t, result.Detected)
	assert.Zero(t, result.OverlapValue)
	assert.Empty(t, result.AffectedAssets)
}

func TestDetectDoubleCounting_NameFallback(t *testing.T) {
	v := newValidator()

	// No ISINs: matching is by lower-cased trimmed name.
	positions := []domain.Position{{Name: "  Siemens AG ", Value: 8000}}
	holdings := []domain.FundHolding{{Name: "siemens ag", Value: 2000}}

	result := v.DetectDoubleCounting(positions, holdings)

	assert.True(t, result.Detected)
	assert.InDelta(t, 2000.0, result.OverlapValue, 1e-9)
}

func TestDetectDoubleCounting_AcrossFunds(t *testing.T) {
	v := newValidator()

	// The same instrument inside two different fund decompositions.
	holdings := []domain.FundHolding{
		{Name: "Microsoft Corp", ISIN: "US5949181045", Value: 6000},
		{Name: "Microsoft Corp", ISIN: "US5949181045", Value: 4000},
		{Name: "ASML Holding", ISIN: "NL0010273215", Value: 3000},
	}

	result := v.DetectDoubleCounting(nil, holdings)

	assert.True(t, result.Detected)
	assert.InDelta(t, 10000.0, result.OverlapValue, 1e-9)
	assert.Equal(t, []string{"Microsoft Corp"}, result.AffectedAssets)
}

func TestDetectDoubleCounting_Empty(t *testing.T) {
	v := newValidator()

	result := v.DetectDoubleCounting(nil, nil)
	assert.False(t, result.Detected)
}
