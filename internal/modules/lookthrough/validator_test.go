package lookthrough

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fondsblick/riskengine/internal/config"
	"github.com/fondsblick/riskengine/internal/domain"
	"github.com/fondsblick/riskengine/pkg/logger"
)

func newValidator() *Validator {
	return NewValidator(config.Default(), logger.Nop())
}

func issueByCode(issues []domain.ValidationIssue, code string) *domain.ValidationIssue {
	for i := range issues {
		if issues[i].Code == code {
			return &issues[i]
		}
	}
	return nil
}

func TestValidate_CleanDecomposition(t *testing.T) {
	v := newValidator()

	original := []domain.Allocation{
		{Category: "Aktien", Value: 60000, Percentage: 60},
		{Category: "Anleihen", Value: 40000, Percentage: 40},
	}
	lookThrough := []domain.Allocation{
		{Category: "Aktien Large Cap", Value: 35000, Percentage: 35},
		{Category: "Aktien Small Cap", Value: 25000, Percentage: 25},
		{Category: "Anleihen", Value: 40000, Percentage: 40},
	}

	result := v.Validate(original, lookThrough, nil)

	assert.True(t, result.IsValid)
	assert.InDelta(t, 100.0, result.OverallScore, 1e-9)
	assert.Empty(t, result.Issues)
	assert.InDelta(t, 0.0, result.TotalValueDifference, 1e-9)
	assert.InDelta(t, 100.0, result.DecompositionAccuracy, 1e-9)
	assert.False(t, result.DoubleCounting.Detected)
	assert.True(t, result.CurrencyExposure.IsConsistent)
	assert.True(t, result.GeographicIntegrity.IsValid)
}

func TestValidate_DecompositionMismatch(t *testing.T) {
	v := newValidator()

	original := []domain.Allocation{
		{Category: "Aktien", Value: 100000, Percentage: 100},
	}
	lookThrough := []domain.Allocation{
		{Category: "Aktien", Value: 95000, Percentage: 100},
	}

	result := v.Validate(original, lookThrough, nil)

	assert.False(t, result.IsValid)
	assert.InDelta(t, 5000.0, result.TotalValueDifference, 1e-9)
	assert.InDelta(t, 95.0, result.DecompositionAccuracy, 1e-9)

	issue := issueByCode(result.Issues, domain.CodeFundDecomp001)
	require.NotNil(t, issue)
	// 5% off is far beyond the 0.1% critical breakpoint.
	assert.Equal(t, domain.SeverityCritical, issue.Severity)
	assert.NotEmpty(t, issue.MessageDE)
	assert.NotEmpty(t, result.Errors)
	assert.InDelta(t, 75.0, result.OverallScore, 1e-9)
}

func TestValidate_SmallMismatchIsError(t *testing.T) {
	v := newValidator()

	// 0.05% deviation: above the 0.01% tolerance, below the 0.1% critical
	// breakpoint.
	original := []domain.Allocation{{Category: "Aktien", Value: 100000, Percentage: 100}}
	lookThrough := []domain.Allocation{{Category: "Aktien", Value: 99950, Percentage: 100}}

	result := v.Validate(original, lookThrough, nil)

	issue := issueByCode(result.Issues, domain.CodeFundDecomp001)
	require.NotNil(t, issue)
	assert.Equal(t, domain.SeverityError, issue.Severity)
	assert.False(t, result.IsValid)
	assert.InDelta(t, 85.0, result.OverallScore, 1e-9)
}

func TestValidate_PercentageSumWarnings(t *testing.T) {
	v := newValidator()

	original := []domain.Allocation{
		{Category: "Aktien", Value: 60000, Percentage: 58}, // sums to 98
		{Category: "Anleihen", Value: 40000, Percentage: 40},
	}
	lookThrough := []domain.Allocation{
		{Category: "Aktien", Value: 60000, Percentage: 60},
		{Category: "Anleihen", Value: 40000, Percentage: 40},
	}

	result := v.Validate(original, lookThrough, nil)

	issue := issueByCode(result.Issues, domain.CodePercentSum001)
	require.NotNil(t, issue)
	assert.Equal(t, domain.SeverityWarning, issue.Severity)
	// Warnings alone never invalidate.
	assert.True(t, result.IsValid)
	assert.NotEmpty(t, result.Warnings)
	assert.Empty(t, result.Errors)
}

func TestValidate_RowConsistencyWarning(t *testing.T) {
	v := newValidator()

	original := []domain.Allocation{{Category: "Aktien", Value: 100000, Percentage: 100}}
	// Value implies 60%, stated 55%: the stated percentages still sum to
	// 100 so only the row consistency check fires for the first row.
	lookThrough := []domain.Allocation{
		{Category: "Aktien Europa", Value: 60000, Percentage: 55},
		{Category: "Aktien USA", Value: 40000, Percentage: 45},
	}

	result := v.Validate(original, lookThrough, nil)

	issues := []domain.ValidationIssue{}
	for _, issue := range result.Issues {
		if issue.Code == domain.CodeConsistency001 {
			issues = append(issues, issue)
		}
	}
	require.Len(t, issues, 2) // both rows deviate from their implied share
	assert.Equal(t, []string{"Aktien Europa"}, issues[0].AffectedPositions)
	assert.True(t, result.IsValid)
}

func TestValidate_DoubleCountedHoldings(t *testing.T) {
	v := newValidator()

	original := []domain.Allocation{{Category: "Aktien", Value: 15000, Percentage: 100}}
	lookThrough := []domain.Allocation{{Category: "Aktien", Value: 15000, Percentage: 100}}

	holdings := []domain.FundHolding{
		{Name: "Apple Inc", ISIN: "US0378331005", Value: 10000, Weight: 0.67, Currency: domain.CurrencyUSD, AssetClass: "Aktien"},
		{Name: "Apple Inc.", ISIN: "US0378331005", Value: 5000, Weight: 0.33, Currency: domain.CurrencyUSD, AssetClass: "Aktien"},
	}

	result := v.Validate(original, lookThrough, holdings)

	assert.True(t, result.DoubleCounting.Detected)
	assert.InDelta(t, 15000.0, result.DoubleCounting.OverlapValue, 1e-9)
	issue := issueByCode(result.Issues, domain.CodeDoubleCount001)
	require.NotNil(t, issue)
	assert.Equal(t, domain.SeverityWarning, issue.Severity)
}

func TestValidate_ScoreNeverNegative(t *testing.T) {
	v := newValidator()

	// Pile up enough findings that raw penalties would drop below zero.
	original := []domain.Allocation{{Category: "Aktien", Value: 100000, Percentage: 50}}
	var lookThrough []domain.Allocation
	for i := 0; i < 40; i++ {
		lookThrough = append(lookThrough, domain.Allocation{Category: "Aktien", Value: 100, Percentage: 90})
	}

	result := v.Validate(original, lookThrough, nil)
	assert.GreaterOrEqual(t, result.OverallScore, 0.0)
	assert.False(t, result.IsValid)
}
