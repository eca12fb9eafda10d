package lookthrough

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fondsblick/riskengine/internal/domain"
)

func TestValidateFundDecomposition_Clean(t *testing.T) {
	v := newValidator()

	holdings := []domain.FundHolding{
		{Name: "Apple Inc", Value: 6000, Weight: 0.6},
		{Name: "SAP SE", Value: 4000, Weight: 0.4},
	}

	issues := v.ValidateFundDecomposition(10000, holdings)
	assert.Empty(t, issues)
}

func TestValidateFundDecomposition_ValueMismatch(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name         string
		fundValue    float64
		holdingValue float64
		wantSeverity domain.Severity
	}{
		{
			// 0.05% off: Error tier.
			name:         "small deviation",
			fundValue:    100000,
			holdingValue: 99950,
			wantSeverity: domain.SeverityError,
		},
		{
			// 5% off: Critical tier.
			name:         "gross deviation",
			fundValue:    100000,
			holdingValue: 95000,
			wantSeverity: domain.SeverityCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			holdings := []domain.FundHolding{{Name: "Holding", Value: tt.holdingValue, Weight: 1.0}}
			issues := v.ValidateFundDecomposition(tt.fundValue, holdings)

			require.Len(t, issues, 1)
			assert.Equal(t, domain.CodeFundDecomp002, issues[0].Code)
			assert.Equal(t, tt.wantSeverity, issues[0].Severity)
		})
	}
}

func TestValidateFundDecomposition_NegativeHolding(t *testing.T) {
	v := newValidator()

	holdings := []domain.FundHolding{
		{Name: "Long Position", Value: 10500, Weight: 1.05},
		{Name: "Short Position", Value: -500, Weight: -0.05},
	}

	issues := v.ValidateFundDecomposition(10000, holdings)

	issue := issueByCode(issues, domain.CodeFundDecomp003)
	require.NotNil(t, issue)
	assert.Equal(t, domain.SeverityError, issue.Severity)
	assert.Equal(t, []string{"Short Position"}, issue.AffectedPositions)
}

func TestValidateFundDecomposition_WeightSumOff(t *testing.T) {
	v := newValidator()

	holdings := []domain.FundHolding{
		{Name: "A", Value: 5000, Weight: 0.5},
		{Name: "B", Value: 5000, Weight: 0.48},
	}

	issues := v.ValidateFundDecomposition(10000, holdings)

	issue := issueByCode(issues, domain.CodeFundDecomp004)
	require.NotNil(t, issue)
	assert.Equal(t, domain.SeverityWarning, issue.Severity)
}

func TestValidateFundDecomposition_NoHoldings(t *testing.T) {
	v := newValidator()

	// A fund with a stated value but no holdings is a gross mismatch; the
	// weight check stays silent rather than flagging an empty list.
	issues := v.ValidateFundDecomposition(10000, nil)

	require.Len(t, issues, 1)
	assert.Equal(t, domain.CodeFundDecomp002, issues[0].Code)
	assert.Equal(t, domain.SeverityCritical, issues[0].Severity)
}
