package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverity_AtLeast(t *testing.T) {
	tests := []struct {
		name  string
		s     Severity
		other Severity
		want  bool
	}{
		{"warning below error", SeverityWarning, SeverityError, false},
		{"error at least error", SeverityError, SeverityError, true},
		{"critical at least error", SeverityCritical, SeverityError, true},
		{"critical at least warning", SeverityCritical, SeverityWarning, true},
		{"error below critical", SeverityError, SeverityCritical, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.AtLeast(tt.other))
		})
	}
}

func TestHasBlocking(t *testing.T) {
	warnings := []ValidationIssue{
		{Severity: SeverityWarning, Code: CodePercentSum001, Message: "sum off"},
		{Severity: SeverityWarning, Code: CodeISIN001, Message: "isin missing"},
	}
	assert.False(t, HasBlocking(warnings))
	assert.False(t, HasBlocking(nil))

	withError := append(warnings, ValidationIssue{Severity: SeverityError, Code: CodeReporting001})
	assert.True(t, HasBlocking(withError))

	withCritical := []ValidationIssue{{Severity: SeverityCritical, Code: CodeValidationError}}
	assert.True(t, HasBlocking(withCritical))
}

func TestFlattenMessages(t *testing.T) {
	issues := []ValidationIssue{
		{Severity: SeverityWarning, Message: "w1"},
		{Severity: SeverityError, Message: "e1"},
		{Severity: SeverityCritical, Message: "c1"},
	}

	errs, warns := FlattenMessages(issues)
	assert.Equal(t, []string{"e1", "c1"}, errs)
	assert.Equal(t, []string{"w1"}, warns)
}

func TestIncompleteDataError(t *testing.T) {
	err := &IncompleteDataError{Position: "Apple Inc", Field: "volatility"}
	assert.Contains(t, err.Error(), "Apple Inc")
	assert.Contains(t, err.Error(), "volatility")
	assert.True(t, errors.Is(err, ErrIncompleteData))

	var target *IncompleteDataError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, "volatility", target.Field)
}
