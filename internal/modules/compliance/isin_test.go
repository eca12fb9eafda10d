package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateISINFormat(t *testing.T) {
	tests := []struct {
		name string
		isin string
		want bool
	}{
		{"Apple", "US0378331005", true},
		{"SAP", "DE0007164600", true},
		{"iShares MSCI World", "IE00B4L5Y983", true},
		{"empty", "", false},
		{"too short", "US03783310", false},
		{"too long", "US03783310055", false},
		{"lowercase country code", "us0378331005", false},
		{"digit in country code", "U50378331005", false},
		{"letter check digit", "US037833100A", false},
		{"symbol in body", "US03783-1005", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateISINFormat(tt.isin))
		})
	}
}

func TestValidateISINChecksum(t *testing.T) {
	tests := []struct {
		name string
		isin string
		want bool
	}{
		{"Apple", "US0378331005", true},
		{"SAP", "DE0007164600", true},
		{"iShares MSCI World", "IE00B4L5Y983", true},
		{"Apple with wrong check digit", "US0378331006", false},
		{"SAP with wrong check digit", "DE0007164601", false},
		{"transposed body digits", "US0378331050", false},
		{"bad format", "DE00071646", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateISINChecksum(tt.isin))
		})
	}
}
