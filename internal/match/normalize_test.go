package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"us-core-patient", "uscorepatient"},
		{"USCorePatient", "uscorepatient"},
		{"us_core.patient", "uscorepatient"},
		{"http://example.org/Patient", "httpexampleorgpatient"},
		{"valueQuantity", "valuequantity"},
		{"", ""},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdent(tt.input))
		})
	}
}

func TestTokenizeCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"valueQuantity", []string{"value", "Quantity"}},
		{"onsetDateTime", []string{"onset", "Date", "Time"}},
		{"valueBase64Binary", []string{"value", "Base64", "Binary"}},
		{"XMLParser", []string{"XML", "Parser"}},
		{"order_id", []string{"order", "id"}},
		{"ALLCAPS", []string{"ALLCAPS"}},
		{"lowercase", []string{"lowercase"}},
		{"", nil},
		{"a", []string{"a"}},
		{"AbC", []string{"Ab", "C"}},
		{"ABcD", []string{"A", "Bc", "D"}},
		{"--x--", []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, tokenizeCamelCase(tt.input))
		})
	}
}

func TestTokenizeIdent(t *testing.T) {
	assert.Equal(t, []string{"effective", "date", "time"}, TokenizeIdent("effectiveDateTime"))
	assert.Equal(t, []string{"us", "core"}, TokenizeIdent("US-Core"))
}

func TestStartsToken(t *testing.T) {
	assert.True(t, startsToken("valueQuantity", 0))
	assert.True(t, startsToken("valueQuantity", 5))
	assert.False(t, startsToken("valueQuantity", 3))
	assert.False(t, startsToken("valuequantity", 5))
}
