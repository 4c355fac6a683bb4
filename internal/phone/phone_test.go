package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUnified(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		valid bool
	}{
		{"nine digits", "920031103", true},
		{"nine digits with separators", "920 031-103", true},
		{"nine digits with parentheses", "(920)031103", true},
		{"empty", "", false},
		{"eight digits", "92003110", false},
		{"ten digits", "9200311030", false},
		{"letters", "92003110a", false},
		{"leading plus", "+920031103", false},
		{"country prefix", "966920031103", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidateUnified(tc.in))
		})
	}
}

func TestValidateMarketing(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		valid bool
	}{
		{"plain", "0512345678", true},
		{"with separators", "051-234 5678", true},
		{"with parentheses", "(051)2345678", true},
		{"empty", "", false},
		{"wrong prefix", "0612345678", false},
		{"too short", "051234567", false},
		{"too long", "05123456789", false},
		{"international prefix", "+966512345678", false},
		{"letters", "05123456ab", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidateMarketing(tc.in))
		})
	}
}

func TestFormatUnified(t *testing.T) {
	assert.Equal(t, "920031103", FormatUnified("920 031-103"))
	assert.Equal(t, "", FormatUnified(""))

	// formatting is idempotent on valid input
	once := FormatUnified("920 031 103")
	assert.Equal(t, once, FormatUnified(once))
}

func TestFormatMarketing(t *testing.T) {
	assert.Equal(t, "0512345678", FormatMarketing("051-234-5678"))
	assert.Equal(t, "", FormatMarketing(""))

	// lenient fallback: invalid shapes are returned normalized, not rejected
	assert.Equal(t, "12345", FormatMarketing("1 23-45"))

	once := FormatMarketing("(051) 234 5678")
	assert.Equal(t, once, FormatMarketing(once))
}
