package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1234.56", "1234.56"},
		{"₹1,23,456.50", "123456.5"},
		{"Rs. 2,500", "2500"},
		{"$1,234.56", "1234.56"},
		{"CHF 1'234.56", "1234.56"},
		{"€1.234,56", "1234.56"},
		{"1234,56", "1234.56"},
		{"-45.10", "-45.1"},
		{"  900 ", "900"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "got %s", got)
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, bad := range []string{"", "  ", "₹", "twelve", "1.2.3"} {
		_, err := ParseAmount(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatAmount(t *testing.T) {
	inr := MustLookup("INR")
	usd := MustLookup("usd")
	eur := MustLookup("EUR")
	chf := MustLookup("CHF")

	tests := []struct {
		name     string
		amount   string
		currency CurrencyConfig
		places   int32
		expected string
	}{
		{"inr lakh grouping", "1234567.891", inr, 2, "₹12,34,567.89"},
		{"inr panel", "2250", inr, 0, "₹2,250"},
		{"inr small", "500", inr, 2, "₹500.00"},
		{"usd", "1234567.5", usd, 2, "$1,234,567.50"},
		{"eur", "1234.5", eur, 2, "€1.234,50"},
		{"chf", "98765.4", chf, 2, "CHF 98'765.40"},
		{"negative", "-1500", inr, 0, "-₹1,500"},
		{"zero", "0", usd, 2, "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAmount(decimal.RequireFromString(tt.amount), tt.currency, tt.places)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLookup(t *testing.T) {
	c, ok := Lookup(" gbp ")
	require.True(t, ok)
	assert.Equal(t, "£", c.Symbol)

	_, ok = Lookup("XYZ")
	assert.False(t, ok)
	assert.Equal(t, "INR", MustLookup("XYZ").Code)

	for _, code := range Codes() {
		_, ok := Lookup(code)
		assert.True(t, ok, code)
	}
}
