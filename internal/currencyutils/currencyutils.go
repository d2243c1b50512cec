// Package currencyutils parses and formats money amounts for display.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyConfig describes how amounts in one currency are displayed.
type CurrencyConfig struct {
	Code   string
	Symbol string
	Locale string
}

// DefaultCurrencyCode is used when configuration names no currency.
const DefaultCurrencyCode = "INR"

var currencies = map[string]CurrencyConfig{
	"INR": {Code: "INR", Symbol: "₹", Locale: "en-IN"},
	"USD": {Code: "USD", Symbol: "$", Locale: "en-US"},
	"EUR": {Code: "EUR", Symbol: "€", Locale: "de-DE"},
	"GBP": {Code: "GBP", Symbol: "£", Locale: "en-GB"},
	"CHF": {Code: "CHF", Symbol: "CHF ", Locale: "de-CH"},
}

// Lookup returns the display settings for an ISO currency code.
func Lookup(code string) (CurrencyConfig, bool) {
	c, ok := currencies[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// MustLookup returns the settings for code, or the INR settings if the code is unknown.
func MustLookup(code string) CurrencyConfig {
	if c, ok := Lookup(code); ok {
		return c
	}
	return currencies[DefaultCurrencyCode]
}

// Codes lists the supported currency codes.
func Codes() []string {
	return []string{"CHF", "EUR", "GBP", "INR", "USD"}
}

var currencyNoise = regexp.MustCompile(`[€$£¥₹₣₤\s]|CHF|INR|EUR|USD|GBP|Rs\.?`)

// ParseAmount parses a user-supplied amount such as "₹1,23,456.50",
// "CHF 1'234.56" or "1.234,56".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount strips currency markers and grouping separators so that
// decimal.NewFromString can parse the result.
func StandardizeAmount(amountStr string) string {
	s := currencyNoise.ReplaceAllString(amountStr, "")
	s = strings.ReplaceAll(s, "'", "")

	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		if strings.LastIndex(s, ".") < strings.LastIndex(s, ",") {
			// 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// 1,234.56 and 1,23,456.50
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Contains(s, ","):
		parts := strings.Split(s, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	return s
}

// FormatAmount renders amount with the currency symbol, the locale's digit
// grouping and the given number of decimal places.
func FormatAmount(amount decimal.Decimal, currency CurrencyConfig, places int32) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	fixed := amount.StringFixed(places)
	intPart, fracPart := fixed, ""
	if dot := strings.IndexByte(fixed, '.'); dot >= 0 {
		intPart, fracPart = fixed[:dot], fixed[dot:]
	}

	thousands, decimalSep := separators(currency.Locale)
	if fracPart != "" && decimalSep != "." {
		fracPart = decimalSep + fracPart[1:]
	}
	grouped := group(intPart, thousands, currency.Locale == "en-IN")

	return sign + currency.Symbol + grouped + fracPart
}

func separators(locale string) (thousands, decimalSep string) {
	switch locale {
	case "de-DE":
		return ".", ","
	case "de-CH":
		return "'", "."
	default:
		return ",", "."
	}
}

// group inserts sep between digit groups. Indian grouping keeps the last three
// digits together and groups the rest in pairs (12,34,567).
func group(digits, sep string, indian bool) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	size := 3
	if indian {
		size = 2
	}

	var parts []string
	for len(head) > size {
		parts = append([]string{head[len(head)-size:]}, parts...)
		head = head[:len(head)-size]
	}
	parts = append([]string{head}, parts...)
	return strings.Join(append(parts, tail), sep)
}
