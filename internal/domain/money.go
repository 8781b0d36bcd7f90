package domain

import "fmt"

// Currency amounts are carried as integer cents everywhere in this codebase;
// floats appear only at display time. This keeps summary arithmetic exact
// regardless of how many trips are aggregated.

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CAD": "$",
	"AUD": "$",
}

// FormatCents renders an amount of cents for human-readable output, e.g.
// FormatCents(123456, "USD") == "$1234.56". Currencies without a known
// symbol are suffixed with their code: "1234.56 CHF".
func FormatCents(c int64, currency string) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	whole, frac := c/100, c%100
	if sym, ok := currencySymbols[currency]; ok {
		return fmt.Sprintf("%s%s%d.%02d", sign, sym, whole, frac)
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, whole, frac, currency)
}

// CentsToUnits converts cents to whole currency units for display.
// Never use the result for arithmetic.
func CentsToUnits(c int64) float64 {
	return float64(c) / 100.0
}
