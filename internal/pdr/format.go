package pdr

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NoData is shown in place of a metric that has no defined value.
const NoData = "Aucune donnée"

var printer = message.NewPrinter(language.English)

// FormatDH formats an amount in whole dirhams with thousands separators,
// e.g. "14,000,000 DH".
func FormatDH(v float64) string {
	return printer.Sprintf("%d DH", int64(math.Round(v)))
}

// FormatMDH formats an amount in millions of dirhams, e.g. "14.0 MDH".
func FormatMDH(v float64) string {
	return fmt.Sprintf("%.1f MDH", v/1e6)
}

// FormatPercent formats a percentage, or NoData when ok is false.
func FormatPercent(v float64, ok bool) string {
	if !ok {
		return NoData
	}
	return fmt.Sprintf("%.1f%%", v)
}

// ShortAmount abbreviates large amounts for chart labels.
func ShortAmount(num float64) string {
	if num >= 1000000 {
		return fmt.Sprintf("%.2fM", num/1000000)
	} else if num >= 1000 {
		return fmt.Sprintf("%.1fK", num/1000)
	}
	return fmt.Sprintf("%.0f", num)
}
