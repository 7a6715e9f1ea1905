package figure

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatPopulation renders a population with thousands separators
// ("1,234,567"), or "n/a" when missing.
func FormatPopulation(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return printer.Sprintf("%d", int64(math.Round(v)))
}

func hoverText(state string, population float64) string {
	return state + ": " + FormatPopulation(population)
}
