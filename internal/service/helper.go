package service

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const valuePrecision = 2

func normalizeCode(code string) CurrencyCode {
	return strings.ToUpper(strings.TrimSpace(code))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// formatValue rounds to two decimals on the binary value, round(v*100)/100,
// and drops a zero fraction: 5.00 -> "5", 5.25 -> "5.25", 5.10 -> "5.1", 1.005 -> "1".
func formatValue(v float64) string {
	scale := math.Pow10(valuePrecision)
	if r := math.Round(v*scale) / scale; isFinite(r) {
		return decimal.NewFromFloat(r).String()
	}
	// v*100 overflows near MaxFloat64, round the decimal form instead
	return decimal.NewFromFloat(v).Round(valuePrecision).String()
}

// matchesSearch reports whether code contains the upper-cased text or the
// country contains text case-insensitively. Empty text matches everything.
func matchesSearch(code CurrencyCode, country, text string) bool {
	if text == "" {
		return true
	}
	if strings.Contains(code, strings.ToUpper(text)) {
		return true
	}
	return strings.Contains(strings.ToLower(country), strings.ToLower(text))
}
