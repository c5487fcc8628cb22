package utils

import "github.com/shopspring/decimal"

// FormatAmount renders a stored float with two decimals.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatMoney prefixes the currency glyph.
func FormatMoney(symbol string, v float64) string {
	return symbol + FormatAmount(v)
}

// Round2 rounds half away from zero to two decimals, for report totals.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
