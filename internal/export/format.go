package export

import (
	"github.com/shopspring/decimal"
)

// roundTo rounds v to places decimal digits.
func roundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// formatFixed renders v with exactly places decimal digits.
func formatFixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}
