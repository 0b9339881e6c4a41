package money

import (
	"fmt"
	"math"
)

// Round2 rounds a currency amount to cents, halves away from zero.
// Aggregation keeps full float precision and rounds exactly once at
// output so client- and server-computed totals can never drift apart.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// Format renders an amount for display, e.g. Format(10) == "$10.00".
// Negative amounts carry the sign before the currency symbol ("-$10.50").
func Format(value float64) string {
	if value < 0 {
		return fmt.Sprintf("-$%.2f", -value)
	}
	return fmt.Sprintf("$%.2f", value)
}
