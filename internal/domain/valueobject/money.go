// Package valueobject contains domain value objects for the budgeting system.
package valueobject

import (
	"math"

	"github.com/shopspring/decimal"
)

// MoneyFromFloat converts a raw numeric input into a decimal amount.
// NaN and infinities are coerced to zero instead of panicking.
func MoneyFromFloat(value float64) decimal.Decimal {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(value)
}

// MoneyFromFloatPtr is MoneyFromFloat for optional inputs; nil yields zero.
func MoneyFromFloatPtr(value *float64) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return MoneyFromFloat(*value)
}

// ClampZero returns d, or zero when d is negative.
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FormatMoney renders an amount with two decimals for API responses.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
