// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/gyloans/loantrack/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Rounding is half-up, applied at every currency-producing step.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// IsPositive checks if a value is positive (greater than tolerance)
func IsPositive(val float64) bool {
	return val > constants.CurrencyTolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// ClampNonNegative floors a value at zero. Used to keep intermediate money
// values (principal, balances) from going negative.
func ClampNonNegative(val float64) float64 {
	if val < 0 {
		return 0
	}
	return val
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}
