// Package progress computes payoff progress scores. The milestone insight
// rules and the benchmarking percentiles both consume this formula; it lives
// here so the two can never drift apart.
package progress

import "github.com/gyloans/loantrack/pkg/mathutil"

// Score returns how far a single loan has been paid down as a percentage of
// its original amount. A zero or negative original amount scores 0.
func Score(originalAmount, currentBalance float64) float64 {
	if originalAmount <= 0 {
		return 0
	}
	return mathutil.CalculatePercentage(originalAmount-currentBalance, originalAmount)
}

// UserScore returns the mean score across a user's loans, given parallel
// slices of original amounts and current balances. An empty portfolio
// scores 0.
func UserScore(originalAmounts, currentBalances []float64) float64 {
	if len(originalAmounts) == 0 || len(originalAmounts) != len(currentBalances) {
		return 0
	}

	total := 0.0
	for i := range originalAmounts {
		total += Score(originalAmounts[i], currentBalances[i])
	}
	return total / float64(len(originalAmounts))
}
