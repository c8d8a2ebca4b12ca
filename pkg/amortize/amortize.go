// Package amortize provides the iterative payoff simulation shared by every
// projection in loantrack. Baseline and extra-payment scenarios run through
// the same loop so their results stay comparable.
package amortize

import (
	"github.com/gyloans/loantrack/pkg/constants"
	"github.com/gyloans/loantrack/pkg/mathutil"
)

// ExtraPayment describes a recurring extra principal injection applied every
// FrequencyMonths months on top of the regular payment. A FrequencyMonths of
// zero disables the injection entirely.
type ExtraPayment struct {
	Amount          float64
	FrequencyMonths int
}

// Result summarizes a payoff simulation.
type Result struct {
	Months        int
	TotalInterest float64
	TotalPaid     float64
	NonAmortizing bool
}

// MonthlyRate converts an annual fractional rate (e.g. 0.12 for 12% APR)
// into a monthly rate.
func MonthlyRate(annualRate float64) float64 {
	return annualRate / constants.MonthsPerYear
}

// InterestOn computes one month of interest accrued on a balance, rounded
// to currency precision.
func InterestOn(balance, annualRate float64) float64 {
	return mathutil.Round(balance * MonthlyRate(annualRate))
}

// Simulate runs the month-by-month payoff simulation for a loan. Passing a
// nil extra (or one with FrequencyMonths of 0) yields the baseline schedule
// of regular payments only.
//
// The simulation is capped at MaxScheduleMonths; reaching the cap with a
// positive balance sets NonAmortizing so callers can distinguish a payment
// that never retires the debt from a genuine 30-year payoff.
func Simulate(balance, annualRate, monthlyPayment float64, extra *ExtraPayment) Result {
	remaining := balance
	monthsElapsed := 0
	totalInterest := 0.0

	for remaining > constants.CurrencyTolerance && monthsElapsed < constants.MaxScheduleMonths {
		month := monthsElapsed + 1
		interest := InterestOn(remaining, annualRate)
		totalInterest += interest

		payment := monthlyPayment
		if extra != nil && extra.FrequencyMonths > 0 && month%extra.FrequencyMonths == 0 {
			payment += extra.Amount
		}

		principal := mathutil.Min(payment-interest, remaining)
		remaining = mathutil.Round(remaining - principal)
		monthsElapsed = month
	}

	remaining = mathutil.ClampNonNegative(remaining)
	totalInterest = mathutil.Round(totalInterest)

	return Result{
		Months:        monthsElapsed,
		TotalInterest: totalInterest,
		TotalPaid:     mathutil.Round(balance + totalInterest),
		NonAmortizing: monthsElapsed >= constants.MaxScheduleMonths && !mathutil.IsZero(remaining),
	}
}
