// Package scenario composes payoff simulations into side-by-side
// comparisons of extra-payment strategies against a regular-payments
// baseline.
package scenario

import (
	"time"

	"github.com/gyloans/loantrack/pkg/amortize"
	"github.com/gyloans/loantrack/pkg/datetime"
	"github.com/gyloans/loantrack/pkg/ledger"
	"github.com/gyloans/loantrack/pkg/mathutil"
)

// Definition names one extra-payment strategy to evaluate. A FrequencyMonths
// of 0 means no extra payments, which is the baseline case.
type Definition struct {
	Name            string  `json:"name"`
	ExtraAmount     float64 `json:"extraAmount"`
	FrequencyMonths int     `json:"frequencyMonths"`
}

// Result holds the simulation outcome for one definition. MonthsSaved and
// InterestSaved are relative to the baseline and may be negative for a
// scenario that is somehow worse; they are never clamped.
type Result struct {
	Name            string  `json:"name"`
	ExtraAmount     float64 `json:"extraAmount"`
	FrequencyMonths int     `json:"frequencyMonths"`
	TotalMonths     int     `json:"totalMonths"`
	TotalInterest   float64 `json:"totalInterest"`
	TotalPaid       float64 `json:"totalPaid"`
	MonthsSaved     int     `json:"monthsSaved"`
	InterestSaved   float64 `json:"interestSaved"`
	NonAmortizing   bool    `json:"nonAmortizing,omitempty"`
}

// Comparison pairs the baseline with the per-scenario results, in the order
// the definitions were declared.
type Comparison struct {
	Baseline Result   `json:"baseline"`
	Results  []Result `json:"results"`
}

// Presets returns the stock extra-payment strategies offered when a caller
// has none of their own.
func Presets() []Definition {
	return []Definition{
		{Name: "$50K Every 6 Months", ExtraAmount: 50000, FrequencyMonths: 6},
		{Name: "$100K Every 6 Months", ExtraAmount: 100000, FrequencyMonths: 6},
		{Name: "$200K Every 6 Months", ExtraAmount: 200000, FrequencyMonths: 6},
		{Name: "$50K Monthly", ExtraAmount: 50000, FrequencyMonths: 1},
		{Name: "$300K Annually", ExtraAmount: 300000, FrequencyMonths: 12},
	}
}

// Compare simulates the baseline and every definition against the same loan
// snapshot. Baseline and scenarios run through the same simulation loop so
// the derived savings stay consistent.
func Compare(loan ledger.LoanState, defs []Definition) Comparison {
	base := amortize.Simulate(loan.CurrentBalance, loan.AnnualInterestRate, loan.MonthlyPayment, nil)

	comparison := Comparison{
		Baseline: Result{
			Name:          "Baseline",
			TotalMonths:   base.Months,
			TotalInterest: base.TotalInterest,
			TotalPaid:     base.TotalPaid,
			NonAmortizing: base.NonAmortizing,
		},
		Results: make([]Result, 0, len(defs)),
	}

	for _, def := range defs {
		sim := amortize.Simulate(loan.CurrentBalance, loan.AnnualInterestRate, loan.MonthlyPayment,
			&amortize.ExtraPayment{Amount: def.ExtraAmount, FrequencyMonths: def.FrequencyMonths})

		comparison.Results = append(comparison.Results, Result{
			Name:            def.Name,
			ExtraAmount:     def.ExtraAmount,
			FrequencyMonths: def.FrequencyMonths,
			TotalMonths:     sim.Months,
			TotalInterest:   sim.TotalInterest,
			TotalPaid:       sim.TotalPaid,
			MonthsSaved:     base.Months - sim.Months,
			InterestSaved:   mathutil.Round(base.TotalInterest - sim.TotalInterest),
			NonAmortizing:   sim.NonAmortizing,
		})
	}

	return comparison
}

// Best picks the winning scenario: maximum InterestSaved, ties broken by
// maximum MonthsSaved, then by declaration order. Returns false when there
// are no scenarios to pick from.
func Best(comparison Comparison) (Result, bool) {
	if len(comparison.Results) == 0 {
		return Result{}, false
	}

	best := comparison.Results[0]
	for _, candidate := range comparison.Results[1:] {
		if candidate.InterestSaved > best.InterestSaved ||
			(candidate.InterestSaved == best.InterestSaved && candidate.MonthsSaved > best.MonthsSaved) {
			best = candidate
		}
	}
	return best, true
}

// Projection reports when a loan pays off under regular payments only.
type Projection struct {
	MonthsRemaining int    `json:"monthsRemaining"`
	PayoffDate      string `json:"payoffDate,omitempty"`
	NonAmortizing   bool   `json:"nonAmortizing,omitempty"`
}

// ProjectPayoff runs the baseline simulation for a single loan and derives
// the projected payoff date from the given reference time. No payoff date is
// reported for a non-amortizing configuration.
func ProjectPayoff(loan ledger.LoanState, asOf time.Time) Projection {
	sim := amortize.Simulate(loan.CurrentBalance, loan.AnnualInterestRate, loan.MonthlyPayment, nil)

	projection := Projection{
		MonthsRemaining: sim.Months,
		NonAmortizing:   sim.NonAmortizing,
	}
	if !sim.NonAmortizing {
		projection.PayoffDate = datetime.OffsetMonths(asOf, sim.Months).Format(datetime.DateLayout)
	}
	return projection
}
