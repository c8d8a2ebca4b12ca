// Package ledger splits recorded payments into interest and principal
// portions against a loan's balance as of the moment of payment.
package ledger

import (
	"github.com/gyloans/loantrack/pkg/amortize"
	"github.com/gyloans/loantrack/pkg/mathutil"
)

// LoanState is the minimal numeric snapshot a split is computed against.
type LoanState struct {
	CurrentBalance     float64
	AnnualInterestRate float64
	MonthlyPayment     float64
}

// Split holds the outcome of applying one payment to a loan.
type Split struct {
	InterestPortion  float64
	PrincipalPortion float64
	NewBalance       float64
	PaidOff          bool
}

// ApplyPayment splits a payment into its interest and principal portions
// using the loan's balance as of before this payment, and produces the new
// balance floored at zero. Callers must serialize concurrent payments
// against the same loan; this function itself holds no state.
func ApplyPayment(loan LoanState, amount float64) Split {
	interest := amortize.InterestOn(loan.CurrentBalance, loan.AnnualInterestRate)
	principal := mathutil.Round(mathutil.ClampNonNegative(amount - interest))
	newBalance := mathutil.Round(mathutil.ClampNonNegative(loan.CurrentBalance - principal))

	return Split{
		InterestPortion:  interest,
		PrincipalPortion: principal,
		NewBalance:       newBalance,
		PaidOff:          mathutil.IsZero(newBalance),
	}
}
