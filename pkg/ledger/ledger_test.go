package ledger

import (
	"math"
	"testing"
)

func TestApplyPayment(t *testing.T) {
	tests := []struct {
		name              string
		loan              LoanState
		amount            float64
		expectedInterest  float64
		expectedPrincipal float64
		expectedBalance   float64
		expectedPaidOff   bool
	}{
		{
			name:              "Standard split",
			loan:              LoanState{CurrentBalance: 1000000, AnnualInterestRate: 0.12, MonthlyPayment: 111222},
			amount:            111222,
			expectedInterest:  10000,
			expectedPrincipal: 101222,
			expectedBalance:   898778,
			expectedPaidOff:   false,
		},
		{
			name:              "Zero interest loan",
			loan:              LoanState{CurrentBalance: 50000, AnnualInterestRate: 0, MonthlyPayment: 5000},
			amount:            5000,
			expectedInterest:  0,
			expectedPrincipal: 5000,
			expectedBalance:   45000,
			expectedPaidOff:   false,
		},
		{
			name:              "Payment below interest accrual",
			loan:              LoanState{CurrentBalance: 1000000, AnnualInterestRate: 0.12, MonthlyPayment: 10000},
			amount:            5000,
			expectedInterest:  10000,
			expectedPrincipal: 0,
			expectedBalance:   1000000,
			expectedPaidOff:   false,
		},
		{
			name:              "Final payment retires loan",
			loan:              LoanState{CurrentBalance: 90000, AnnualInterestRate: 0.12, MonthlyPayment: 111222},
			amount:            111222,
			expectedInterest:  900,
			expectedPrincipal: 110322,
			expectedBalance:   0,
			expectedPaidOff:   true,
		},
		{
			name:              "Exact payoff",
			loan:              LoanState{CurrentBalance: 10000, AnnualInterestRate: 0, MonthlyPayment: 10000},
			amount:            10000,
			expectedInterest:  0,
			expectedPrincipal: 10000,
			expectedBalance:   0,
			expectedPaidOff:   true,
		},
		{
			name:              "Extra lump sum",
			loan:              LoanState{CurrentBalance: 500000, AnnualInterestRate: 0.10, MonthlyPayment: 50000},
			amount:            200000,
			expectedInterest:  4166.67,
			expectedPrincipal: 195833.33,
			expectedBalance:   304166.67,
			expectedPaidOff:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split := ApplyPayment(tt.loan, tt.amount)

			if math.Abs(split.InterestPortion-tt.expectedInterest) > 0.01 {
				t.Errorf("InterestPortion = %.2f, expected %.2f", split.InterestPortion, tt.expectedInterest)
			}
			if math.Abs(split.PrincipalPortion-tt.expectedPrincipal) > 0.01 {
				t.Errorf("PrincipalPortion = %.2f, expected %.2f", split.PrincipalPortion, tt.expectedPrincipal)
			}
			if math.Abs(split.NewBalance-tt.expectedBalance) > 0.01 {
				t.Errorf("NewBalance = %.2f, expected %.2f", split.NewBalance, tt.expectedBalance)
			}
			if split.PaidOff != tt.expectedPaidOff {
				t.Errorf("PaidOff = %v, expected %v", split.PaidOff, tt.expectedPaidOff)
			}
		})
	}
}

func TestApplyPaymentBalanceNeverNegative(t *testing.T) {
	loan := LoanState{CurrentBalance: 1000, AnnualInterestRate: 0.12, MonthlyPayment: 500}
	split := ApplyPayment(loan, 1000000)

	if split.NewBalance != 0 {
		t.Errorf("NewBalance = %.2f, expected floor at 0", split.NewBalance)
	}
	if !split.PaidOff {
		t.Error("overpayment should retire the loan")
	}
}
