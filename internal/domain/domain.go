// Package domain defines the data contracts the engine consumes from its
// callers: loan snapshots, payment records, and financial profiles. The
// engine never persists these; storage belongs to the caller.
package domain

// PaymentType distinguishes scheduled payments from extra paydowns.
type PaymentType string

const (
	PaymentTypeRegular PaymentType = "regular"
	PaymentTypeExtra   PaymentType = "extra"
)

// PaymentSource records where the money for a payment came from.
type PaymentSource string

const (
	SourceSalary     PaymentSource = "salary"
	SourceGratuity   PaymentSource = "gratuity"
	SourceBonus      PaymentSource = "bonus"
	SourceInvestment PaymentSource = "investment"
	SourceSavings    PaymentSource = "savings"
	SourceOther      PaymentSource = "other"
)

// Loan is the caller-owned loan record the engine reads.
type Loan struct {
	ID                 string  `json:"id"`
	Description        string  `json:"description,omitempty"`
	OriginalAmount     float64 `json:"originalAmount"`
	CurrentBalance     float64 `json:"currentBalance"`
	AnnualInterestRate float64 `json:"annualInterestRate"`
	MonthlyPayment     float64 `json:"monthlyPayment"`
	IsActive           bool    `json:"isActive"`
	StartDate          string  `json:"startDate,omitempty"`
	TermMonths         int     `json:"termMonths,omitempty"`
}

// Payment is one immutable recorded payment against a loan.
type Payment struct {
	LoanID      string        `json:"loanId"`
	Amount      float64       `json:"amount"`
	PaymentDate string        `json:"paymentDate"`
	PaymentType PaymentType   `json:"paymentType"`
	Source      PaymentSource `json:"source"`
	Notes       string        `json:"notes,omitempty"`
}

// Profile carries the optional financial profile fields the insight rules
// read. Zero values mean the field was not provided.
type Profile struct {
	MonthlyIncome    float64 `json:"monthlyIncome,omitempty"`
	EmergencyFund    float64 `json:"emergencyFund,omitempty"`
	ExpectedGratuity float64 `json:"expectedGratuity,omitempty"`
	NextGratuityDate string  `json:"nextGratuityDate,omitempty"`
}

// ActiveLoans filters a portfolio down to open loans.
func ActiveLoans(loans []Loan) []Loan {
	active := make([]Loan, 0, len(loans))
	for _, loan := range loans {
		if loan.IsActive {
			active = append(active, loan)
		}
	}
	return active
}
