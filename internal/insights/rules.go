package insights

import (
	"fmt"

	"github.com/gyloans/loantrack/internal/domain"
	"github.com/gyloans/loantrack/pkg/constants"
	"github.com/gyloans/loantrack/pkg/datetime"
	"github.com/gyloans/loantrack/pkg/format"
	"github.com/gyloans/loantrack/pkg/progress"
)

// ruleDebtToIncome monitors the debt-to-income ratio and emits exactly one
// of the critical, elevated, or healthy assessments.
func ruleDebtToIncome(s state) *Insight {
	income := s.Profile.MonthlyIncome
	if income <= 0 {
		return nil
	}

	dti := (s.TotalMonthly / income) * constants.PercentageMultiplier

	switch {
	case dti > constants.HighDTIThreshold:
		return &Insight{
			ID:       "dti-critical",
			Category: CategoryWarning,
			Title:    "High Debt-to-Income Ratio",
			Message: fmt.Sprintf("Your DTI is %.1f%%, well above the recommended %.0f%%. Consider increasing income or accelerating payoff on your highest-rate loan.",
				dti, constants.ElevatedDTIThreshold),
			Priority: PriorityHigh,
		}
	case dti > constants.ElevatedDTIThreshold:
		return &Insight{
			ID:       "dti-elevated",
			Category: CategoryWarning,
			Title:    "Elevated Debt-to-Income",
			Message: fmt.Sprintf("Your DTI is %.1f%%. Aim to bring this below %.0f%% for better financial health. Extra payments on high-interest loans help most.",
				dti, constants.ElevatedDTIThreshold),
			Priority: PriorityMedium,
		}
	default:
		return &Insight{
			ID:       "dti-healthy",
			Category: CategoryMilestone,
			Title:    "Healthy Debt-to-Income Ratio",
			Message:  fmt.Sprintf("Your DTI is %.1f%%, within the healthy range. Keep it up!", dti),
			Priority: PriorityLow,
		}
	}
}

// ruleSavingsRate flags a post-payment savings rate below the target.
func ruleSavingsRate(s state) *Insight {
	income := s.Profile.MonthlyIncome
	if income <= 0 {
		return nil
	}

	savingsRate := ((income - s.TotalMonthly) / income) * constants.PercentageMultiplier
	if savingsRate >= constants.TargetSavingsRate {
		return nil
	}

	return &Insight{
		ID:       "savings-low",
		Category: CategoryTip,
		Title:    "Boost Your Savings Rate",
		Message: fmt.Sprintf("After loan payments, you're saving ~%.0f%% of income. Financial experts recommend saving at least %.0f%%. Even small additional savings compound over time.",
			savingsRate, constants.TargetSavingsRate),
		Priority: PriorityMedium,
	}
}

// highestRateLoan returns the active loan with the highest interest rate;
// ties go to the first encountered.
func highestRateLoan(loans []domain.Loan) domain.Loan {
	best := loans[0]
	for _, loan := range loans[1:] {
		if loan.AnnualInterestRate > best.AnnualInterestRate {
			best = loan
		}
	}
	return best
}

// lowestBalanceLoan returns the active loan with the smallest balance; ties
// go to the first encountered.
func lowestBalanceLoan(loans []domain.Loan) domain.Loan {
	best := loans[0]
	for _, loan := range loans[1:] {
		if loan.CurrentBalance < best.CurrentBalance {
			best = loan
		}
	}
	return best
}

func loanLabel(loan domain.Loan) string {
	if loan.Description != "" {
		return loan.Description
	}
	return "loan"
}

// ruleAvalancheTarget points extra payments at the highest-rate loan when
// more than one loan is active.
func ruleAvalancheTarget(s state) *Insight {
	if len(s.ActiveLoans) < 2 {
		return nil
	}

	target := highestRateLoan(s.ActiveLoans)
	return &Insight{
		ID:       "avalanche-strategy",
		Category: CategoryStrategy,
		Title:    "Avalanche Strategy Opportunity",
		Message: fmt.Sprintf("Your %s has the highest rate (%.1f%%). Directing extra payments here saves the most in interest over time.",
			loanLabel(target), target.AnnualInterestRate*constants.PercentageMultiplier),
		Priority: PriorityHigh,
	}
}

// ruleSnowballTarget surfaces the quick-win loan, but only when it differs
// from the avalanche target.
func ruleSnowballTarget(s state) *Insight {
	if len(s.ActiveLoans) < 2 {
		return nil
	}

	target := lowestBalanceLoan(s.ActiveLoans)
	if target.ID == highestRateLoan(s.ActiveLoans).ID {
		return nil
	}

	return &Insight{
		ID:       "snowball-strategy",
		Category: CategoryStrategy,
		Title:    "Quick Win Available",
		Message: fmt.Sprintf("Your %s has the lowest balance (%s). Paying it off first gives you momentum and frees up %s/mo.",
			loanLabel(target), format.WholeCurrency(target.CurrentBalance), format.WholeCurrency(target.MonthlyPayment)),
		Priority: PriorityMedium,
	}
}

// ruleGratuityOptimizer suggests directing an upcoming gratuity at the
// highest-rate loan, with an approximate one-year interest saving.
func ruleGratuityOptimizer(s state) *Insight {
	gratuity := s.Profile.ExpectedGratuity
	if gratuity <= 0 || s.Profile.NextGratuityDate == "" || len(s.ActiveLoans) == 0 {
		return nil
	}

	gratuityDate, err := datetime.ParseDate(s.Profile.NextGratuityDate)
	if err != nil {
		return nil
	}

	daysUntil := datetime.DaysUntil(gratuityDate, s.Now)
	if daysUntil <= 0 || daysUntil > constants.GratuityWindowDays {
		return nil
	}

	target := highestRateLoan(s.ActiveLoans)
	// Approximate one year of interest on the gratuity amount at the
	// target's rate.
	interestSaved := gratuity * target.AnnualInterestRate

	return &Insight{
		ID:       "gratuity-optimizer",
		Category: CategoryOptimization,
		Title:    "Gratuity Coming Soon",
		Message: fmt.Sprintf("Your gratuity of %s arrives in ~%d days. Applying it to your %s could save ~%s in interest over the next year.",
			format.WholeCurrency(gratuity), daysUntil, loanLabel(target), format.Currency(interestSaved)),
		Priority: PriorityHigh,
	}
}

// rulePaymentGap warns when no payment has been recorded inside the recency
// window while loans remain active.
func rulePaymentGap(s state) *Insight {
	if len(s.ActiveLoans) == 0 {
		return nil
	}

	for _, payment := range s.Payments {
		paymentDate, err := datetime.ParseDate(payment.PaymentDate)
		if err != nil {
			continue
		}
		if datetime.WithinLastDays(paymentDate, constants.PaymentGapDays, s.Now) {
			return nil
		}
	}

	return &Insight{
		ID:       "payment-gap",
		Category: CategoryWarning,
		Title:    "No Recent Payments",
		Message: fmt.Sprintf("No payments recorded in the last %d days. Staying on schedule prevents interest accumulation and keeps your financial health score high.",
			constants.PaymentGapDays),
		Priority: PriorityHigh,
	}
}

// ruleExtraPaymentImpact celebrates historical extra payments with a rough
// estimate of the interest they avoided.
func ruleExtraPaymentImpact(s state) *Insight {
	totalExtra := 0.0
	count := 0
	for _, payment := range s.Payments {
		if payment.PaymentType == domain.PaymentTypeExtra {
			totalExtra += payment.Amount
			count++
		}
	}
	if count == 0 {
		return nil
	}

	avgRate := 0.0
	if len(s.ActiveLoans) > 0 {
		for _, loan := range s.ActiveLoans {
			avgRate += loan.AnnualInterestRate
		}
		avgRate /= float64(len(s.ActiveLoans))
	}
	// Rough estimate: extra principal avoids about half a year of interest
	// on average over the remaining term.
	estimatedSaved := totalExtra * avgRate * 0.5

	return &Insight{
		ID:       "extra-payment-impact",
		Category: CategoryMilestone,
		Title:    "Extra Payments Making Impact",
		Message: fmt.Sprintf("You've made %s in extra payments across %d transactions. This has saved you an estimated %s in interest!",
			format.WholeCurrency(totalExtra), count, format.WholeCurrency(estimatedSaved)),
		Priority: PriorityLow,
	}
}

// milestoneBuckets are the progress-score windows that trigger a milestone,
// checked in order; only the first match fires.
var milestoneBuckets = []int{25, 50, 75, 90}

// ruleProgressMilestone detects when the aggregate progress score has just
// crossed a milestone.
func ruleProgressMilestone(s state) *Insight {
	originals := make([]float64, 0, len(s.ActiveLoans))
	balances := make([]float64, 0, len(s.ActiveLoans))
	for _, loan := range s.ActiveLoans {
		originals = append(originals, loan.OriginalAmount)
		balances = append(balances, loan.CurrentBalance)
	}
	score := progress.UserScore(originals, balances)

	for _, bucket := range milestoneBuckets {
		if score >= float64(bucket) && score < float64(bucket)+5 {
			return &Insight{
				ID:       fmt.Sprintf("milestone-%d", bucket),
				Category: CategoryMilestone,
				Title:    fmt.Sprintf("%d%% Milestone Reached!", bucket),
				Message: fmt.Sprintf("You've paid off %.1f%% of your total loan balance. %s",
					score, milestoneFraming(bucket)),
				Priority: PriorityMedium,
			}
		}
	}
	return nil
}

func milestoneFraming(bucket int) string {
	switch bucket {
	case 50:
		return "You're halfway there!"
	case 75:
		return "The finish line is in sight!"
	case 90:
		return "Almost debt-free! Final push!"
	default:
		return "Great progress, keep going!"
	}
}

// ruleEmergencyFund checks whether the emergency fund covers the
// recommended months of loan payments.
func ruleEmergencyFund(s state) *Insight {
	if s.Profile.MonthlyIncome <= 0 {
		return nil
	}

	monthsCovered := 0.0
	if s.TotalMonthly > 0 {
		monthsCovered = s.Profile.EmergencyFund / s.TotalMonthly
	}
	if monthsCovered >= constants.EmergencyFundMonths {
		return nil
	}

	return &Insight{
		ID:       "emergency-fund",
		Category: CategoryTip,
		Title:    "Build Emergency Fund",
		Message: fmt.Sprintf("Your emergency fund covers ~%.1f months of loan payments. Aim for 3-6 months to protect against unexpected disruptions.",
			monthsCovered),
		Priority: PriorityMedium,
	}
}

// ruleBudgetSuggestion proposes a comfortable extra payment from leftover
// income: the smaller of 30% of leftover and 5% of total balance, and only
// when that amount is worth acting on.
func ruleBudgetSuggestion(s state) *Insight {
	income := s.Profile.MonthlyIncome
	if income <= 0 {
		return nil
	}

	leftover := income - s.TotalMonthly
	if leftover <= 0 {
		return nil
	}

	suggested := leftover * 0.3
	if balanceCap := s.TotalBalance * 0.05; balanceCap < suggested {
		suggested = balanceCap
	}
	if suggested <= constants.MinSuggestedExtra {
		return nil
	}

	return &Insight{
		ID:       "budget-extra",
		Category: CategoryOptimization,
		Title:    "Optimal Extra Payment",
		Message: fmt.Sprintf("Based on your income and expenses, you could comfortably allocate ~%s/month as extra payments. This balances debt payoff with maintaining quality of life.",
			format.WholeCurrency(suggested)),
		Priority: PriorityMedium,
	}
}
