// Package insights evaluates a user's aggregate loan, payment, and profile
// state against a fixed set of advisory rules and emits ranked insights.
// Every rule is an independent pure function of the aggregate inputs; rules
// never read each other's output.
package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/gyloans/loantrack/internal/domain"
	"go.uber.org/zap"
)

// Category classifies the kind of advice an insight carries.
type Category string

const (
	CategoryStrategy     Category = "strategy"
	CategoryWarning      Category = "warning"
	CategoryMilestone    Category = "milestone"
	CategoryTip          Category = "tip"
	CategoryOptimization Category = "optimization"
)

// Priority orders insights for presentation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// priorityRank maps priorities to sort ranks; lower sorts first.
var priorityRank = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// Insight is one advisory message. Recomputed on every evaluation, never
// authoritative state. The ID is stable per rule so callers can suppress
// duplicates across evaluations.
type Insight struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Priority Priority `json:"priority"`
}

// state carries the aggregates every rule reads.
type state struct {
	ActiveLoans   []domain.Loan
	Payments      []domain.Payment
	Profile       domain.Profile
	Now           time.Time
	TotalBalance  float64
	TotalOriginal float64
	TotalMonthly  float64
}

// rule is one advisory check. A nil return means the rule has nothing to
// say for this state.
type rule func(s state) *Insight

// Engine evaluates the rule set. The clock is injectable for tests.
type Engine struct {
	logger *zap.Logger
	now    func() time.Time
	rules  []rule
}

// NewEngine creates an insight engine with the full rule set in its fixed
// evaluation order.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger: logger,
		now:    time.Now,
		rules: []rule{
			ruleDebtToIncome,
			ruleSavingsRate,
			ruleAvalancheTarget,
			ruleSnowballTarget,
			ruleGratuityOptimizer,
			rulePaymentGap,
			ruleExtraPaymentImpact,
			ruleProgressMilestone,
			ruleEmergencyFund,
			ruleBudgetSuggestion,
		},
	}
}

// WithFixedTime pins the engine clock. Intended for tests.
func (e *Engine) WithFixedTime(fixed time.Time) *Engine {
	e.now = func() time.Time { return fixed }
	return e
}

// Evaluate runs every rule over the aggregate state and returns the
// surviving insights sorted by priority. The sort is stable so equal
// priorities keep rule-evaluation order.
func (e *Engine) Evaluate(loans []domain.Loan, payments []domain.Payment, profile domain.Profile) []Insight {
	if len(loans) == 0 {
		return []Insight{}
	}

	s := state{
		ActiveLoans: domain.ActiveLoans(loans),
		Payments:    payments,
		Profile:     profile,
		Now:         e.now(),
	}
	for _, loan := range s.ActiveLoans {
		s.TotalBalance += loan.CurrentBalance
		s.TotalOriginal += loan.OriginalAmount
		s.TotalMonthly += loan.MonthlyPayment
	}

	results := make([]Insight, 0, len(e.rules))
	for _, r := range e.rules {
		if insight := e.run(r, s); insight != nil {
			results = append(results, *insight)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return priorityRank[results[i].Priority] < priorityRank[results[j].Priority]
	})

	return results
}

// run fault-isolates a single rule: a panic inside one rule must not
// suppress the output of its siblings.
func (e *Engine) run(r rule, s state) (insight *Insight) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Warn(fmt.Sprintf("insight rule panicked: %v", rec),
				zap.String("op", "insights.Evaluate"),
			)
			insight = nil
		}
	}()
	return r(s)
}
