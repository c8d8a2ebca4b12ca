// Package benchmark computes cross-user statistics from anonymized,
// opted-in participant data: progress-score percentiles plus aggregate
// payment behavior.
package benchmark

import (
	"math"
	"sort"

	"github.com/gyloans/loantrack/internal/domain"
	"github.com/gyloans/loantrack/pkg/constants"
	"github.com/gyloans/loantrack/pkg/mathutil"
)

// Percentiles is the progress-score distribution report. When Insufficient
// is set there were too few participants to compute a meaningful
// distribution and the percentile fields are zero.
type Percentiles struct {
	P25              int  `json:"p25"`
	P50              int  `json:"p50"`
	P75              int  `json:"p75"`
	P90              int  `json:"p90"`
	CallerPercentile int  `json:"callerPercentile"`
	ParticipantCount int  `json:"participantCount"`
	Insufficient     bool `json:"insufficient,omitempty"`
}

// ComputePercentiles builds the distribution report from per-user progress
// scores using the nearest-rank method (no interpolation). The caller's
// percentile is the share of scores strictly below theirs.
func ComputePercentiles(progressScores []float64, callerScore float64) Percentiles {
	n := len(progressScores)
	if n < constants.MinBenchmarkParticipants {
		return Percentiles{ParticipantCount: n, Insufficient: true}
	}

	sorted := make([]float64, n)
	copy(sorted, progressScores)
	sort.Float64s(sorted)

	below := 0
	for _, score := range sorted {
		if score < callerScore {
			below++
		}
	}

	return Percentiles{
		P25:              nearestRank(sorted, 25),
		P50:              nearestRank(sorted, 50),
		P75:              nearestRank(sorted, 75),
		P90:              nearestRank(sorted, 90),
		CallerPercentile: int(math.Round(constants.PercentageMultiplier * float64(below) / float64(n))),
		ParticipantCount: n,
	}
}

// nearestRank picks the value at rank ceil(p/100 * n) from an ascending
// sample, clamped to the sample bounds and rounded to the nearest integer.
func nearestRank(sorted []float64, p int) int {
	idx := int(math.Ceil(float64(p)/constants.PercentageMultiplier*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}
	return int(math.Round(sorted[idx]))
}

// ExtraPaymentStats aggregates the extra payments in a participant pool.
type ExtraPaymentStats struct {
	Count         int     `json:"count"`
	AverageAmount float64 `json:"averageAmount"`
}

// SourceStats summarizes payment volume for one payment source.
type SourceStats struct {
	Source        domain.PaymentSource `json:"source"`
	Count         int                  `json:"count"`
	AverageAmount float64              `json:"averageAmount"`
}

// SummarizeExtraPayments reports how many extra payments the pool made and
// their average size.
func SummarizeExtraPayments(payments []domain.Payment) ExtraPaymentStats {
	total := 0.0
	count := 0
	for _, payment := range payments {
		if payment.PaymentType == domain.PaymentTypeExtra {
			total += payment.Amount
			count++
		}
	}

	stats := ExtraPaymentStats{Count: count}
	if count > 0 {
		stats.AverageAmount = mathutil.Round(total / float64(count))
	}
	return stats
}

// SummarizeBySource breaks payment volume down by source, in a fixed source
// order for deterministic output.
func SummarizeBySource(payments []domain.Payment) []SourceStats {
	order := []domain.PaymentSource{
		domain.SourceSalary,
		domain.SourceGratuity,
		domain.SourceBonus,
		domain.SourceInvestment,
		domain.SourceSavings,
		domain.SourceOther,
	}

	totals := make(map[domain.PaymentSource]float64)
	counts := make(map[domain.PaymentSource]int)
	for _, payment := range payments {
		totals[payment.Source] += payment.Amount
		counts[payment.Source]++
	}

	stats := make([]SourceStats, 0, len(counts))
	for _, source := range order {
		if counts[source] == 0 {
			continue
		}
		stats = append(stats, SourceStats{
			Source:        source,
			Count:         counts[source],
			AverageAmount: mathutil.Round(totals[source] / float64(counts[source])),
		})
	}
	return stats
}
