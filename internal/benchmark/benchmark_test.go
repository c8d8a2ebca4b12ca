package benchmark

import (
	"math"
	"testing"

	"github.com/gyloans/loantrack/internal/domain"
)

func TestComputePercentilesReference(t *testing.T) {
	scores := []float64{10, 20, 30, 40, 50}
	result := ComputePercentiles(scores, 35)

	if result.Insufficient {
		t.Fatal("five participants should be sufficient")
	}
	if result.P50 != 30 {
		t.Errorf("P50 = %d, expected 30 (nearest-rank)", result.P50)
	}
	if result.P25 != 20 {
		t.Errorf("P25 = %d, expected 20", result.P25)
	}
	if result.P75 != 40 {
		t.Errorf("P75 = %d, expected 40", result.P75)
	}
	if result.P90 != 50 {
		t.Errorf("P90 = %d, expected 50", result.P90)
	}
	if result.CallerPercentile != 60 {
		t.Errorf("CallerPercentile = %d, expected 60 (3 of 5 below)", result.CallerPercentile)
	}
	if result.ParticipantCount != 5 {
		t.Errorf("ParticipantCount = %d, expected 5", result.ParticipantCount)
	}
}

func TestComputePercentilesInsufficient(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
	}{
		{"No participants", nil},
		{"Single participant", []float64{42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputePercentiles(tt.scores, 35)
			if !result.Insufficient {
				t.Error("expected Insufficient with fewer than 2 participants")
			}
			if result.ParticipantCount != len(tt.scores) {
				t.Errorf("ParticipantCount = %d, expected %d", result.ParticipantCount, len(tt.scores))
			}
		})
	}
}

func TestComputePercentilesUnsortedInput(t *testing.T) {
	shuffled := []float64{40, 10, 50, 30, 20}
	ordered := []float64{10, 20, 30, 40, 50}

	if ComputePercentiles(shuffled, 35) != ComputePercentiles(ordered, 35) {
		t.Error("input order must not affect the report")
	}
}

func TestComputePercentilesDoesNotMutateInput(t *testing.T) {
	scores := []float64{40, 10, 50}
	ComputePercentiles(scores, 35)

	if scores[0] != 40 || scores[1] != 10 || scores[2] != 50 {
		t.Errorf("input slice was mutated: %v", scores)
	}
}

func TestCallerPercentileEdges(t *testing.T) {
	scores := []float64{10, 20, 30, 40, 50}

	tests := []struct {
		name        string
		callerScore float64
		expected    int
	}{
		{"Below everyone", 5, 0},
		{"Above everyone", 99, 100},
		{"Equal scores excluded", 30, 40}, // strictly less than: 2 of 5
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputePercentiles(scores, tt.callerScore)
			if result.CallerPercentile != tt.expected {
				t.Errorf("CallerPercentile = %d, expected %d", result.CallerPercentile, tt.expected)
			}
		})
	}
}

func TestNearestRankRoundsScores(t *testing.T) {
	result := ComputePercentiles([]float64{12.4, 55.6}, 30)
	if result.P25 != 12 {
		t.Errorf("P25 = %d, expected rounded 12", result.P25)
	}
	if result.P90 != 56 {
		t.Errorf("P90 = %d, expected rounded 56", result.P90)
	}
}

func TestSummarizeExtraPayments(t *testing.T) {
	payments := []domain.Payment{
		{Amount: 111222, PaymentType: domain.PaymentTypeRegular, Source: domain.SourceSalary},
		{Amount: 100000, PaymentType: domain.PaymentTypeExtra, Source: domain.SourceGratuity},
		{Amount: 50000, PaymentType: domain.PaymentTypeExtra, Source: domain.SourceBonus},
	}

	stats := SummarizeExtraPayments(payments)
	if stats.Count != 2 {
		t.Errorf("Count = %d, expected 2", stats.Count)
	}
	if math.Abs(stats.AverageAmount-75000) > 0.01 {
		t.Errorf("AverageAmount = %.2f, expected 75000", stats.AverageAmount)
	}
}

func TestSummarizeExtraPaymentsEmpty(t *testing.T) {
	stats := SummarizeExtraPayments(nil)
	if stats.Count != 0 || stats.AverageAmount != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestSummarizeBySource(t *testing.T) {
	payments := []domain.Payment{
		{Amount: 100000, PaymentType: domain.PaymentTypeRegular, Source: domain.SourceSalary},
		{Amount: 200000, PaymentType: domain.PaymentTypeRegular, Source: domain.SourceSalary},
		{Amount: 500000, PaymentType: domain.PaymentTypeExtra, Source: domain.SourceGratuity},
	}

	stats := SummarizeBySource(payments)
	if len(stats) != 2 {
		t.Fatalf("expected 2 source groups, got %d", len(stats))
	}
	// Fixed source order: salary before gratuity.
	if stats[0].Source != domain.SourceSalary || stats[0].Count != 2 {
		t.Errorf("first group = %+v, expected salary with 2 payments", stats[0])
	}
	if math.Abs(stats[0].AverageAmount-150000) > 0.01 {
		t.Errorf("salary average = %.2f, expected 150000", stats[0].AverageAmount)
	}
	if stats[1].Source != domain.SourceGratuity || stats[1].Count != 1 {
		t.Errorf("second group = %+v, expected gratuity with 1 payment", stats[1])
	}
}
