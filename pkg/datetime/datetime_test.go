package datetime

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{"Valid date", "2026-03-15", false},
		{"Valid leap day", "2024-02-29", false},
		{"Invalid layout", "15/03/2026", true},
		{"Month-only", "2026-03", true},
		{"Empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.input)
			if tt.expectErr && err == nil {
				t.Errorf("ParseDate(%q) expected error, got nil", tt.input)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}

func TestDaysUntil(t *testing.T) {
	now := MustParseTime(DateLayout, "2026-01-01")

	tests := []struct {
		name     string
		date     string
		expected int
	}{
		{"Same day", "2026-01-01", 0},
		{"Tomorrow", "2026-01-02", 1},
		{"Sixty days out", "2026-03-02", 60},
		{"Yesterday", "2025-12-31", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date := MustParseTime(DateLayout, tt.date)
			if result := DaysUntil(date, now); result != tt.expected {
				t.Errorf("DaysUntil(%s) = %d, expected %d", tt.date, result, tt.expected)
			}
		})
	}
}

func TestDaysUntilPartialDay(t *testing.T) {
	now := MustParseTime(DateLayout, "2026-01-01").Add(6 * time.Hour)
	date := MustParseTime(DateLayout, "2026-01-03")
	// 1.75 days out rounds up to 2
	if result := DaysUntil(date, now); result != 2 {
		t.Errorf("DaysUntil partial day = %d, expected 2", result)
	}
}

func TestWithinLastDays(t *testing.T) {
	now := MustParseTime(DateLayout, "2026-06-30")

	tests := []struct {
		name     string
		date     string
		days     int
		expected bool
	}{
		{"Within window", "2026-06-15", 30, true},
		{"Boundary day counts", "2026-05-31", 30, true},
		{"Outside window", "2026-05-30", 30, false},
		{"Future date counts", "2026-07-05", 30, true},
		{"Same day", "2026-06-30", 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date := MustParseTime(DateLayout, tt.date)
			if result := WithinLastDays(date, tt.days, now); result != tt.expected {
				t.Errorf("WithinLastDays(%s, %d) = %v, expected %v",
					tt.date, tt.days, result, tt.expected)
			}
		})
	}
}

func TestOffsetMonths(t *testing.T) {
	start := MustParseTime(DateLayout, "2026-01-15")
	result := OffsetMonths(start, 54)
	expected := MustParseTime(DateLayout, "2030-07-15")
	if !result.Equal(expected) {
		t.Errorf("OffsetMonths(+54) = %s, expected %s",
			result.Format(DateLayout), expected.Format(DateLayout))
	}
}
