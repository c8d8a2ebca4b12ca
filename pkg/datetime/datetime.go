// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/gyloans/loantrack/pkg/constants"
)

const (
	// DateLayout is the format expected for dates in request payloads and
	// is also the output date format.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a payload date string in the standard layout.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}

// DaysUntil returns the number of whole days from now until the given date,
// rounding any partial day up. Dates in the past yield negative values.
func DaysUntil(date time.Time, now time.Time) int {
	diff := date.Sub(now)
	days := int(diff.Hours() / 24)
	if diff > 0 && diff%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// WithinLastDays reports whether date falls inside the window of the given
// number of days ending at now. Future dates count as within the window.
func WithinLastDays(date time.Time, days int, now time.Time) bool {
	cutoff := now.AddDate(0, 0, -days)
	return !date.Before(cutoff)
}

// OffsetMonths returns the given time offset by the given number of months.
// Used to project payoff dates from a month count.
func OffsetMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}
