// Package constants provides shared constants for the loantrack engine.
package constants

import "time"

// DateLayout is the format expected for payment and gratuity dates in
// request payloads and is also the output date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// MaxScheduleMonths is the hard cap on payoff simulations (30 years).
	// Reaching it with a positive balance marks the result non-amortizing.
	MaxScheduleMonths = 360

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Insight rule thresholds
const (
	// HighDTIThreshold is the debt-to-income percentage above which debt
	// load is considered critical
	HighDTIThreshold = 50.0

	// ElevatedDTIThreshold is the recommended debt-to-income ceiling
	ElevatedDTIThreshold = 36.0

	// TargetSavingsRate is the recommended minimum savings percentage
	TargetSavingsRate = 20.0

	// GratuityWindowDays is how far out an expected gratuity is considered
	// actionable
	GratuityWindowDays = 90

	// PaymentGapDays is the window without payments that triggers a warning
	PaymentGapDays = 30

	// EmergencyFundMonths is the recommended emergency fund coverage in
	// months of loan payments
	EmergencyFundMonths = 3.0

	// MinSuggestedExtra is the floor below which a suggested extra payment
	// is not worth surfacing
	MinSuggestedExtra = 10000.0
)

// Benchmarking constants
const (
	// MinBenchmarkParticipants is the minimum number of distinct
	// participants required before percentiles are computed
	MinBenchmarkParticipants = 2
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultCacheTTL bounds how long a cached response may be replayed
	DefaultCacheTTL = 5 * time.Minute
)
