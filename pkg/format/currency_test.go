package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Small amount", 12.5, "$12.50"},
		{"Thousands", 1234.56, "$1,234.56"},
		{"Millions", 5000000.0, "$5,000,000.00"},
		{"Negative", -1234.56, "-$1,234.56"},
		{"Zero", 0, "$0.00"},
		{"Exactly one thousand", 1000, "$1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Currency(tt.amount); result != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, result, tt.expected)
			}
		})
	}
}

func TestWholeCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Rounds up", 1234.56, "$1,235"},
		{"Rounds down", 1234.4, "$1,234"},
		{"Millions", 5000000.0, "$5,000,000"},
		{"Negative", -101222.0, "-$101,222"},
		{"Hundreds keep no separator", 999.0, "$999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := WholeCurrency(tt.amount); result != tt.expected {
				t.Errorf("WholeCurrency(%v) = %q, expected %q", tt.amount, result, tt.expected)
			}
		})
	}
}
