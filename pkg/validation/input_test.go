package validation

import (
	"errors"
	"math"
	"testing"
)

func TestParsePositiveAmount(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		expected  float64
		expectErr error
	}{
		{name: "Plain amount", raw: "100000", expected: 100000},
		{name: "Decimal amount", raw: "2500.75", expected: 2500.75},
		{name: "Leading dollar sign", raw: "$1200", expected: 1200},
		{name: "Surrounding whitespace", raw: "  350.5  ", expected: 350.5},
		{name: "Non-numeric", raw: "abc", expectErr: ErrFormat},
		{name: "Empty", raw: "", expectErr: ErrFormat},
		{name: "Mixed", raw: "12k", expectErr: ErrFormat},
		{name: "Zero", raw: "0", expectErr: ErrRange},
		{name: "Negative", raw: "-500", expectErr: ErrRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := ParsePositiveAmount(tt.raw)

			if tt.expectErr != nil {
				if !errors.Is(err, tt.expectErr) {
					t.Errorf("ParsePositiveAmount(%q) error = %v, expected %v", tt.raw, err, tt.expectErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePositiveAmount(%q) unexpected error: %v", tt.raw, err)
			}
			if value != tt.expected {
				t.Errorf("ParsePositiveAmount(%q) = %v, expected %v", tt.raw, value, tt.expected)
			}
		})
	}
}

func TestParsePositiveAmountOverflow(t *testing.T) {
	// Astronomical amounts are not a format error; they parse to +Inf and
	// flow into the engine's overflow sentinel.
	value, err := ParsePositiveAmount("1e1000")
	if err != nil {
		t.Fatalf("ParsePositiveAmount(1e1000) unexpected error: %v", err)
	}
	if !math.IsInf(value, 1) {
		t.Errorf("ParsePositiveAmount(1e1000) = %v, expected +Inf", value)
	}
}

func TestParseTermYears(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		maxTerm   int
		expected  int
		expectErr error
	}{
		{name: "Valid term", raw: "10", maxTerm: 25, expected: 10},
		{name: "Minimum term", raw: "1", maxTerm: 6, expected: 1},
		{name: "Maximum term", raw: "6", maxTerm: 6, expected: 6},
		{name: "Above maximum", raw: "7", maxTerm: 6, expectErr: ErrRange},
		{name: "Zero", raw: "0", maxTerm: 6, expectErr: ErrRange},
		{name: "Negative", raw: "-2", maxTerm: 6, expectErr: ErrRange},
		{name: "Fractional", raw: "2.5", maxTerm: 6, expectErr: ErrFormat},
		{name: "Non-numeric", raw: "ten", maxTerm: 6, expectErr: ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, err := ParseTermYears(tt.raw, tt.maxTerm)

			if tt.expectErr != nil {
				if !errors.Is(err, tt.expectErr) {
					t.Errorf("ParseTermYears(%q, %d) error = %v, expected %v", tt.raw, tt.maxTerm, err, tt.expectErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTermYears(%q, %d) unexpected error: %v", tt.raw, tt.maxTerm, err)
			}
			if term != tt.expected {
				t.Errorf("ParseTermYears(%q, %d) = %v, expected %v", tt.raw, tt.maxTerm, term, tt.expected)
			}
		})
	}
}
