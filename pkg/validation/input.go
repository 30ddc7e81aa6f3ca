// Package validation provides common validation utilities for raw
// user-facing input. Parsing failures are split into format errors
// (non-numeric text) and range errors (numeric but out of bounds) so
// front ends can re-prompt with the right message.
package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/loan-underwriter/pkg/constants"
)

// ErrFormat indicates input that could not be parsed as the expected
// numeric type.
var ErrFormat = errors.New("invalid format")

// ErrRange indicates a numeric value outside the permitted bounds.
var ErrRange = errors.New("value out of range")

// ParsePositiveAmount parses a positive decimal amount (loan principal or
// monthly income) from a raw string.
func ParsePositiveAmount(raw string) (float64, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// Out-of-range floats parse to +/-Inf; the underwriting engine
		// handles those via its overflow sentinel, so only syntax failures
		// are format errors here.
		return 0, fmt.Errorf("%w: expected a numeric value, got %q", ErrFormat, raw)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%w: expected a positive amount, got %s", ErrRange, trimmed)
	}
	return value, nil
}

// ParseTermYears parses a loan term in whole years and enforces the
// category bounds [1, maxTermYears].
func ParseTermYears(raw string, maxTermYears int) (int, error) {
	trimmed := strings.TrimSpace(raw)
	term, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: expected a whole number of years, got %q", ErrFormat, raw)
	}
	if term < constants.MinTermYears || term > maxTermYears {
		return 0, fmt.Errorf("%w: term must be between %d and %d years, got %d",
			ErrRange, constants.MinTermYears, maxTermYears, term)
	}
	return term, nil
}
