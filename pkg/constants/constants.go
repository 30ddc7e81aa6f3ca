// Package constants provides shared constants for the loan-underwriter application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Underwriting policy defaults
const (
	// DefaultDebtRatioLimit caps the monthly payment as a fraction of
	// monthly income (50%).
	DefaultDebtRatioLimit = 0.50

	// MinTermYears is the smallest loan term any category accepts.
	MinTermYears = 1
)

// Record store constants
const (
	// DefaultRecordsFile is the default CSV file for finalized loan records
	DefaultRecordsFile = "loan_records.csv"

	// RecordStatusFinalized is the status written for every saved record
	RecordStatusFinalized = "Finalized"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"
)
