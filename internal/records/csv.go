// Package records persists finalized loan decisions to an append-only CSV
// store.
package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/iwvelando/loan-underwriter/internal/underwriting"
	"go.uber.org/zap"
)

// Header is the fixed, ordered header contract for the record store. It is
// written exactly once, only when the store is newly created.
var Header = []string{
	"Loan Type",
	"Loan Amount",
	"Interest Rate",
	"Term",
	"Monthly Payment",
	"Total Interest",
	"Status",
}

// Store appends loan records to a CSV file. The file is opened and closed
// within each Append call; there is no cross-call handle to leak.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore returns a store writing to the given path.
func NewStore(logger *zap.Logger, path string) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the store's file path, for user-facing messages.
func (s *Store) Path() string {
	return s.path
}

// Append writes one record, creating the file with its header row first if
// the store does not yet exist. The existence check and the write are
// best-effort, not atomic; concurrent writers are out of scope.
func (s *Store) Append(record underwriting.LoanRecord) error {
	exists := true
	if _, err := os.Stat(s.path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to check record store %s: %w", s.path, err)
		}
		exists = false
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open record store %s: %w", s.path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			s.logger.Warn("failed to close record store",
				zap.String("op", "records.Append"),
				zap.String("path", s.path),
				zap.Error(closeErr),
			)
		}
	}()

	writer := csv.NewWriter(file)
	if !exists {
		if err := writer.Write(Header); err != nil {
			return fmt.Errorf("failed to write record store header: %w", err)
		}
	}

	row := []string{
		record.LoanType,
		record.LoanAmount,
		record.InterestRate,
		record.Term,
		record.MonthlyPayment,
		record.TotalInterest,
		record.Status,
	}
	if err := writer.Write(row); err != nil {
		return fmt.Errorf("failed to write loan record: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush loan record: %w", err)
	}

	s.logger.Debug("loan record appended",
		zap.String("op", "records.Append"),
		zap.String("path", s.path),
		zap.String("loanType", record.LoanType),
	)

	return nil
}
