package underwriting

import (
	"errors"

	"github.com/iwvelando/loan-underwriter/pkg/constants"
	"github.com/iwvelando/loan-underwriter/pkg/format"
)

// LoanRecord is the flattened, string-formatted snapshot of an approved
// outcome; it is the only entity that crosses into persistence. Immutable
// once built and written exactly once per successful session.
type LoanRecord struct {
	LoanType       string
	LoanAmount     string
	InterestRate   string
	Term           string
	MonthlyPayment string
	TotalInterest  string
	Status         string
}

// RecordSink appends a finalized loan record to persistent storage. The
// engine depends on persistence only through this contract.
type RecordSink interface {
	Append(record LoanRecord) error
}

// NewLoanRecord builds the persisted record from an approved outcome. The
// quote values are already rounded to cents, so the record carries exactly
// what the borrower was shown.
func NewLoanRecord(outcome Outcome) (LoanRecord, error) {
	if !outcome.Approved {
		return LoanRecord{}, errors.New("loan record requires an approved outcome")
	}
	return LoanRecord{
		LoanType:       outcome.Category.Name,
		LoanAmount:     format.Amount(outcome.Principal),
		InterestRate:   format.Percent(outcome.Category.AnnualRate),
		Term:           format.TermYears(outcome.TermYears),
		MonthlyPayment: format.Amount(outcome.Quote.MonthlyPayment),
		TotalInterest:  format.Amount(outcome.Quote.TotalInterest),
		Status:         constants.RecordStatusFinalized,
	}, nil
}
