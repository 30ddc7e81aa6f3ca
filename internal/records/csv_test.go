package records

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/loan-underwriter/internal/underwriting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(loanType string) underwriting.LoanRecord {
	return underwriting.LoanRecord{
		LoanType:       loanType,
		LoanAmount:     "100000.00",
		InterestRate:   "5.2%",
		Term:           "10 years",
		MonthlyPayment: "1070.55",
		TotalInterest:  "28466.00",
		Status:         "Finalized",
	}
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loan_records.csv")
	store := NewStore(nil, path)

	require.NoError(t, store.Append(sampleRecord("Housing Loan")))
	require.NoError(t, store.Append(sampleRecord("Auto Loan")))

	rows := readAll(t, path)
	require.Len(t, rows, 3, "header plus two records")

	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "Housing Loan", rows[1][0])
	assert.Equal(t, "Auto Loan", rows[2][0])
	assert.Equal(t, "Finalized", rows[1][6])
	assert.Equal(t, "Finalized", rows[2][6])
}

func TestAppendRowShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loan_records.csv")
	store := NewStore(nil, path)

	require.NoError(t, store.Append(sampleRecord("Personal Loan")))

	rows := readAll(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"Personal Loan", "100000.00", "5.2%", "10 years", "1070.55", "28466.00", "Finalized",
	}, rows[1])
}

func TestAppendPreservesExistingFile(t *testing.T) {
	// A pre-existing store must not receive a second header.
	path := filepath.Join(t.TempDir(), "loan_records.csv")
	store := NewStore(nil, path)
	require.NoError(t, store.Append(sampleRecord("Housing Loan")))

	reopened := NewStore(nil, path)
	require.NoError(t, reopened.Append(sampleRecord("Auto Loan")))

	rows := readAll(t, path)
	require.Len(t, rows, 3)
	for _, row := range rows[1:] {
		assert.NotEqual(t, Header[0], row[0], "header must appear only on the first line")
	}
}

func TestAppendReportsFailure(t *testing.T) {
	store := NewStore(nil, filepath.Join(t.TempDir(), "missing", "loan_records.csv"))

	err := store.Append(sampleRecord("Housing Loan"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loan_records.csv")
}
