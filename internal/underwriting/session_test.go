package underwriting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCategory(t *testing.T, name string) Category {
	t.Helper()
	category, err := DefaultCatalog().Lookup(name)
	require.NoError(t, err)
	return category
}

func TestSessionApprovedFirstRound(t *testing.T) {
	category := mustCategory(t, "Housing Loan")
	session, err := NewSession(nil, category, DefaultPolicy(), Input{
		Principal:     100000,
		MonthlyIncome: 3000,
		TermYears:     10,
	})
	require.NoError(t, err)

	round, err := session.Evaluate()
	require.NoError(t, err)
	assert.True(t, round.Affordable)
	assert.Equal(t, 1500.0, round.MaxAllowedPayment)
	assert.True(t, round.CanExtendTerm)

	outcome, err := session.Approve()
	require.NoError(t, err)
	assert.True(t, outcome.Approved)
	assert.Equal(t, StateApproved, session.State())
	assert.Equal(t, 100000.0, outcome.Principal)
	assert.Equal(t, 10, outcome.TermYears)

	record, err := NewLoanRecord(outcome)
	require.NoError(t, err)
	assert.Equal(t, "Finalized", record.Status)
	assert.Equal(t, "Housing Loan", record.LoanType)
	assert.Equal(t, "100000.00", record.LoanAmount)
	assert.Equal(t, "5.2%", record.InterestRate)
	assert.Equal(t, "10 years", record.Term)
}

func TestSessionTermAtMaximumOffersNoExtension(t *testing.T) {
	category := mustCategory(t, "Auto Loan")
	session, err := NewSession(nil, category, DefaultPolicy(), Input{
		Principal:     30000,
		MonthlyIncome: 500,
		TermYears:     6,
	})
	require.NoError(t, err)

	round, err := session.Evaluate()
	require.NoError(t, err)
	assert.False(t, round.Affordable)
	assert.Equal(t, 250.0, round.MaxAllowedPayment)
	assert.Greater(t, round.Quote.MonthlyPayment, round.MaxAllowedPayment)
	assert.False(t, round.CanExtendTerm, "term already at the category maximum")

	// Term extension is not offered and must be refused if forced.
	err = session.AdjustTerm(6)
	assert.ErrorIs(t, err, ErrTermAtMaximum)

	outcome := session.Cancel()
	assert.False(t, outcome.Approved)
	assert.Equal(t, StateCancelled, session.State())

	// Terminal: no further rounds.
	_, err = session.Evaluate()
	assert.ErrorIs(t, err, ErrSessionClosed)
	_, err = session.Approve()
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSessionAdjustPrincipalConverges(t *testing.T) {
	category := mustCategory(t, "Auto Loan")
	session, err := NewSession(nil, category, DefaultPolicy(), Input{
		Principal:     30000,
		MonthlyIncome: 500,
		TermYears:     6,
	})
	require.NoError(t, err)

	round, err := session.Evaluate()
	require.NoError(t, err)
	require.False(t, round.Affordable)

	require.NoError(t, session.AdjustPrincipal(10000))

	round, err = session.Evaluate()
	require.NoError(t, err)
	assert.True(t, round.Affordable)
	assert.Equal(t, 10000.0, round.Principal)

	outcome, err := session.Approve()
	require.NoError(t, err)
	assert.Equal(t, 10000.0, outcome.Principal)
}

func TestSessionAdjustTermConverges(t *testing.T) {
	category := mustCategory(t, "Housing Loan")
	session, err := NewSession(nil, category, DefaultPolicy(), Input{
		Principal:     200000,
		MonthlyIncome: 2500,
		TermYears:     10,
	})
	require.NoError(t, err)

	round, err := session.Evaluate()
	require.NoError(t, err)
	require.False(t, round.Affordable, "10-year term should exceed the $1250 ceiling")
	require.True(t, round.CanExtendTerm)

	require.NoError(t, session.AdjustTerm(25))

	round, err = session.Evaluate()
	require.NoError(t, err)
	assert.True(t, round.Affordable, "25-year term should fall under the $1250 ceiling")
	assert.Equal(t, 25, round.TermYears)
}

func TestSessionInputValidation(t *testing.T) {
	category := mustCategory(t, "Personal Loan")
	policy := DefaultPolicy()

	tests := []struct {
		name  string
		input Input
	}{
		{name: "Zero principal", input: Input{Principal: 0, MonthlyIncome: 1000, TermYears: 5}},
		{name: "Negative income", input: Input{Principal: 5000, MonthlyIncome: -1, TermYears: 5}},
		{name: "Term below minimum", input: Input{Principal: 5000, MonthlyIncome: 1000, TermYears: 0}},
		{name: "Term above category maximum", input: Input{Principal: 5000, MonthlyIncome: 1000, TermYears: 11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSession(nil, category, policy, tt.input)
			assert.Error(t, err)
		})
	}
}

func TestSessionGuardsOrdering(t *testing.T) {
	category := mustCategory(t, "Personal Loan")
	session, err := NewSession(nil, category, DefaultPolicy(), Input{
		Principal:     100000,
		MonthlyIncome: 1000,
		TermYears:     5,
	})
	require.NoError(t, err)

	// No decision or adjustment before the first round.
	_, err = session.Approve()
	assert.ErrorIs(t, err, ErrNotEvaluated)
	assert.ErrorIs(t, session.AdjustPrincipal(5000), ErrNotEvaluated)

	round, err := session.Evaluate()
	require.NoError(t, err)
	require.False(t, round.Affordable)

	// Approval requires an affordable round.
	_, err = session.Approve()
	assert.ErrorIs(t, err, ErrNotAffordable)

	// Adjustments re-validate even pre-validated values.
	assert.Error(t, session.AdjustPrincipal(-5))
	assert.Error(t, session.AdjustTerm(11))

	// A valid adjustment invalidates the stale round until re-evaluation.
	require.NoError(t, session.AdjustTerm(10))
	_, err = session.Approve()
	assert.ErrorIs(t, err, ErrNotEvaluated)
}

func TestNewLoanRecordRequiresApproval(t *testing.T) {
	_, err := NewLoanRecord(Outcome{Approved: false})
	assert.Error(t, err)
}
