package underwriting

import (
	"github.com/iwvelando/loan-underwriter/pkg/constants"
)

// Policy holds the affordability rules applied to every evaluation round.
// The debt ratio limit is a single fixed policy constant, not a per-category
// value.
type Policy struct {
	DebtRatioLimit float64
}

// DefaultPolicy returns the standard 50% debt-to-income policy.
func DefaultPolicy() Policy {
	return Policy{DebtRatioLimit: constants.DefaultDebtRatioLimit}
}

// MaxAllowedPayment returns the largest monthly payment the policy permits
// for the given monthly income.
func (p Policy) MaxAllowedPayment(monthlyIncome float64) float64 {
	return monthlyIncome * p.DebtRatioLimit
}

// IsAffordable reports whether the quoted payment fits within the policy
// ceiling. The boundary is inclusive: a payment exactly at the ceiling is
// affordable. A +Inf payment never is.
func (p Policy) IsAffordable(quote PaymentQuote, monthlyIncome float64) bool {
	return quote.MonthlyPayment <= p.MaxAllowedPayment(monthlyIncome)
}
