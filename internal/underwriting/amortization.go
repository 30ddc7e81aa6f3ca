// Package underwriting implements the loan underwriting engine: the
// amortization math, the debt-to-income affordability policy, the loan
// category catalog, and the negotiation session that drives a borrower's
// inputs toward an approved loan.
package underwriting

import (
	"math"

	"github.com/iwvelando/loan-underwriter/pkg/constants"
	"github.com/iwvelando/loan-underwriter/pkg/mathutil"
)

// PaymentQuote holds the derived payment values for one evaluation round.
// MonthlyPayment is rounded to cents so that displayed, compared, and
// persisted values agree; +Inf marks a payment that cannot be represented
// and is unaffordable under any policy.
type PaymentQuote struct {
	MonthlyPayment float64
	TotalInterest  float64
}

// CalculateMonthlyPayment calculates the raw monthly payment for a loan
// using the standard amortization formula
// M = P * r(1+r)^n / [(1+r)^n - 1].
//
// Non-positive principal or term is a degenerate pass-through, not an
// error, and yields a zero payment. The degenerate check must stay ahead
// of the zero-rate branch so the simple division never sees a zero term.
// Arithmetic that cannot be represented collapses to +Inf rather than
// faulting.
func CalculateMonthlyPayment(principal, annualRatePercent float64, termYears int) float64 {
	if principal <= 0 || termYears <= 0 {
		return 0
	}

	numPayments := float64(termYears * constants.MonthsPerYear)
	monthlyRate := annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)

	if monthlyRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / numPayments
	}

	power := math.Pow(1.00+monthlyRate, numPayments)
	if math.IsInf(power, 1) {
		// (1+r)^n overflowed; the quotient below would be Inf/Inf.
		return math.Inf(1)
	}

	payment := principal * monthlyRate * power / (power - 1.00)
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return math.Inf(1)
	}
	return payment
}

// CalculateTotalInterest calculates the total interest paid over the life
// of the loan. The monthlyPayment argument must be the same rounded value
// that is displayed and persisted, otherwise saved totals drift from what
// the borrower saw. A +Inf payment yields +Inf interest.
func CalculateTotalInterest(principal, monthlyPayment float64, termYears int) float64 {
	if math.IsInf(monthlyPayment, 1) {
		return math.Inf(1)
	}
	totalPaid := monthlyPayment * float64(termYears*constants.MonthsPerYear)
	return totalPaid - principal
}

// Quote computes the full payment quote for one evaluation round. The
// monthly payment is rounded to cents before total interest is derived
// from it.
func Quote(principal, annualRatePercent float64, termYears int) PaymentQuote {
	if principal <= 0 || termYears <= 0 {
		return PaymentQuote{}
	}
	monthlyPayment := mathutil.Round(CalculateMonthlyPayment(principal, annualRatePercent, termYears))
	return PaymentQuote{
		MonthlyPayment: monthlyPayment,
		TotalInterest:  mathutil.Round(CalculateTotalInterest(principal, monthlyPayment, termYears)),
	}
}
