package underwriting

import (
	"math"
	"testing"
)

func TestMaxAllowedPayment(t *testing.T) {
	tests := []struct {
		name     string
		ratio    float64
		income   float64
		expected float64
	}{
		{name: "Standard policy", ratio: 0.50, income: 3000, expected: 1500},
		{name: "Low income", ratio: 0.50, income: 500, expected: 250},
		{name: "Alternate ratio", ratio: 0.35, income: 2000, expected: 700},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := Policy{DebtRatioLimit: tt.ratio}
			if result := policy.MaxAllowedPayment(tt.income); result != tt.expected {
				t.Errorf("MaxAllowedPayment(%v) = %v, expected %v", tt.income, result, tt.expected)
			}
		})
	}
}

func TestIsAffordable(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name     string
		payment  float64
		income   float64
		expected bool
	}{
		{name: "Well under the ceiling", payment: 400, income: 3000, expected: true},
		{name: "Exactly at the ceiling", payment: 1500, income: 3000, expected: true},
		{name: "One cent over", payment: 1500.01, income: 3000, expected: false},
		{name: "Unrepresentable payment", payment: math.Inf(1), income: 1e300, expected: false},
		{name: "Zero payment", payment: 0, income: 100, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := PaymentQuote{MonthlyPayment: tt.payment}
			if result := policy.IsAffordable(quote, tt.income); result != tt.expected {
				t.Errorf("IsAffordable(%v, %v) = %v, expected %v", tt.payment, tt.income, result, tt.expected)
			}
		})
	}
}
