package loan

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFixedInstallment(t *testing.T) {
	tests := []struct {
		name          string
		principal     string
		monthlyRate   string
		periods       int
		expectedRange []string // [min, max]
	}{
		{
			name:          "Standard 30-year mortgage",
			principal:     "45200180",
			monthlyRate:   "0.003843",
			periods:       360,
			expectedRange: []string{"230000", "234000"}, // around 232,000
		},
		{
			name:          "5-year loan",
			principal:     "20000",
			monthlyRate:   "0.0033",
			periods:       60,
			expectedRange: []string{"365", "375"},
		},
		{
			name:          "Zero rate falls back to principal over periods",
			principal:     "12000",
			monthlyRate:   "0",
			periods:       60,
			expectedRange: []string{"200", "200"},
		},
		{
			name:          "Negative rate treated as no interest",
			principal:     "1200",
			monthlyRate:   "-0.01",
			periods:       12,
			expectedRange: []string{"100", "100"},
		},
		{
			name:          "Zero principal",
			principal:     "0",
			monthlyRate:   "0.004",
			periods:       120,
			expectedRange: []string{"0", "0"},
		},
		{
			name:          "Zero periods",
			principal:     "100000",
			monthlyRate:   "0.004",
			periods:       0,
			expectedRange: []string{"0", "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FixedInstallment(
				decimal.RequireFromString(tt.principal),
				decimal.RequireFromString(tt.monthlyRate),
				tt.periods,
			)

			min := decimal.RequireFromString(tt.expectedRange[0])
			max := decimal.RequireFromString(tt.expectedRange[1])
			if result.LessThan(min) || result.GreaterThan(max) {
				t.Errorf("FixedInstallment(%s, %s, %d) = %s, expected range [%s, %s]",
					tt.principal, tt.monthlyRate, tt.periods, result, min, max)
			}
		})
	}
}

func TestFixedInstallmentCoversInterest(t *testing.T) {
	principal := decimal.RequireFromString("100000")
	rate := decimal.RequireFromString("0.005")

	installment := FixedInstallment(principal, rate, 240)
	firstInterest := principal.Mul(rate)

	if installment.LessThanOrEqual(firstInterest) {
		t.Errorf("FixedInstallment() = %s, expected above first period interest %s",
			installment, firstInterest)
	}
}
