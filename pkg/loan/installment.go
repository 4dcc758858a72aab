package loan

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/ecofinanzas/savings-engine/pkg/moneyutil"
)

var one = decimal.NewFromInt(1)

// FixedInstallment computes the constant periodic payment for a loan
// using the standard amortization formula C = P*r*(1+r)^n / ((1+r)^n - 1).
//
// A non-positive rate degrades to principal/periods; a non-positive
// principal or period count returns zero. The projection engine uses
// the loan's observed installment rather than recomputing it, because
// real installments carry insurance and subsidy adjustments the pure
// formula does not capture.
func FixedInstallment(principal, monthlyRate decimal.Decimal, periods int) decimal.Decimal {
	if principal.Sign() <= 0 || periods <= 0 {
		return decimal.Zero
	}

	if monthlyRate.Sign() <= 0 {
		return moneyutil.RoundMoney(principal.Div(decimal.NewFromInt(int64(periods))))
	}

	rate, _ := monthlyRate.Float64()
	factor := decimal.NewFromFloat(math.Pow(1.0+rate, float64(periods)))

	numerator := principal.Mul(monthlyRate).Mul(factor)
	denominator := factor.Sub(one)
	return moneyutil.RoundMoney(numerator.Div(denominator))
}
