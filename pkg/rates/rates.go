// Package rates converts between effective annual and effective monthly
// interest rates.
package rates

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/ecofinanzas/savings-engine/pkg/constants"
	"github.com/ecofinanzas/savings-engine/pkg/moneyutil"
)

var one = decimal.NewFromInt(1)

// AnnualToMonthly converts an effective annual rate to the equivalent
// effective monthly rate: (1+EA)^(1/12) - 1, rounded to six decimals.
// Non-positive rates map to zero; a free or promotional loan is "no
// interest", not invalid input.
func AnnualToMonthly(annual decimal.Decimal) decimal.Decimal {
	if annual.Sign() <= 0 {
		return decimal.Zero
	}

	// The fractional exponent is the one step computed in floating
	// point; the result is re-rounded to the rate precision immediately.
	base, _ := one.Add(annual).Float64()
	monthly := math.Pow(base, 1.0/constants.MonthsPerYear) - 1.0
	return moneyutil.RoundRate(decimal.NewFromFloat(monthly))
}

// MonthlyToAnnual converts an effective monthly rate to the equivalent
// effective annual rate: (1+rm)^12 - 1, rounded to six decimals.
// Non-positive rates map to zero.
func MonthlyToAnnual(monthly decimal.Decimal) decimal.Decimal {
	if monthly.Sign() <= 0 {
		return decimal.Zero
	}

	base, _ := one.Add(monthly).Float64()
	annual := math.Pow(base, constants.MonthsPerYear) - 1.0
	return moneyutil.RoundRate(decimal.NewFromFloat(annual))
}
