package loan

import (
	"github.com/shopspring/decimal"

	"github.com/ecofinanzas/savings-engine/pkg/constants"
	"github.com/ecofinanzas/savings-engine/pkg/moneyutil"
)

// UnitsToCurrency converts a balance denominated in an inflation-indexed
// unit into currency at the given unit value, rounded to cents. The
// unit value itself comes from an external indicator lookup.
func UnitsToCurrency(units, unitValue decimal.Decimal) decimal.Decimal {
	return moneyutil.RoundMoney(units.Mul(unitValue))
}

// CurrencyToUnits converts a currency balance into inflation-indexed
// units at the given unit value, rounded to four decimals. A
// non-positive unit value returns zero.
func CurrencyToUnits(amount, unitValue decimal.Decimal) decimal.Decimal {
	if unitValue.Sign() <= 0 {
		return decimal.Zero
	}
	return amount.Div(unitValue).Round(constants.UnitDecimalPlaces)
}
