// Package moneyutil provides decimal helpers shared by the calculation packages.
package moneyutil

import (
	"github.com/shopspring/decimal"

	"github.com/ecofinanzas/savings-engine/pkg/constants"
)

// OneCent is the smallest representable monetary amount; balances at or
// below it are treated as settled.
var OneCent = decimal.New(1, -constants.MoneyDecimalPlaces)

// RoundMoney rounds a value to two decimals, half-up for the
// non-negative amounts the engine handles.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(constants.MoneyDecimalPlaces)
}

// RoundRate rounds an interest rate to six decimal places.
func RoundRate(d decimal.Decimal) decimal.Decimal {
	return d.Round(constants.RateDecimalPlaces)
}

// RoundFraction rounds a ratio to four decimal places.
func RoundFraction(d decimal.Decimal) decimal.Decimal {
	return d.Round(constants.FractionDecimalPlaces)
}

// IsSettled checks whether a balance is effectively zero (at most one cent).
func IsSettled(balance decimal.Decimal) bool {
	return balance.LessThanOrEqual(OneCent)
}
