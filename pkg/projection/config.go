package projection

import (
	"github.com/shopspring/decimal"

	"github.com/ecofinanzas/savings-engine/pkg/constants"
)

// Config holds the business rules applied on top of the raw savings
// numbers. They encode jurisdiction-specific regulation, so they are
// injected by the caller instead of being baked into the engine.
type Config struct {
	// FeePercent is the fraction of the interest saved charged as a
	// success fee.
	FeePercent decimal.Decimal

	// MinimumFee is the absolute floor on the fee, in currency. It
	// applies even when the savings are zero.
	MinimumFee decimal.Decimal

	// TaxRate is the value-added tax applied on top of the fee.
	TaxRate decimal.Decimal

	// MaxInstallmentToIncomeRatio is the legal ceiling for the fraction
	// of income an installment may consume.
	MaxInstallmentToIncomeRatio decimal.Decimal
}

// DefaultConfig returns the rule set the engine ships with.
func DefaultConfig() Config {
	return Config{
		FeePercent:                  decimal.NewFromFloat(constants.DefaultFeePercent),
		MinimumFee:                  decimal.NewFromFloat(constants.DefaultMinimumFee),
		TaxRate:                     decimal.NewFromFloat(constants.DefaultTaxRate),
		MaxInstallmentToIncomeRatio: decimal.NewFromFloat(constants.DefaultMaxInstallmentToIncomeRatio),
	}
}
