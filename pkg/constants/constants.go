// Package constants provides shared constants for the savings engine.
package constants

// Precision constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// MoneyDecimalPlaces is the precision for monetary amounts
	MoneyDecimalPlaces = 2

	// RateDecimalPlaces is the precision for interest rates
	RateDecimalPlaces = 6

	// FractionDecimalPlaces is the precision for ratios such as the
	// inflation-adjustment fraction
	FractionDecimalPlaces = 4

	// UnitDecimalPlaces is the precision for inflation-indexed unit balances
	UnitDecimalPlaces = 4
)

// DefaultMaxPeriods caps schedule generation at 50 years of monthly
// periods; it guards against inputs that never amortize.
const DefaultMaxPeriods = 600

// Default projection rules. They encode one jurisdiction's regulation
// and are overridable through configuration.
const (
	// DefaultFeePercent is the fraction of the interest saved charged as a success fee
	DefaultFeePercent = 0.03

	// DefaultMinimumFee is the absolute floor on the success fee
	DefaultMinimumFee = 500000.0

	// DefaultTaxRate is the value-added tax applied on top of the fee
	DefaultTaxRate = 0.19

	// DefaultMaxInstallmentToIncomeRatio is the regulatory ceiling for
	// the installment-to-income ratio
	DefaultMaxInstallmentToIncomeRatio = 0.30
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodyBytes is the default maximum request body size for the API (256 KB)
	DefaultMaxBodyBytes int64 = 256 * 1024
)
