// Package loan defines the loan snapshot consumed by the calculation
// packages along with common loan arithmetic.
package loan

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is the kind shared by all snapshot validation errors.
// Callers can match it with errors.Is to distinguish corrupted input
// from calculation failures.
var ErrInvalidInput = errors.New("invalid loan input")

// Validation errors
var (
	ErrNegativeBalance     = fmt.Errorf("%w: outstanding balance cannot be negative", ErrInvalidInput)
	ErrNegativePrincipal   = fmt.Errorf("%w: original principal cannot be negative", ErrInvalidInput)
	ErrNegativeInstallment = fmt.Errorf("%w: current installment cannot be negative", ErrInvalidInput)
)

// Snapshot captures the observed state of a fixed-rate loan at analysis
// time. It is built once per calculation request from already-resolved
// values and never mutated; if the balance is denominated in an
// inflation-indexed unit the caller converts it to currency first.
type Snapshot struct {
	// OutstandingBalance is the current principal owed, in currency.
	OutstandingBalance decimal.Decimal

	// CurrentInstallment is the fixed periodic payment actually being
	// charged: subsidy already applied, insurance included, extra
	// payments excluded.
	CurrentInstallment decimal.Decimal

	// RemainingInstallments is the number of contracted periods left.
	RemainingInstallments int

	// AnnualEffectiveRate is the effective annual interest rate as a
	// fraction, e.g. 0.0471 for 4.71% EA.
	AnnualEffectiveRate decimal.Decimal

	// OriginalPrincipal is the amount originally lent.
	OriginalPrincipal decimal.Decimal

	// MonthlySubsidy is the portion of the full installment covered by
	// a subsidy program, zero when none applies.
	MonthlySubsidy decimal.Decimal

	// MonthlyInsurance is the insurance component bundled into the
	// installment, zero when unknown.
	MonthlyInsurance decimal.Decimal

	// InflationIndexed reports whether the balance is denominated in an
	// inflation-indexed unit; it drives the inflation block of the
	// credit summary.
	InflationIndexed bool
}

// Validate rejects snapshots whose core amounts are negative. Those
// indicate corrupted upstream data rather than merely missing optional
// fields, so they fail loudly instead of degrading.
func (s Snapshot) Validate() error {
	if s.OutstandingBalance.IsNegative() {
		return ErrNegativeBalance
	}
	if s.OriginalPrincipal.IsNegative() {
		return ErrNegativePrincipal
	}
	if s.CurrentInstallment.IsNegative() {
		return ErrNegativeInstallment
	}
	return nil
}
