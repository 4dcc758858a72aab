// Package summary derives reporting aggregates from a loan snapshot.
// The summary is informational display data; it plays no part in the
// savings projection itself.
package summary

import (
	"github.com/shopspring/decimal"

	"github.com/ecofinanzas/savings-engine/pkg/loan"
	"github.com/ecofinanzas/savings-engine/pkg/moneyutil"
)

// InflationAdjustment reports how much an inflation-indexed balance has
// grown relative to the amount originally lent.
type InflationAdjustment struct {
	// Amount is the outstanding balance minus the original principal.
	Amount decimal.Decimal

	// Fraction is Amount as a fraction of the original principal.
	Fraction decimal.Decimal
}

// CreditSummary groups the reporting figures in four blocks: basic
// figures, current balance, the optional inflation adjustment, and the
// non-principal cost total.
type CreditSummary struct {
	// Basic figures
	OriginalPrincipal     decimal.Decimal
	PeriodsContracted     int
	PeriodsPaid           int
	PeriodsRemaining      int
	CurrentInstallment    decimal.Decimal
	MonthlySubsidy        decimal.Decimal
	FullInstallment       decimal.Decimal // installment before the subsidy is applied
	AmountPaidToDate      decimal.Decimal
	SubsidyReceivedToDate decimal.Decimal
	AmountPaidToBank      decimal.Decimal

	// Current position with the bank
	OutstandingBalance decimal.Decimal

	// InflationAdjustment is present only for inflation-indexed loans.
	InflationAdjustment *InflationAdjustment

	// NonPrincipalCost is everything paid to date that did not amortize
	// principal (interest, insurance), floored at zero.
	NonPrincipalCost decimal.Decimal
}

// Summarize computes the credit summary for a loan after periodsPaid of
// the periodsContracted installments.
func Summarize(snap loan.Snapshot, periodsPaid, periodsContracted int) (CreditSummary, error) {
	if err := snap.Validate(); err != nil {
		return CreditSummary{}, err
	}

	paid := decimal.NewFromInt(int64(periodsPaid))
	amountPaidToDate := snap.CurrentInstallment.Mul(paid)
	subsidyReceived := snap.MonthlySubsidy.Mul(paid)
	amountPaidToBank := amountPaidToDate.Add(subsidyReceived)

	var adjustment *InflationAdjustment
	if snap.InflationIndexed {
		amount := snap.OutstandingBalance.Sub(snap.OriginalPrincipal)
		fraction := decimal.Zero
		if snap.OriginalPrincipal.Sign() > 0 {
			fraction = moneyutil.RoundFraction(amount.Div(snap.OriginalPrincipal))
		}
		adjustment = &InflationAdjustment{Amount: amount, Fraction: fraction}
	}

	// Estimated from the balance delta; manual overrides upstream can
	// make it negative, so it is floored at zero.
	amortized := snap.OriginalPrincipal.Sub(snap.OutstandingBalance)
	nonPrincipal := amountPaidToBank.Sub(amortized)
	if nonPrincipal.IsNegative() {
		nonPrincipal = decimal.Zero
	}

	return CreditSummary{
		OriginalPrincipal:     snap.OriginalPrincipal,
		PeriodsContracted:     periodsContracted,
		PeriodsPaid:           periodsPaid,
		PeriodsRemaining:      periodsContracted - periodsPaid,
		CurrentInstallment:    snap.CurrentInstallment,
		MonthlySubsidy:        snap.MonthlySubsidy,
		FullInstallment:       snap.CurrentInstallment.Add(snap.MonthlySubsidy),
		AmountPaidToDate:      amountPaidToDate,
		SubsidyReceivedToDate: subsidyReceived,
		AmountPaidToBank:      amountPaidToBank,
		OutstandingBalance:    snap.OutstandingBalance,
		InflationAdjustment:   adjustment,
		NonPrincipalCost:      nonPrincipal,
	}, nil
}
