// Package schedule generates amortization schedules for a balance under
// a fixed installment plus an optional constant extra principal payment.
package schedule

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ecofinanzas/savings-engine/pkg/constants"
	"github.com/ecofinanzas/savings-engine/pkg/moneyutil"
)

// Row holds one period's state in an amortization schedule.
type Row struct {
	Index              int
	OpeningBalance     decimal.Decimal
	TotalPayment       decimal.Decimal
	InterestPortion    decimal.Decimal
	ScheduledPrincipal decimal.Decimal
	ExtraPrincipal     decimal.Decimal
	ClosingBalance     decimal.Decimal
}

// Result holds a complete schedule and its aggregates.
type Result struct {
	PeriodCount    int
	TotalPaid      decimal.Decimal
	TotalInterest  decimal.Decimal
	TotalPrincipal decimal.Decimal
	Rows           []Row

	// DidNotConverge reports that the period cap was hit with a balance
	// still outstanding, e.g. when the installment does not cover the
	// first period's interest. The partial schedule is still returned.
	DidNotConverge bool
}

// Generator produces amortization schedules.
type Generator struct {
	logger     *zap.Logger
	maxPeriods int
}

// NewGenerator creates a generator with the default period cap.
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger, maxPeriods: constants.DefaultMaxPeriods}
}

// NewGeneratorWithCap creates a generator with a custom period cap;
// non-positive caps fall back to the default.
func NewGeneratorWithCap(logger *zap.Logger, maxPeriods int) *Generator {
	g := NewGenerator(logger)
	if maxPeriods > 0 {
		g.maxPeriods = maxPeriods
	}
	return g
}

// Generate amortizes openingBalance under a fixed base installment plus
// a constant extra principal payment, period by period, until the
// balance is settled or the period cap is reached.
//
// Each period the interest is computed and rounded first, then both
// payment components are applied; this mirrors standard amortizing-loan
// accounting and keeps rounding deterministic per period instead of
// letting drift accumulate across the schedule. In the final period the
// borrower pays exactly interest plus the remaining balance, never
// more, and the extra payment is suppressed.
func (g *Generator) Generate(openingBalance, monthlyRate, baseInstallment, extraPayment decimal.Decimal) Result {
	var (
		rows           []Row
		totalPaid      decimal.Decimal
		totalInterest  decimal.Decimal
		totalPrincipal decimal.Decimal
	)

	balance := openingBalance
	period := 0

	for balance.GreaterThan(moneyutil.OneCent) && period < g.maxPeriods {
		period++
		opening := balance

		interest := moneyutil.RoundMoney(balance.Mul(monthlyRate))
		scheduledPrincipal := baseInstallment.Sub(interest)

		var extraApplied, payment decimal.Decimal
		if balance.LessThanOrEqual(scheduledPrincipal.Add(extraPayment)) {
			// Final period: pay off exactly what remains.
			scheduledPrincipal = balance
			extraApplied = decimal.Zero
			payment = interest.Add(balance)
		} else {
			extraApplied = extraPayment
			payment = baseInstallment.Add(extraPayment)
		}

		balance = balance.Sub(scheduledPrincipal).Sub(extraApplied)
		if balance.IsNegative() {
			balance = decimal.Zero
		}

		totalInterest = totalInterest.Add(interest)
		totalPrincipal = totalPrincipal.Add(scheduledPrincipal).Add(extraApplied)
		totalPaid = totalPaid.Add(payment)

		rows = append(rows, Row{
			Index:              period,
			OpeningBalance:     opening,
			TotalPayment:       payment,
			InterestPortion:    interest,
			ScheduledPrincipal: scheduledPrincipal,
			ExtraPrincipal:     extraApplied,
			ClosingBalance:     balance,
		})
	}

	stalled := !moneyutil.IsSettled(balance)
	if stalled {
		g.logger.Debug("period cap reached with balance outstanding",
			zap.String("op", "schedule.Generate"),
			zap.Int("periods", period),
			zap.String("balance", balance.String()),
		)
	}

	return Result{
		PeriodCount:    period,
		TotalPaid:      moneyutil.RoundMoney(totalPaid),
		TotalInterest:  moneyutil.RoundMoney(totalInterest),
		TotalPrincipal: moneyutil.RoundMoney(totalPrincipal),
		Rows:           rows,
		DidNotConverge: stalled,
	}
}
