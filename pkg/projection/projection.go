// Package projection compares a loan's current payoff path against
// candidate extra monthly principal payments and derives the savings,
// fee, and income metrics for each candidate.
package projection

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ecofinanzas/savings-engine/pkg/constants"
	"github.com/ecofinanzas/savings-engine/pkg/loan"
	"github.com/ecofinanzas/savings-engine/pkg/moneyutil"
	"github.com/ecofinanzas/savings-engine/pkg/rates"
	"github.com/ecofinanzas/savings-engine/pkg/schedule"
)

var one = decimal.NewFromInt(1)

// Result holds the outcome of comparing the loan as-is against the same
// loan with a constant extra monthly principal payment.
type Result struct {
	OptionNumber int
	OptionLabel  string
	ExtraPayment decimal.Decimal

	NewPeriodCount int
	RemainingTime  TimeSpan
	PeriodsSaved   int
	TimeSaved      TimeSpan

	NewInstallment decimal.Decimal
	NewTotalPaid   decimal.Decimal
	InterestSaved  decimal.Decimal

	// PayoffMultiple is how many times the original principal will
	// ultimately be paid under the scenario.
	PayoffMultiple decimal.Decimal

	Fee                   decimal.Decimal
	FeeWithTax            decimal.Decimal
	MinimumRequiredIncome decimal.Decimal

	// DidNotConverge reports that the scenario schedule hit the period
	// cap without settling the balance; the metrics then describe a
	// truncated schedule.
	DidNotConverge bool
}

// Calculator projects savings scenarios under an injected rule set.
// It is a pure computation component and safe for concurrent use.
type Calculator struct {
	cfg       Config
	generator *schedule.Generator
	logger    *zap.Logger
}

// NewCalculator creates a calculator with the given rules.
func NewCalculator(cfg Config, logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{
		cfg:       cfg,
		generator: schedule.NewGenerator(logger),
		logger:    logger,
	}
}

// Project runs the baseline (no extra payment) and the candidate
// scenario for a single extra payment and derives the savings metrics.
func (c *Calculator) Project(snap loan.Snapshot, extraPayment decimal.Decimal, optionNumber int, optionLabel string) (Result, error) {
	if err := snap.Validate(); err != nil {
		return Result{}, err
	}

	monthlyRate := rates.AnnualToMonthly(snap.AnnualEffectiveRate)
	baseline := c.generator.Generate(snap.OutstandingBalance, monthlyRate, snap.CurrentInstallment, decimal.Zero)
	return c.compare(snap, baseline, monthlyRate, extraPayment, optionNumber, optionLabel), nil
}

// ProjectAll projects every candidate extra payment in order, numbering
// the results 1..N. Candidates beyond the supplied labels get ordinal
// default labels; duplicate candidates are legal and yield equal
// results. The zero-extra baseline is identical for every option by
// construction, so it is computed once per call.
func (c *Calculator) ProjectAll(snap loan.Snapshot, extraPayments []decimal.Decimal, labels []string) ([]Result, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	monthlyRate := rates.AnnualToMonthly(snap.AnnualEffectiveRate)
	baseline := c.generator.Generate(snap.OutstandingBalance, monthlyRate, snap.CurrentInstallment, decimal.Zero)

	results := make([]Result, 0, len(extraPayments))
	for i, extra := range extraPayments {
		label := fmt.Sprintf("Option %d", i+1)
		if i < len(labels) && labels[i] != "" {
			label = labels[i]
		}
		results = append(results, c.compare(snap, baseline, monthlyRate, extra, i+1, label))
	}
	return results, nil
}

func (c *Calculator) compare(snap loan.Snapshot, baseline schedule.Result, monthlyRate, extraPayment decimal.Decimal, optionNumber int, optionLabel string) Result {
	scenario := c.generator.Generate(snap.OutstandingBalance, monthlyRate, snap.CurrentInstallment, extraPayment)
	if scenario.DidNotConverge {
		c.logger.Debug("scenario schedule did not converge",
			zap.String("op", "projection.compare"),
			zap.String("option", optionLabel),
			zap.String("extraPayment", extraPayment.String()),
		)
	}

	periodsSaved := baseline.PeriodCount - scenario.PeriodCount
	interestSaved := baseline.TotalInterest.Sub(scenario.TotalInterest)
	newInstallment := snap.CurrentInstallment.Add(extraPayment)

	payoffMultiple := decimal.Zero
	if snap.OriginalPrincipal.Sign() > 0 {
		payoffMultiple = scenario.TotalPaid.Div(snap.OriginalPrincipal).Round(constants.MoneyDecimalPlaces)
	}

	fee := c.Fee(interestSaved)

	return Result{
		OptionNumber:          optionNumber,
		OptionLabel:           optionLabel,
		ExtraPayment:          extraPayment,
		NewPeriodCount:        scenario.PeriodCount,
		RemainingTime:         TimeSpanFromMonths(scenario.PeriodCount),
		PeriodsSaved:          periodsSaved,
		TimeSaved:             TimeSpanFromMonths(periodsSaved),
		NewInstallment:        newInstallment,
		NewTotalPaid:          scenario.TotalPaid,
		InterestSaved:         interestSaved,
		PayoffMultiple:        payoffMultiple,
		Fee:                   fee,
		FeeWithTax:            c.FeeWithTax(fee),
		MinimumRequiredIncome: c.MinimumRequiredIncome(newInstallment),
		DidNotConverge:        scenario.DidNotConverge,
	}
}

// Fee computes the success fee: a percentage of the interest saved with
// an absolute floor. The floor applies even when the savings are zero;
// that is the observed business rule, locked down by tests.
func (c *Calculator) Fee(interestSaved decimal.Decimal) decimal.Decimal {
	fee := interestSaved.Mul(c.cfg.FeePercent)
	return moneyutil.RoundMoney(decimal.Max(fee, c.cfg.MinimumFee))
}

// FeeWithTax adds the configured value-added tax to a fee.
func (c *Calculator) FeeWithTax(fee decimal.Decimal) decimal.Decimal {
	return moneyutil.RoundMoney(fee.Mul(one.Add(c.cfg.TaxRate)))
}

// MinimumRequiredIncome derives the lowest monthly income for which the
// installment stays within the installment-to-income ceiling.
func (c *Calculator) MinimumRequiredIncome(installment decimal.Decimal) decimal.Decimal {
	if c.cfg.MaxInstallmentToIncomeRatio.Sign() <= 0 {
		return decimal.Zero
	}
	return moneyutil.RoundMoney(installment.Div(c.cfg.MaxInstallmentToIncomeRatio))
}
