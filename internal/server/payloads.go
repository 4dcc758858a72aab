package server

import (
	"github.com/shopspring/decimal"

	"github.com/ecofinanzas/savings-engine/pkg/loan"
	"github.com/ecofinanzas/savings-engine/pkg/projection"
	"github.com/ecofinanzas/savings-engine/pkg/summary"
)

// loanPayload mirrors loan.Snapshot on the wire. Monetary fields accept
// both JSON numbers and strings.
type loanPayload struct {
	OutstandingBalance    decimal.Decimal `json:"outstandingBalance"`
	CurrentInstallment    decimal.Decimal `json:"currentInstallment"`
	RemainingInstallments int             `json:"remainingInstallments"`
	AnnualEffectiveRate   decimal.Decimal `json:"annualEffectiveRate"`
	OriginalPrincipal     decimal.Decimal `json:"originalPrincipal"`
	MonthlySubsidy        decimal.Decimal `json:"monthlySubsidy"`
	MonthlyInsurance      decimal.Decimal `json:"monthlyInsurance"`
	InflationIndexed      bool            `json:"inflationIndexed"`
}

func (p loanPayload) snapshot() loan.Snapshot {
	return loan.Snapshot{
		OutstandingBalance:    p.OutstandingBalance,
		CurrentInstallment:    p.CurrentInstallment,
		RemainingInstallments: p.RemainingInstallments,
		AnnualEffectiveRate:   p.AnnualEffectiveRate,
		OriginalPrincipal:     p.OriginalPrincipal,
		MonthlySubsidy:        p.MonthlySubsidy,
		MonthlyInsurance:      p.MonthlyInsurance,
		InflationIndexed:      p.InflationIndexed,
	}
}

type projectionsRequest struct {
	Loan          loanPayload       `json:"loan"`
	ExtraPayments []decimal.Decimal `json:"extraPayments"`
	Labels        []string          `json:"labels,omitempty"`

	// Optional; when both are positive the response includes the credit
	// summary alongside the projections.
	PeriodsPaid       int `json:"periodsPaid,omitempty"`
	PeriodsContracted int `json:"periodsContracted,omitempty"`
}

type summaryRequest struct {
	Loan              loanPayload `json:"loan"`
	PeriodsPaid       int         `json:"periodsPaid"`
	PeriodsContracted int         `json:"periodsContracted"`
}

type projectionPayload struct {
	OptionNumber          int                 `json:"optionNumber"`
	OptionLabel           string              `json:"optionLabel"`
	ExtraPayment          decimal.Decimal     `json:"extraPayment"`
	NewPeriodCount        int                 `json:"newPeriodCount"`
	RemainingTime         projection.TimeSpan `json:"remainingTime"`
	PeriodsSaved          int                 `json:"periodsSaved"`
	TimeSaved             projection.TimeSpan `json:"timeSaved"`
	NewInstallment        decimal.Decimal     `json:"newInstallment"`
	NewTotalPaid          decimal.Decimal     `json:"newTotalPaid"`
	InterestSaved         decimal.Decimal     `json:"interestSaved"`
	PayoffMultiple        decimal.Decimal     `json:"payoffMultiple"`
	Fee                   decimal.Decimal     `json:"fee"`
	FeeWithTax            decimal.Decimal     `json:"feeWithTax"`
	MinimumRequiredIncome decimal.Decimal     `json:"minimumRequiredIncome"`
	DidNotConverge        bool                `json:"didNotConverge,omitempty"`
}

func toProjectionPayload(r projection.Result) projectionPayload {
	return projectionPayload{
		OptionNumber:          r.OptionNumber,
		OptionLabel:           r.OptionLabel,
		ExtraPayment:          r.ExtraPayment,
		NewPeriodCount:        r.NewPeriodCount,
		RemainingTime:         r.RemainingTime,
		PeriodsSaved:          r.PeriodsSaved,
		TimeSaved:             r.TimeSaved,
		NewInstallment:        r.NewInstallment,
		NewTotalPaid:          r.NewTotalPaid,
		InterestSaved:         r.InterestSaved,
		PayoffMultiple:        r.PayoffMultiple,
		Fee:                   r.Fee,
		FeeWithTax:            r.FeeWithTax,
		MinimumRequiredIncome: r.MinimumRequiredIncome,
		DidNotConverge:        r.DidNotConverge,
	}
}

type inflationAdjustmentPayload struct {
	Amount   decimal.Decimal `json:"amount"`
	Fraction decimal.Decimal `json:"fraction"`
}

type summaryPayload struct {
	OriginalPrincipal     decimal.Decimal             `json:"originalPrincipal"`
	PeriodsContracted     int                         `json:"periodsContracted"`
	PeriodsPaid           int                         `json:"periodsPaid"`
	PeriodsRemaining      int                         `json:"periodsRemaining"`
	CurrentInstallment    decimal.Decimal             `json:"currentInstallment"`
	MonthlySubsidy        decimal.Decimal             `json:"monthlySubsidy"`
	FullInstallment       decimal.Decimal             `json:"fullInstallment"`
	AmountPaidToDate      decimal.Decimal             `json:"amountPaidToDate"`
	SubsidyReceivedToDate decimal.Decimal             `json:"subsidyReceivedToDate"`
	AmountPaidToBank      decimal.Decimal             `json:"amountPaidToBank"`
	OutstandingBalance    decimal.Decimal             `json:"outstandingBalance"`
	InflationAdjustment   *inflationAdjustmentPayload `json:"inflationAdjustment,omitempty"`
	NonPrincipalCost      decimal.Decimal             `json:"nonPrincipalCost"`
}

func toSummaryPayload(s summary.CreditSummary) summaryPayload {
	payload := summaryPayload{
		OriginalPrincipal:     s.OriginalPrincipal,
		PeriodsContracted:     s.PeriodsContracted,
		PeriodsPaid:           s.PeriodsPaid,
		PeriodsRemaining:      s.PeriodsRemaining,
		CurrentInstallment:    s.CurrentInstallment,
		MonthlySubsidy:        s.MonthlySubsidy,
		FullInstallment:       s.FullInstallment,
		AmountPaidToDate:      s.AmountPaidToDate,
		SubsidyReceivedToDate: s.SubsidyReceivedToDate,
		AmountPaidToBank:      s.AmountPaidToBank,
		OutstandingBalance:    s.OutstandingBalance,
		NonPrincipalCost:      s.NonPrincipalCost,
	}
	if s.InflationAdjustment != nil {
		payload.InflationAdjustment = &inflationAdjustmentPayload{
			Amount:   s.InflationAdjustment.Amount,
			Fraction: s.InflationAdjustment.Fraction,
		}
	}
	return payload
}

type projectionsResponse struct {
	AnalysisID  string              `json:"analysisId"`
	Projections []projectionPayload `json:"projections"`
	Summary     *summaryPayload     `json:"summary,omitempty"`
}

type summaryResponse struct {
	AnalysisID string         `json:"analysisId"`
	Summary    summaryPayload `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}
