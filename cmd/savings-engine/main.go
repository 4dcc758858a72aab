package main

import (
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ecofinanzas/savings-engine/internal/cache"
	"github.com/ecofinanzas/savings-engine/internal/config"
	"github.com/ecofinanzas/savings-engine/internal/server"
	"github.com/ecofinanzas/savings-engine/pkg/constants"
	"github.com/ecofinanzas/savings-engine/pkg/projection"
	"github.com/ecofinanzas/savings-engine/pkg/summary"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	serve := flag.Bool("serve", false, "run the HTTP API instead of the one-shot analysis")
	address := flag.String("address", "", "listen address override for -serve")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logging := conf.Logging
	if *logLevel != "" {
		logging.Level = *logLevel
	}
	logger, err := logging.BuildLogger()
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	calculator := projection.NewCalculator(conf.Rules.ProjectionConfig(), logger)

	if *serve {
		runServer(logger, conf, calculator, *address)
		return
	}

	runAnalysis(logger, conf, calculator)
}

func runServer(logger *zap.Logger, conf *config.Configuration, calculator *projection.Calculator, addressOverride string) {
	var store cache.Cache = cache.NewMemoryCache()
	if conf.Cache.RedisAddress != "" {
		store = cache.NewRedisCache(conf.Cache.RedisAddress, time.Duration(conf.Cache.TTLMinutes)*time.Minute)
		logger.Info("using redis result cache",
			zap.String("op", "main"),
			zap.String("address", conf.Cache.RedisAddress),
		)
	}

	address := conf.Server.Address
	if addressOverride != "" {
		address = addressOverride
	}

	handler := server.NewHandler(logger, calculator, store, conf.Server.MaxBodyBytes, version)
	logger.Info("starting HTTP API",
		zap.String("op", "main"),
		zap.String("address", address),
	)
	if err := http.ListenAndServe(address, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

func runAnalysis(logger *zap.Logger, conf *config.Configuration, calculator *projection.Calculator) {
	snap := conf.Analysis.Loan.Snapshot()

	if conf.Analysis.PeriodsContracted > 0 {
		creditSummary, err := summary.Summarize(snap, conf.Analysis.PeriodsPaid, conf.Analysis.PeriodsContracted)
		if err != nil {
			logger.Fatal("failed to compute credit summary",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		printSummary(creditSummary)
	}

	extras := make([]decimal.Decimal, 0, len(conf.Analysis.ExtraPayments))
	for _, extra := range conf.Analysis.ExtraPayments {
		extras = append(extras, decimal.NewFromFloat(extra))
	}

	results, err := calculator.ProjectAll(snap, extras, conf.Analysis.Labels)
	if err != nil {
		logger.Fatal("failed to compute projections",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	printProjections(results)
}

func printSummary(s summary.CreditSummary) {
	fmt.Printf("--- Credit summary ---\n")
	fmt.Printf("Original principal:     %s\n", s.OriginalPrincipal.StringFixed(2))
	fmt.Printf("Installments:           %d/%d (%d remaining)\n", s.PeriodsPaid, s.PeriodsContracted, s.PeriodsRemaining)
	fmt.Printf("Current installment:    %s\n", s.CurrentInstallment.StringFixed(2))
	fmt.Printf("Monthly subsidy:        %s\n", s.MonthlySubsidy.StringFixed(2))
	fmt.Printf("Full installment:       %s\n", s.FullInstallment.StringFixed(2))
	fmt.Printf("Paid to date:           %s\n", s.AmountPaidToDate.StringFixed(2))
	fmt.Printf("Subsidy received:       %s\n", s.SubsidyReceivedToDate.StringFixed(2))
	fmt.Printf("Paid to bank:           %s\n", s.AmountPaidToBank.StringFixed(2))
	fmt.Printf("Outstanding balance:    %s\n", s.OutstandingBalance.StringFixed(2))
	if s.InflationAdjustment != nil {
		fmt.Printf("Inflation adjustment:   %s (%s of principal)\n",
			s.InflationAdjustment.Amount.StringFixed(2), s.InflationAdjustment.Fraction.String())
	}
	fmt.Printf("Non-principal cost:     %s\n\n", s.NonPrincipalCost.StringFixed(2))
}

func printProjections(results []projection.Result) {
	for _, result := range results {
		fmt.Printf("--- %s ---\n", result.OptionLabel)
		fmt.Printf("Extra payment:          %s\n", result.ExtraPayment.StringFixed(2))
		fmt.Printf("New installment:        %s\n", result.NewInstallment.StringFixed(2))
		fmt.Printf("New period count:       %d (%s)\n", result.NewPeriodCount, result.RemainingTime)
		fmt.Printf("Time saved:             %s (%d periods)\n", result.TimeSaved, result.PeriodsSaved)
		fmt.Printf("Interest saved:         %s\n", result.InterestSaved.StringFixed(2))
		fmt.Printf("Total to pay:           %s\n", result.NewTotalPaid.StringFixed(2))
		fmt.Printf("Payoff multiple:        %s\n", result.PayoffMultiple.String())
		fmt.Printf("Fee:                    %s\n", result.Fee.StringFixed(2))
		fmt.Printf("Fee with tax:           %s\n", result.FeeWithTax.StringFixed(2))
		fmt.Printf("Minimum income:         %s\n", result.MinimumRequiredIncome.StringFixed(2))
		if result.DidNotConverge {
			fmt.Printf("Warning: schedule too long to amortize at this installment\n")
		}
		fmt.Printf("\n")
	}
}
