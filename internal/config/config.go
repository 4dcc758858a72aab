// Package config defines the data structures related to configuration
// and includes functions for loading and parsing the config.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/ecofinanzas/savings-engine/pkg/constants"
	"github.com/ecofinanzas/savings-engine/pkg/loan"
	"github.com/ecofinanzas/savings-engine/pkg/projection"
)

// Configuration holds all configuration for the savings engine.
type Configuration struct {
	Analysis AnalysisConfig
	Rules    RulesConfig
	Server   ServerConfig
	Cache    CacheConfig
	Logging  LoggingConfig
}

// AnalysisConfig describes one loan analysis for the one-shot CLI mode.
type AnalysisConfig struct {
	Loan              LoanConfig
	ExtraPayments     []float64
	Labels            []string
	PeriodsPaid       int
	PeriodsContracted int
}

// LoanConfig mirrors loan.Snapshot with the plain float fields viper
// can unmarshal from YAML.
type LoanConfig struct {
	OutstandingBalance    float64
	CurrentInstallment    float64
	RemainingInstallments int
	AnnualEffectiveRate   float64
	OriginalPrincipal     float64
	MonthlySubsidy        float64
	MonthlyInsurance      float64
	InflationIndexed      bool
}

// Snapshot converts the configured loan into the engine's value type.
func (l LoanConfig) Snapshot() loan.Snapshot {
	return loan.Snapshot{
		OutstandingBalance:    decimal.NewFromFloat(l.OutstandingBalance),
		CurrentInstallment:    decimal.NewFromFloat(l.CurrentInstallment),
		RemainingInstallments: l.RemainingInstallments,
		AnnualEffectiveRate:   decimal.NewFromFloat(l.AnnualEffectiveRate),
		OriginalPrincipal:     decimal.NewFromFloat(l.OriginalPrincipal),
		MonthlySubsidy:        decimal.NewFromFloat(l.MonthlySubsidy),
		MonthlyInsurance:      decimal.NewFromFloat(l.MonthlyInsurance),
		InflationIndexed:      l.InflationIndexed,
	}
}

// RulesConfig holds the projection business rules. Zero values fall
// back to the engine defaults.
type RulesConfig struct {
	FeePercent                  float64
	MinimumFee                  float64
	TaxRate                     float64
	MaxInstallmentToIncomeRatio float64
}

// ProjectionConfig converts the configured rules into the engine's
// config type.
func (r RulesConfig) ProjectionConfig() projection.Config {
	cfg := projection.DefaultConfig()
	if r.FeePercent > 0 {
		cfg.FeePercent = decimal.NewFromFloat(r.FeePercent)
	}
	if r.MinimumFee > 0 {
		cfg.MinimumFee = decimal.NewFromFloat(r.MinimumFee)
	}
	if r.TaxRate > 0 {
		cfg.TaxRate = decimal.NewFromFloat(r.TaxRate)
	}
	if r.MaxInstallmentToIncomeRatio > 0 {
		cfg.MaxInstallmentToIncomeRatio = decimal.NewFromFloat(r.MaxInstallmentToIncomeRatio)
	}
	return cfg
}

// ServerConfig holds runtime parameters for the HTTP API.
type ServerConfig struct {
	Address      string
	MaxBodyBytes int64
}

// CacheConfig holds the result cache settings. An empty redis address
// selects the in-process cache.
type CacheConfig struct {
	RedisAddress string
	TTLMinutes   int
}

// LoggingConfig holds logging configuration options.
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// LoadConfiguration takes a file path as input and loads the
// YAML-formatted configuration there. A .env file, if present, is
// loaded first so viper's environment lookup sees it.
func LoadConfiguration(configPath string) (*Configuration, error) {
	_ = godotenv.Load()

	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := viper.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return &configuration, nil
}

func (c *Configuration) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = constants.DefaultServerAddress
	}
	if c.Server.MaxBodyBytes <= 0 {
		c.Server.MaxBodyBytes = constants.DefaultMaxBodyBytes
	}
}
