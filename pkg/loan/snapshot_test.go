package loan

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func validSnapshot() Snapshot {
	return Snapshot{
		OutstandingBalance:    decimal.RequireFromString("56069733.47"),
		CurrentInstallment:    decimal.RequireFromString("305034.17"),
		RemainingInstallments: 325,
		AnnualEffectiveRate:   decimal.RequireFromString("0.0471"),
		OriginalPrincipal:     decimal.RequireFromString("45200180"),
		MonthlySubsidy:        decimal.RequireFromString("183855.65"),
		MonthlyInsurance:      decimal.RequireFromString("21134"),
		InflationIndexed:      true,
	}
}

func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Snapshot)
		expected error
	}{
		{
			name:     "Valid snapshot",
			mutate:   func(*Snapshot) {},
			expected: nil,
		},
		{
			name: "Zero amounts are valid",
			mutate: func(s *Snapshot) {
				s.OutstandingBalance = decimal.Zero
				s.CurrentInstallment = decimal.Zero
				s.OriginalPrincipal = decimal.Zero
			},
			expected: nil,
		},
		{
			name: "Negative balance",
			mutate: func(s *Snapshot) {
				s.OutstandingBalance = decimal.RequireFromString("-1")
			},
			expected: ErrNegativeBalance,
		},
		{
			name: "Negative principal",
			mutate: func(s *Snapshot) {
				s.OriginalPrincipal = decimal.RequireFromString("-100")
			},
			expected: ErrNegativePrincipal,
		},
		{
			name: "Negative installment",
			mutate: func(s *Snapshot) {
				s.CurrentInstallment = decimal.RequireFromString("-0.01")
			},
			expected: ErrNegativeInstallment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := validSnapshot()
			tt.mutate(&snap)

			err := snap.Validate()
			if !errors.Is(err, tt.expected) {
				t.Errorf("Validate() = %v, expected %v", err, tt.expected)
			}
			if tt.expected != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Validate() = %v, expected it to match ErrInvalidInput", err)
			}
		})
	}
}
