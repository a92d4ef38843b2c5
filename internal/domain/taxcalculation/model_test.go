package taxcalculation

import (
	"testing"

	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCalculation() *TaxCalculation {
	return &TaxCalculation{
		TaxYear:           2026,
		Currency:          "NGN",
		TotalRentalIncome: decimal.NewFromInt(5_000_000),
		OtherIncome:       decimal.NewFromInt(200_000),
		TotalIncome:       decimal.NewFromInt(5_200_000),
		OtherDeductions:   decimal.NewFromInt(1_000_000),
		RentRelief:        decimal.NewFromInt(500_000),
		TotalDeductions:   decimal.NewFromInt(1_500_000),
		TaxableIncome:     decimal.NewFromInt(3_700_000),
		PersonalIncomeTax: decimal.NewFromInt(456_000),
		WithholdingTax:    decimal.NewFromInt(500_000),
		TotalTaxLiability: decimal.NewFromInt(956_000),
		CalculationStatus: types.TaxCalculationStatusDraft,
	}
}

func TestTaxCalculationValidate(t *testing.T) {
	require.NoError(t, validCalculation().Validate())

	tests := []struct {
		name   string
		mutate func(c *TaxCalculation)
	}{
		{
			name:   "missing tax year",
			mutate: func(c *TaxCalculation) { c.TaxYear = 0 },
		},
		{
			name:   "unknown status",
			mutate: func(c *TaxCalculation) { c.CalculationStatus = "PENDING" },
		},
		{
			name:   "negative taxable income",
			mutate: func(c *TaxCalculation) { c.TaxableIncome = decimal.NewFromInt(-1) },
		},
		{
			name:   "total income out of balance",
			mutate: func(c *TaxCalculation) { c.TotalIncome = decimal.NewFromInt(1) },
		},
		{
			name:   "total deductions out of balance",
			mutate: func(c *TaxCalculation) { c.RentRelief = decimal.NewFromInt(1) },
		},
		{
			name:   "liability not the sum of components",
			mutate: func(c *TaxCalculation) { c.TotalTaxLiability = decimal.NewFromInt(1) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := validCalculation()
			tt.mutate(calc)
			err := calc.Validate()
			require.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
		})
	}
}

func TestIsFinalized(t *testing.T) {
	calc := validCalculation()
	assert.False(t, calc.IsFinalized())

	calc.CalculationStatus = types.TaxCalculationStatusFinalized
	assert.True(t, calc.IsFinalized())
}
