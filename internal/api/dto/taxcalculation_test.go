package dto

import (
	"testing"

	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// No test in this package bootstraps the validator; requests must validate
// from a cold start exactly as they do in the server binary.

func TestCreateTaxCalculationRequestValidate(t *testing.T) {
	valid := &CreateTaxCalculationRequest{
		TaxYear:    2026,
		PropertyID: "prop_01",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		req  *CreateTaxCalculationRequest
	}{
		{
			name: "missing tax year",
			req:  &CreateTaxCalculationRequest{PropertyID: "prop_01"},
		},
		{
			name: "missing property",
			req:  &CreateTaxCalculationRequest{TaxYear: 2026},
		},
		{
			name: "negative other income",
			req: &CreateTaxCalculationRequest{
				TaxYear:     2026,
				PropertyID:  "prop_01",
				OtherIncome: lo.ToPtr(decimal.NewFromInt(-1)),
			},
		},
		{
			name: "negative other deductions",
			req: &CreateTaxCalculationRequest{
				TaxYear:         2026,
				PropertyID:      "prop_01",
				OtherDeductions: lo.ToPtr(decimal.NewFromInt(-1)),
			},
		},
		{
			name: "unknown stamp duty instrument",
			req: &CreateTaxCalculationRequest{
				TaxYear:    2026,
				PropertyID: "prop_01",
				StampDuty:  &StampDutyRequest{Instrument: "gift"},
			},
		},
		{
			name: "unknown land usage type",
			req: &CreateTaxCalculationRequest{
				TaxYear:       2026,
				PropertyID:    "prop_01",
				LandUseCharge: &LandUseChargeRequest{UsageType: lo.ToPtr(types.LandUsageType("industrial"))},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			require.Error(t, err)
			// a bad request is a validation verdict, never a system error
			assert.True(t, ierr.IsValidation(err))
		})
	}
}

func TestFinancialDataRequestValidate(t *testing.T) {
	require.NoError(t, (&FinancialDataRequest{TaxYear: 2026, PropertyID: "prop_01"}).Validate())

	err := (&FinancialDataRequest{PropertyID: "prop_01"}).Validate()
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}
