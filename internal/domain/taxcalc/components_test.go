package taxcalc

import (
	"testing"
	"time"

	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/taxrules"
	"github.com/rentfolio/rentfolio/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeWithholdingTax(t *testing.T) {
	rules := taxrules.Default()

	tests := []struct {
		name     string
		income   decimal.Decimal
		expected decimal.Decimal
	}{
		{
			name:     "zero income",
			income:   decimal.Zero,
			expected: decimal.Zero,
		},
		{
			name:     "flat rate on gross rent",
			income:   decimal.NewFromInt(5_000_000),
			expected: decimal.NewFromInt(500_000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			component := ComputeWithholdingTax(tt.income, rules)
			assert.Equal(t, ComponentWithholdingTax, component.Code)
			assert.True(t, tt.expected.Equal(component.Amount),
				"expected %s, got %s", tt.expected, component.Amount)
			require.NotNil(t, component.Rate)
			assert.True(t, rules.WithholdingRate.Equal(*component.Rate))
		})
	}
}

func TestComputeCapitalGains(t *testing.T) {
	rules := taxrules.Default()

	tests := []struct {
		name     string
		input    CapitalGainsInput
		expected decimal.Decimal
	}{
		{
			name: "primary residence is exempt",
			input: CapitalGainsInput{
				SalePrice:          decimal.NewFromInt(80_000_000),
				PurchasePrice:      decimal.NewFromInt(20_000_000),
				TaxpayerType:       types.TaxpayerTypeIndividual,
				IsPrimaryResidence: true,
			},
			expected: decimal.Zero,
		},
		{
			name: "company pays the flat rate",
			input: CapitalGainsInput{
				SalePrice:     decimal.NewFromInt(30_000_000),
				PurchasePrice: decimal.NewFromInt(10_000_000),
				TaxpayerType:  types.TaxpayerTypeCompany,
			},
			// 20,000,000 gain at 30%
			expected: decimal.NewFromInt(6_000_000),
		},
		{
			name: "individual pays the progressive table",
			input: CapitalGainsInput{
				SalePrice:     decimal.NewFromInt(45_000_000),
				PurchasePrice: decimal.NewFromInt(20_000_000),
				TaxpayerType:  types.TaxpayerTypeIndividual,
			},
			// gain 25,000,000: 10M@15% + 10M@20% + 5M@25%
			expected: decimal.NewFromInt(4_750_000),
		},
		{
			name: "improvements and disposal costs reduce the gain",
			input: CapitalGainsInput{
				SalePrice:     decimal.NewFromInt(30_000_000),
				PurchasePrice: decimal.NewFromInt(20_000_000),
				Improvements:  decimal.NewFromInt(3_000_000),
				DisposalCosts: decimal.NewFromInt(2_000_000),
				TaxpayerType:  types.TaxpayerTypeIndividual,
			},
			// gain 5,000,000 entirely inside the 15% tier
			expected: decimal.NewFromInt(750_000),
		},
		{
			name: "loss floors at zero",
			input: CapitalGainsInput{
				SalePrice:     decimal.NewFromInt(10_000_000),
				PurchasePrice: decimal.NewFromInt(15_000_000),
				TaxpayerType:  types.TaxpayerTypeIndividual,
			},
			expected: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			component, err := ComputeCapitalGains(tt.input, rules)
			require.NoError(t, err)
			require.NotNil(t, component)
			assert.Equal(t, ComponentCapitalGainsTax, component.Code)
			assert.True(t, tt.expected.Equal(component.Amount),
				"expected %s, got %s", tt.expected, component.Amount)
		})
	}

	t.Run("negative amounts rejected", func(t *testing.T) {
		_, err := ComputeCapitalGains(CapitalGainsInput{
			SalePrice:     decimal.NewFromInt(-1),
			PurchasePrice: decimal.NewFromInt(10),
			TaxpayerType:  types.TaxpayerTypeIndividual,
		}, rules)
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("invalid taxpayer type rejected", func(t *testing.T) {
		_, err := ComputeCapitalGains(CapitalGainsInput{
			SalePrice:    decimal.NewFromInt(10),
			TaxpayerType: types.TaxpayerType("trust"),
		}, rules)
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})
}

func TestComputeStampDuty(t *testing.T) {
	rules := taxrules.Default()

	tests := []struct {
		name     string
		input    StampDutyInput
		expected decimal.Decimal
	}{
		{
			name: "sale below exemption threshold",
			input: StampDutyInput{
				Instrument: types.StampDutyInstrumentSale,
				Value:      decimal.NewFromInt(9_999_999),
			},
			expected: decimal.Zero,
		},
		{
			name: "short lease below exemption threshold",
			input: StampDutyInput{
				Instrument:         types.StampDutyInstrumentLease,
				Value:              decimal.NewFromInt(5_000_000),
				LeaseDurationYears: 3,
			},
			expected: decimal.Zero,
		},
		{
			name: "sale at the standard rate",
			input: StampDutyInput{
				Instrument: types.StampDutyInstrumentSale,
				Value:      decimal.NewFromInt(20_000_000),
			},
			expected: decimal.NewFromInt(156_000),
		},
		{
			name: "short lease charged on annual rent without a term multiplier",
			input: StampDutyInput{
				Instrument:         types.StampDutyInstrumentLease,
				Value:              decimal.NewFromInt(12_000_000),
				LeaseDurationYears: 5,
			},
			expected: decimal.NewFromInt(93_600),
		},
		{
			name: "long lease charged on the term value at the higher rate",
			input: StampDutyInput{
				Instrument:         types.StampDutyInstrumentLease,
				Value:              decimal.NewFromInt(5_000_000),
				LeaseDurationYears: 10,
			},
			// 50,000,000 term value at 3%
			expected: decimal.NewFromInt(1_500_000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			component, err := ComputeStampDuty(tt.input, rules)
			require.NoError(t, err)
			require.NotNil(t, component)
			assert.Equal(t, ComponentStampDuty, component.Code)
			assert.True(t, tt.expected.Equal(component.Amount),
				"expected %s, got %s", tt.expected, component.Amount)
		})
	}

	t.Run("lease duration out of bounds rejected", func(t *testing.T) {
		for _, years := range []int{0, 22} {
			_, err := ComputeStampDuty(StampDutyInput{
				Instrument:         types.StampDutyInstrumentLease,
				Value:              decimal.NewFromInt(15_000_000),
				LeaseDurationYears: years,
			}, rules)
			require.Error(t, err, "duration %d", years)
			assert.True(t, ierr.IsValidation(err))
		}
	})

	t.Run("invalid instrument rejected", func(t *testing.T) {
		_, err := ComputeStampDuty(StampDutyInput{
			Instrument: types.StampDutyInstrument("gift"),
			Value:      decimal.NewFromInt(15_000_000),
		}, rules)
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})
}

func TestComputeLandUseCharge(t *testing.T) {
	// a rate of 1.0 keeps the discount arithmetic visible in the fixtures
	rules := taxrules.Default()
	rules.LandUseCharge.Rates["lagos"][types.LandUsageTypeCommercial] = decimal.NewFromInt(1)

	fiscalYearStart := types.TaxYearStart(2026)

	tests := []struct {
		name        string
		paymentDate *time.Time
		expected    decimal.Decimal
	}{
		{
			name:        "no payment date means no discount",
			paymentDate: nil,
			expected:    decimal.NewFromInt(100_000),
		},
		{
			name:        "payment inside the early window earns the discount",
			paymentDate: lo.ToPtr(time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)),
			expected:    decimal.NewFromInt(85_000),
		},
		{
			name:        "payment on the window boundary earns the discount",
			paymentDate: lo.ToPtr(fiscalYearStart.AddDate(0, 0, 30)),
			expected:    decimal.NewFromInt(85_000),
		},
		{
			name:        "payment after the window pays in full",
			paymentDate: lo.ToPtr(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
			expected:    decimal.NewFromInt(100_000),
		},
		{
			name:        "payment before the fiscal year start pays in full",
			paymentDate: lo.ToPtr(time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)),
			expected:    decimal.NewFromInt(100_000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			component, err := ComputeLandUseCharge(LandUseChargeInput{
				State:           "lagos",
				UsageType:       types.LandUsageTypeCommercial,
				BaseAssessment:  decimal.NewFromInt(100_000),
				PaymentDate:     tt.paymentDate,
				FiscalYearStart: fiscalYearStart,
			}, rules)
			require.NoError(t, err)
			require.NotNil(t, component)
			assert.Equal(t, ComponentLandUseCharge, component.Code)
			assert.True(t, tt.expected.Equal(component.Amount),
				"expected %s, got %s", tt.expected, component.Amount)
		})
	}

	t.Run("rate lookup by state and usage", func(t *testing.T) {
		component, err := ComputeLandUseCharge(LandUseChargeInput{
			State:           "abuja",
			UsageType:       types.LandUsageTypeRentedResidential,
			BaseAssessment:  decimal.NewFromInt(10_000_000),
			FiscalYearStart: fiscalYearStart,
		}, taxrules.Default())
		require.NoError(t, err)
		// 10,000,000 at 0.3%
		assert.True(t, decimal.NewFromInt(30_000).Equal(component.Amount))
	})

	t.Run("unknown state rejected", func(t *testing.T) {
		_, err := ComputeLandUseCharge(LandUseChargeInput{
			State:           "kano",
			UsageType:       types.LandUsageTypeCommercial,
			BaseAssessment:  decimal.NewFromInt(100_000),
			FiscalYearStart: fiscalYearStart,
		}, rules)
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("invalid usage type rejected", func(t *testing.T) {
		_, err := ComputeLandUseCharge(LandUseChargeInput{
			State:           "lagos",
			UsageType:       types.LandUsageType("industrial"),
			BaseAssessment:  decimal.NewFromInt(100_000),
			FiscalYearStart: fiscalYearStart,
		}, rules)
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("negative base assessment rejected", func(t *testing.T) {
		_, err := ComputeLandUseCharge(LandUseChargeInput{
			State:           "lagos",
			UsageType:       types.LandUsageTypeCommercial,
			BaseAssessment:  decimal.NewFromInt(-1),
			FiscalYearStart: fiscalYearStart,
		}, rules)
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})
}
