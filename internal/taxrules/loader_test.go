package taxrules

import (
	"testing"

	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRulesYAML = `
personal_income_brackets:
  - label: "First 800,000"
    ceiling: "800000"
    rate: "0"
  - label: "Next 2,200,000"
    ceiling: "3000000"
    rate: "0.15"
  - label: "Above 3,000,000"
    rate: "0.18"

capital_gains_brackets:
  - label: "First 10,000,000"
    ceiling: "10000000"
    rate: "0.15"
  - label: "Above 10,000,000"
    rate: "0.25"

company_capital_gains_rate: "0.30"
withholding_rate: "0.10"

stamp_duty:
  exemption_threshold: "10000000"
  standard_rate: "0.0078"
  long_lease_rate: "0.03"
  short_lease_max_years: 7
  min_lease_years: 1
  max_lease_years: 21

land_use_charge:
  rates:
    lagos:
      commercial: "0.0076"
  early_payment_discount: "0.15"
  early_payment_window_days: 30

rent_relief:
  percentage: "0.20"
  cap: "500000"
`

func TestParse(t *testing.T) {
	rules, err := Parse([]byte(validRulesYAML))
	require.NoError(t, err)

	require.Len(t, rules.PersonalIncomeBrackets, 3)
	assert.Nil(t, rules.PersonalIncomeBrackets[2].Ceiling)
	assert.True(t, decimal.NewFromInt(800_000).Equal(*rules.PersonalIncomeBrackets[0].Ceiling))
	assert.True(t, decimal.NewFromFloat(0.15).Equal(rules.PersonalIncomeBrackets[1].Rate))

	assert.True(t, decimal.NewFromFloat(0.30).Equal(rules.CompanyCapitalGainsRate))
	assert.True(t, decimal.NewFromFloat(0.10).Equal(rules.WithholdingRate))
	assert.Equal(t, 7, rules.StampDuty.ShortLeaseMaxYears)

	rate, ok := rules.LandUseCharge.Rates["lagos"][types.LandUsageTypeCommercial]
	require.True(t, ok)
	assert.True(t, decimal.NewFromFloat(0.0076).Equal(rate))

	assert.True(t, decimal.NewFromInt(500_000).Equal(rules.RentRelief.Cap))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "not yaml",
			yaml: "personal_income_brackets: [",
		},
		{
			name: "bad decimal",
			yaml: `
personal_income_brackets:
  - label: "a"
    ceiling: "eight hundred"
    rate: "0"
  - label: "b"
    rate: "0.1"
`,
		},
		{
			name: "ceilings out of order",
			yaml: `
personal_income_brackets:
  - label: "a"
    ceiling: "3000000"
    rate: "0"
  - label: "b"
    ceiling: "800000"
    rate: "0.15"
  - label: "c"
    rate: "0.18"

capital_gains_brackets:
  - label: "flat"
    rate: "0.10"

stamp_duty:
  exemption_threshold: "0"
  standard_rate: "0.0078"
  long_lease_rate: "0.03"
  short_lease_max_years: 7
  min_lease_years: 1
  max_lease_years: 21
`,
		},
		{
			name: "missing brackets entirely",
			yaml: `withholding_rate: "0.10"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yaml")
	require.Error(t, err)
	assert.False(t, ierr.IsValidation(err))
}
