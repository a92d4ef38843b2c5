package taxrules

import (
	"testing"

	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRuleSetIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestBracketTableValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   BracketTable
		wantErr bool
	}{
		{
			name: "valid table",
			table: BracketTable{
				{Label: "a", Ceiling: lo.ToPtr(decimal.NewFromInt(100)), Rate: decimal.Zero},
				{Label: "b", Rate: decimal.NewFromFloat(0.1)},
			},
		},
		{
			name: "single open-ended tier",
			table: BracketTable{
				{Label: "flat", Rate: decimal.NewFromFloat(0.3)},
			},
		},
		{
			name:    "empty table",
			table:   BracketTable{},
			wantErr: true,
		},
		{
			name: "top tier with a ceiling",
			table: BracketTable{
				{Label: "a", Ceiling: lo.ToPtr(decimal.NewFromInt(100)), Rate: decimal.Zero},
			},
			wantErr: true,
		},
		{
			name: "middle tier without a ceiling",
			table: BracketTable{
				{Label: "a", Rate: decimal.Zero},
				{Label: "b", Rate: decimal.NewFromFloat(0.1)},
			},
			wantErr: true,
		},
		{
			name: "non-increasing ceilings",
			table: BracketTable{
				{Label: "a", Ceiling: lo.ToPtr(decimal.NewFromInt(100)), Rate: decimal.Zero},
				{Label: "b", Ceiling: lo.ToPtr(decimal.NewFromInt(100)), Rate: decimal.NewFromFloat(0.1)},
				{Label: "c", Rate: decimal.NewFromFloat(0.2)},
			},
			wantErr: true,
		},
		{
			name: "negative rate",
			table: BracketTable{
				{Label: "a", Ceiling: lo.ToPtr(decimal.NewFromInt(100)), Rate: decimal.NewFromFloat(-0.1)},
				{Label: "b", Rate: decimal.NewFromFloat(0.1)},
			},
			wantErr: true,
		},
		{
			name: "rate above 1",
			table: BracketTable{
				{Label: "a", Ceiling: lo.ToPtr(decimal.NewFromInt(100)), Rate: decimal.NewFromFloat(1.5)},
				{Label: "b", Rate: decimal.NewFromFloat(0.1)},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRuleSetValidate(t *testing.T) {
	t.Run("withholding rate out of range", func(t *testing.T) {
		rules := Default()
		rules.WithholdingRate = decimal.NewFromInt(2)
		require.Error(t, rules.Validate())
	})

	t.Run("inverted lease bounds", func(t *testing.T) {
		rules := Default()
		rules.StampDuty.MinLeaseYears = 10
		rules.StampDuty.MaxLeaseYears = 5
		require.Error(t, rules.Validate())
	})

	t.Run("short lease boundary outside bounds", func(t *testing.T) {
		rules := Default()
		rules.StampDuty.ShortLeaseMaxYears = 25
		require.Error(t, rules.Validate())
	})

	t.Run("negative land use charge rate", func(t *testing.T) {
		rules := Default()
		rules.LandUseCharge.Rates["lagos"][types.LandUsageTypeCommercial] = decimal.NewFromInt(-1)
		require.Error(t, rules.Validate())
	})

	t.Run("rent relief percentage above 1", func(t *testing.T) {
		rules := Default()
		rules.RentRelief.Percentage = decimal.NewFromFloat(1.2)
		require.Error(t, rules.Validate())
	})
}
