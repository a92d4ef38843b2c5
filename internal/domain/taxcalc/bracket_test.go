package taxcalc

import (
	"testing"

	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/taxrules"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBracketTable() taxrules.BracketTable {
	return taxrules.BracketTable{
		{Label: "First 800,000", Ceiling: lo.ToPtr(decimal.NewFromInt(800_000)), Rate: decimal.Zero},
		{Label: "Next 2,200,000", Ceiling: lo.ToPtr(decimal.NewFromInt(3_000_000)), Rate: decimal.NewFromFloat(0.15)},
		{Label: "Above 3,000,000", Rate: decimal.NewFromFloat(0.18)},
	}
}

func TestComputeBracketTax(t *testing.T) {
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
			name:     "income inside zero-rate tier",
			income:   decimal.NewFromInt(500_000),
			expected: decimal.Zero,
		},
		{
			name:     "income exactly at first ceiling",
			income:   decimal.NewFromInt(800_000),
			expected: decimal.Zero,
		},
		{
			name:   "income spanning two tiers",
			income: decimal.NewFromInt(2_000_000),
			// 1,200,000 at 15%
			expected: decimal.NewFromInt(180_000),
		},
		{
			name:   "income reaching the open-ended tier",
			income: decimal.NewFromInt(5_000_000),
			// 2,200,000 at 15% + 2,000,000 at 18%
			expected: decimal.NewFromInt(690_000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, results, err := ComputeBracketTax(tt.income, testBracketTable())
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(total),
				"expected %s, got %s", tt.expected, total)

			// every tier appears in the attribution, even when unused
			require.Len(t, results, 3)

			// the per-bracket amounts must account for exactly the total
			sum := decimal.Zero
			attributed := decimal.Zero
			for _, r := range results {
				sum = sum.Add(r.Tax)
				attributed = attributed.Add(r.Income)
			}
			assert.True(t, total.Equal(sum), "bracket taxes must sum to the total")
			assert.True(t, tt.income.Equal(attributed), "bracket incomes must sum to the input")
		})
	}
}

func TestComputeBracketTax_DefaultPersonalIncomeTable(t *testing.T) {
	rules := taxrules.Default()

	// 12,000,000 taxable: 0 + 2,200,000*0.15 + 9,000,000*0.18 = 1,950,000
	total, _, err := ComputeBracketTax(decimal.NewFromInt(12_000_000), rules.PersonalIncomeBrackets)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1_950_000).Equal(total), "got %s", total)

	// far into the top tier
	total, results, err := ComputeBracketTax(decimal.NewFromInt(80_000_000), rules.PersonalIncomeBrackets)
	require.NoError(t, err)
	expected := decimal.NewFromInt(17_530_000)
	assert.True(t, expected.Equal(total), "expected %s, got %s", expected, total)
	assert.True(t, decimal.NewFromInt(30_000_000).Equal(results[len(results)-1].Income))
}

func TestComputeBracketTax_NegativeIncome(t *testing.T) {
	_, _, err := ComputeBracketTax(decimal.NewFromInt(-1), testBracketTable())
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestComputeBracketTax_InvalidTable(t *testing.T) {
	tests := []struct {
		name  string
		table taxrules.BracketTable
	}{
		{
			name:  "empty table",
			table: taxrules.BracketTable{},
		},
		{
			name: "top tier carries a ceiling",
			table: taxrules.BracketTable{
				{Label: "only", Ceiling: lo.ToPtr(decimal.NewFromInt(100)), Rate: decimal.NewFromFloat(0.1)},
			},
		},
		{
			name: "ceilings not increasing",
			table: taxrules.BracketTable{
				{Label: "a", Ceiling: lo.ToPtr(decimal.NewFromInt(200)), Rate: decimal.NewFromFloat(0.1)},
				{Label: "b", Ceiling: lo.ToPtr(decimal.NewFromInt(100)), Rate: decimal.NewFromFloat(0.2)},
				{Label: "c", Rate: decimal.NewFromFloat(0.3)},
			},
		},
		{
			name: "rate above 1",
			table: taxrules.BracketTable{
				{Label: "a", Ceiling: lo.ToPtr(decimal.NewFromInt(100)), Rate: decimal.NewFromInt(2)},
				{Label: "b", Rate: decimal.NewFromFloat(0.1)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ComputeBracketTax(decimal.NewFromInt(1000), tt.table)
			require.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
		})
	}
}
