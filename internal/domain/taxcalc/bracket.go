package taxcalc

import (
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/taxrules"
	"github.com/shopspring/decimal"
)

// ComputeBracketTax walks an ordered bracket table over a non-negative
// income amount and returns the total tax plus the per-bracket attribution.
// Every tier appears in the result so callers can render the full schedule;
// tiers above the exhausted income carry zero amounts. Intermediate
// arithmetic is unrounded; rounding happens only at persistence.
func ComputeBracketTax(income decimal.Decimal, table taxrules.BracketTable) (decimal.Decimal, []BracketResult, error) {
	if income.IsNegative() {
		return decimal.Zero, nil, ierr.NewError("income cannot be negative").
			WithHintf("Bracket tax requires a non-negative income, got %s", income).
			Mark(ierr.ErrValidation)
	}
	if err := table.Validate(); err != nil {
		return decimal.Zero, nil, err
	}

	total := decimal.Zero
	remaining := income
	floor := decimal.Zero
	results := make([]BracketResult, 0, len(table))

	for _, bracket := range table {
		var width decimal.Decimal
		unbounded := bracket.Ceiling == nil
		if !unbounded {
			width = bracket.Ceiling.Sub(floor)
		}

		subject := remaining
		if !unbounded && subject.GreaterThan(width) {
			subject = width
		}
		if subject.IsNegative() {
			subject = decimal.Zero
		}

		tax := subject.Mul(bracket.Rate)
		total = total.Add(tax)
		remaining = remaining.Sub(subject)

		results = append(results, BracketResult{
			Label:  bracket.Label,
			Income: subject,
			Rate:   bracket.Rate,
			Tax:    tax,
		})

		if !unbounded {
			floor = *bracket.Ceiling
		}
	}

	return total, results, nil
}
