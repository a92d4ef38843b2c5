package taxcalc

import (
	"github.com/shopspring/decimal"
)

// ComponentCode identifies one line of the tax breakdown.
type ComponentCode string

const (
	ComponentPersonalIncomeTax ComponentCode = "personal_income_tax"
	ComponentWithholdingTax    ComponentCode = "withholding_tax"
	ComponentCapitalGainsTax   ComponentCode = "capital_gains_tax"
	ComponentStampDuty         ComponentCode = "stamp_duty"
	ComponentLandUseCharge     ComponentCode = "land_use_charge"
	ComponentPropertyTaxes     ComponentCode = "property_taxes"
)

// BracketResult is the tax attributable to a single bracket tier.
type BracketResult struct {
	Label  string          `json:"label"`
	Income decimal.Decimal `json:"income"`
	Rate   decimal.Decimal `json:"rate"`
	Tax    decimal.Decimal `json:"tax"`
}

// Component is one computed line of the total tax liability. Optional
// components (CGT, stamp duty, LUC) only appear in a breakdown when their
// inputs were supplied; a *Component of nil means "not requested" and never
// contributes to the total.
type Component struct {
	Code     ComponentCode     `json:"code"`
	Label    string            `json:"label"`
	Amount   decimal.Decimal   `json:"amount"`
	Rate     *decimal.Decimal  `json:"rate,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// TaxBreakdown is the full structured result persisted alongside a
// calculation: the bracket walk plus every component that was computed.
type TaxBreakdown struct {
	Brackets   []BracketResult `json:"brackets"`
	Components []Component     `json:"components"`
}

// ExpenseBreakdownEntry is one category line of the resolved deductible
// expenses.
type ExpenseBreakdownEntry struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}
