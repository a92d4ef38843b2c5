package taxcalculation

import (
	"time"

	"github.com/rentfolio/rentfolio/internal/domain/taxcalc"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/types"
	"github.com/shopspring/decimal"
)

// TaxCalculation is a persisted tax computation for one taxpayer, property
// and tax year. It is created as a draft; finalizing makes it immutable.
type TaxCalculation struct {
	ID              string  `db:"id" json:"id"`
	ReferenceNumber string  `db:"reference_number" json:"reference_number"`
	PropertyID      *string `db:"property_id" json:"property_id,omitempty"` // nil means portfolio-wide
	TaxYear         int     `db:"tax_year" json:"tax_year"`
	Currency        string  `db:"currency" json:"currency"`

	TotalRentalIncome decimal.Decimal `db:"total_rental_income" json:"total_rental_income"`
	OtherIncome       decimal.Decimal `db:"other_income" json:"other_income"`
	TotalIncome       decimal.Decimal `db:"total_income" json:"total_income"`
	OtherDeductions   decimal.Decimal `db:"other_deductions" json:"other_deductions"`
	RentRelief        decimal.Decimal `db:"rent_relief" json:"rent_relief"`
	TotalDeductions   decimal.Decimal `db:"total_deductions" json:"total_deductions"`
	TaxableIncome     decimal.Decimal `db:"taxable_income" json:"taxable_income"`

	PersonalIncomeTax decimal.Decimal `db:"personal_income_tax" json:"personal_income_tax"`
	WithholdingTax    decimal.Decimal `db:"withholding_tax" json:"withholding_tax"`
	CapitalGainsTax   decimal.Decimal `db:"capital_gains_tax" json:"capital_gains_tax"`
	StampDuty         decimal.Decimal `db:"stamp_duty" json:"stamp_duty"`
	LandUseCharge     decimal.Decimal `db:"land_use_charge" json:"land_use_charge"`
	PropertyTaxes     decimal.Decimal `db:"property_taxes" json:"property_taxes"`
	TotalTaxLiability decimal.Decimal `db:"total_tax_liability" json:"total_tax_liability"`

	CalculationStatus types.TaxCalculationStatus `db:"calculation_status" json:"calculation_status"`
	CalculationDate   time.Time                  `db:"calculation_date" json:"calculation_date"`
	FinalizedAt       *time.Time                 `db:"finalized_at" json:"finalized_at,omitempty"`

	Breakdown taxcalc.TaxBreakdown `db:"breakdown" json:"breakdown"`

	types.BaseModel
}

// IsFinalized reports whether the calculation has left the draft state
func (c *TaxCalculation) IsFinalized() bool {
	return c.CalculationStatus == types.TaxCalculationStatusFinalized
}

// Validate checks the arithmetic invariants that must hold for every
// persisted calculation.
func (c *TaxCalculation) Validate() error {
	if c.TaxYear <= 0 {
		return ierr.NewError("tax year is required").
			WithHint("Tax year must be a positive integer").
			Mark(ierr.ErrValidation)
	}
	if err := c.CalculationStatus.Validate(); err != nil {
		return err
	}
	if c.TaxableIncome.IsNegative() {
		return ierr.NewError("taxable income cannot be negative").
			WithHint("Taxable income is floored at 0").
			Mark(ierr.ErrValidation)
	}
	if !c.TotalIncome.Equal(c.TotalRentalIncome.Add(c.OtherIncome)) {
		return ierr.NewError("total income mismatch").
			WithHint("Total income must equal rental income plus other income").
			Mark(ierr.ErrValidation)
	}
	if !c.TotalDeductions.Equal(c.OtherDeductions.Add(c.RentRelief)) {
		return ierr.NewError("total deductions mismatch").
			WithHint("Total deductions must equal other deductions plus rent relief").
			Mark(ierr.ErrValidation)
	}

	sum := c.PersonalIncomeTax.
		Add(c.WithholdingTax).
		Add(c.CapitalGainsTax).
		Add(c.StampDuty).
		Add(c.LandUseCharge).
		Add(c.PropertyTaxes)
	if !c.TotalTaxLiability.Equal(sum) {
		return ierr.NewError("total tax liability mismatch").
			WithHint("Total tax liability must equal the sum of its components").
			Mark(ierr.ErrValidation)
	}
	return nil
}
