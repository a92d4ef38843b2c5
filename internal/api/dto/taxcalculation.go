package dto

import (
	"time"

	"github.com/rentfolio/rentfolio/internal/domain/taxcalc"
	"github.com/rentfolio/rentfolio/internal/domain/taxcalculation"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/types"
	"github.com/rentfolio/rentfolio/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateTaxCalculationRequest computes (or recomputes) the draft calculation
// for a property and tax year. The optional blocks request the CGT, stamp
// duty and land use charge components; leaving a block out omits that
// component entirely.
type CreateTaxCalculationRequest struct {
	TaxYear         int              `json:"tax_year" validate:"required,min=1"`
	PropertyID      string           `json:"property_id" validate:"required"`
	OtherIncome     *decimal.Decimal `json:"other_income,omitempty"`
	OtherDeductions *decimal.Decimal `json:"other_deductions,omitempty"`

	CapitalGains  *CapitalGainsRequest  `json:"capital_gains,omitempty"`
	StampDuty     *StampDutyRequest     `json:"stamp_duty,omitempty"`
	LandUseCharge *LandUseChargeRequest `json:"land_use_charge,omitempty"`
}

// CapitalGainsRequest supplies the disposal facts for the CGT component.
// Sale and purchase prices fall back to the property record when omitted.
type CapitalGainsRequest struct {
	SalePrice          *decimal.Decimal `json:"sale_price,omitempty"`
	PurchasePrice      *decimal.Decimal `json:"purchase_price,omitempty"`
	Improvements       decimal.Decimal  `json:"improvements"`
	DisposalCosts      decimal.Decimal  `json:"disposal_costs"`
	IsPrimaryResidence bool             `json:"is_primary_residence"`
}

// StampDutyRequest supplies the instrument facts for the stamp duty
// component. Value is the sale consideration for sales and the annual rent
// for leases.
type StampDutyRequest struct {
	Instrument         types.StampDutyInstrument `json:"instrument" validate:"required"`
	Value              decimal.Decimal           `json:"value"`
	LeaseDurationYears int                       `json:"lease_duration_years,omitempty"`
}

// LandUseChargeRequest supplies the assessment facts for the LUC component.
// State and usage type fall back to the property record when omitted; the
// base assessment falls back to the property's current value.
type LandUseChargeRequest struct {
	State          string               `json:"state,omitempty"`
	UsageType      *types.LandUsageType `json:"usage_type,omitempty"`
	BaseAssessment *decimal.Decimal     `json:"base_assessment,omitempty"`
	PaymentDate    *time.Time           `json:"payment_date,omitempty"`
}

func (r *CreateTaxCalculationRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.OtherIncome != nil && r.OtherIncome.IsNegative() {
		return ierr.NewError("other income cannot be negative").
			WithHint("Other income must be 0 or greater").
			Mark(ierr.ErrValidation)
	}
	if r.OtherDeductions != nil && r.OtherDeductions.IsNegative() {
		return ierr.NewError("other deductions cannot be negative").
			WithHint("Other deductions must be 0 or greater").
			Mark(ierr.ErrValidation)
	}
	if r.StampDuty != nil {
		if err := r.StampDuty.Instrument.Validate(); err != nil {
			return err
		}
	}
	if r.LandUseCharge != nil && r.LandUseCharge.UsageType != nil {
		if err := r.LandUseCharge.UsageType.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// FinancialDataRequest asks the resolver for the financial facts of a
// property and tax year.
type FinancialDataRequest struct {
	TaxYear    int    `json:"tax_year" form:"tax_year" validate:"required,min=1"`
	PropertyID string `json:"property_id" form:"property_id" validate:"required"`
}

func (r *FinancialDataRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// FinancialDataResponse is the resolver output: cash-basis rental income,
// deductible expenses and the property price pass-throughs.
type FinancialDataResponse struct {
	TaxYear               int                             `json:"tax_year"`
	PropertyID            string                          `json:"property_id"`
	RentalIncome          decimal.Decimal                 `json:"rental_income"`
	OtherDeductions       decimal.Decimal                 `json:"other_deductions"`
	PropertyTaxes         decimal.Decimal                 `json:"property_taxes"`
	ExpenseBreakdown      []taxcalc.ExpenseBreakdownEntry `json:"expense_breakdown"`
	PropertyPurchasePrice *decimal.Decimal                `json:"property_purchase_price,omitempty"`
	PropertySalePrice     *decimal.Decimal                `json:"property_sale_price,omitempty"`
	PropertyCurrentValue  *decimal.Decimal                `json:"property_current_value,omitempty"`
	PropertyState         string                          `json:"property_state,omitempty"`
	PropertyUsageType     *types.LandUsageType            `json:"property_usage_type,omitempty"`
}

// TaxCalculationResponse wraps the persisted calculation for API consumers.
type TaxCalculationResponse struct {
	*taxcalculation.TaxCalculation
}

// ListTaxCalculationsResponse is the paginated history response.
type ListTaxCalculationsResponse struct {
	Items      []*TaxCalculationResponse `json:"items"`
	Pagination types.PaginationResponse  `json:"pagination"`
}
