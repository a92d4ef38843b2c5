package taxcalc

import (
	"time"

	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/taxrules"
	"github.com/rentfolio/rentfolio/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ComputeWithholdingTax charges the flat withholding rate on gross rental
// income. Deductions never reduce this component.
func ComputeWithholdingTax(grossRentalIncome decimal.Decimal, rules *taxrules.RuleSet) Component {
	return Component{
		Code:   ComponentWithholdingTax,
		Label:  "Withholding Tax",
		Amount: grossRentalIncome.Mul(rules.WithholdingRate),
		Rate:   lo.ToPtr(rules.WithholdingRate),
	}
}

// CapitalGainsInput describes a property disposal.
type CapitalGainsInput struct {
	SalePrice          decimal.Decimal
	PurchasePrice      decimal.Decimal
	Improvements       decimal.Decimal
	DisposalCosts      decimal.Decimal
	TaxpayerType       types.TaxpayerType
	IsPrimaryResidence bool
}

// ComputeCapitalGains charges tax on the disposal gain: zero for a primary
// residence, the flat company rate for companies, and the progressive
// capital gains table for individuals.
func ComputeCapitalGains(in CapitalGainsInput, rules *taxrules.RuleSet) (*Component, error) {
	if err := in.TaxpayerType.Validate(); err != nil {
		return nil, err
	}
	if in.SalePrice.IsNegative() || in.PurchasePrice.IsNegative() ||
		in.Improvements.IsNegative() || in.DisposalCosts.IsNegative() {
		return nil, ierr.NewError("capital gains amounts cannot be negative").
			WithHint("Sale price, purchase price, improvements and disposal costs must be 0 or greater").
			Mark(ierr.ErrValidation)
	}

	gain := in.SalePrice.Sub(in.PurchasePrice).Sub(in.Improvements).Sub(in.DisposalCosts)
	if gain.IsNegative() {
		gain = decimal.Zero
	}

	component := &Component{
		Code:  ComponentCapitalGainsTax,
		Label: "Capital Gains Tax",
		Metadata: map[string]string{
			"gain":          gain.String(),
			"taxpayer_type": string(in.TaxpayerType),
		},
	}

	switch {
	case in.IsPrimaryResidence:
		component.Amount = decimal.Zero
		component.Metadata["exemption"] = "primary_residence"
	case in.TaxpayerType == types.TaxpayerTypeCompany:
		component.Amount = gain.Mul(rules.CompanyCapitalGainsRate)
		component.Rate = lo.ToPtr(rules.CompanyCapitalGainsRate)
	default:
		total, _, err := ComputeBracketTax(gain, rules.CapitalGainsBrackets)
		if err != nil {
			return nil, err
		}
		component.Amount = total
	}

	return component, nil
}

// StampDutyInput describes the instrument stamp duty is charged on. The
// value is the sale consideration for sales and the annual rent for leases.
type StampDutyInput struct {
	Instrument         types.StampDutyInstrument
	Value              decimal.Decimal
	LeaseDurationYears int
}

// ComputeStampDuty charges duty per the configured tiers. Short leases are
// charged like sales on the annual rent; long leases are charged on the
// total value over the term at the long-lease rate. Instruments whose
// dutiable value falls below the exemption threshold carry no duty.
// Durations outside the configured bounds are rejected, never clamped.
func ComputeStampDuty(in StampDutyInput, rules *taxrules.RuleSet) (*Component, error) {
	if err := in.Instrument.Validate(); err != nil {
		return nil, err
	}
	if in.Value.IsNegative() {
		return nil, ierr.NewError("stamp duty value cannot be negative").
			WithHint("Instrument value must be 0 or greater").
			Mark(ierr.ErrValidation)
	}

	sd := rules.StampDuty
	component := &Component{
		Code:  ComponentStampDuty,
		Label: "Stamp Duty",
		Metadata: map[string]string{
			"instrument": string(in.Instrument),
		},
	}

	if in.Instrument == types.StampDutyInstrumentLease {
		if in.LeaseDurationYears < sd.MinLeaseYears || in.LeaseDurationYears > sd.MaxLeaseYears {
			return nil, ierr.NewError("lease duration out of range").
				WithHintf("Lease duration must be between %d and %d years, got %d",
					sd.MinLeaseYears, sd.MaxLeaseYears, in.LeaseDurationYears).
				WithReportableDetails(map[string]any{
					"lease_duration_years": in.LeaseDurationYears,
				}).
				Mark(ierr.ErrValidation)
		}
	}

	// sales and short leases are charged on the instrument value as given;
	// long leases are charged on the total value over the term. The exemption
	// floor applies to the dutiable value, so a long lease whose annual rent
	// is below the threshold can still attract duty on its term value.
	dutiable := in.Value
	rate := sd.StandardRate
	if in.Instrument == types.StampDutyInstrumentLease && in.LeaseDurationYears > sd.ShortLeaseMaxYears {
		dutiable = in.Value.Mul(decimal.NewFromInt(int64(in.LeaseDurationYears)))
		rate = sd.LongLeaseRate
		component.Metadata["term_value"] = dutiable.String()
	}

	if dutiable.LessThan(sd.ExemptionThreshold) {
		component.Amount = decimal.Zero
		component.Metadata["exemption"] = "below_threshold"
		return component, nil
	}

	component.Amount = dutiable.Mul(rate)
	component.Rate = lo.ToPtr(rate)
	return component, nil
}

// LandUseChargeInput describes a land use charge assessment.
type LandUseChargeInput struct {
	State           string
	UsageType       types.LandUsageType
	BaseAssessment  decimal.Decimal
	PaymentDate     *time.Time
	FiscalYearStart time.Time
}

// ComputeLandUseCharge looks up the state+usage rate, applies it to the base
// assessment and grants the early-payment discount when the payment date
// falls within the configured window of the fiscal year start (inclusive).
func ComputeLandUseCharge(in LandUseChargeInput, rules *taxrules.RuleSet) (*Component, error) {
	if err := in.UsageType.Validate(); err != nil {
		return nil, err
	}
	if in.BaseAssessment.IsNegative() {
		return nil, ierr.NewError("base assessment cannot be negative").
			WithHint("Land use charge base assessment must be 0 or greater").
			Mark(ierr.ErrValidation)
	}

	usageRates, ok := rules.LandUseCharge.Rates[in.State]
	if !ok {
		return nil, ierr.NewError("unknown land use charge state").
			WithHintf("No land use charge rates are configured for state %q", in.State).
			WithReportableDetails(map[string]any{
				"state": in.State,
			}).
			Mark(ierr.ErrValidation)
	}
	rate, ok := usageRates[in.UsageType]
	if !ok {
		return nil, ierr.NewError("unknown land use charge usage type").
			WithHintf("No land use charge rate is configured for %s/%s", in.State, in.UsageType).
			Mark(ierr.ErrValidation)
	}

	baseCharge := in.BaseAssessment.Mul(rate)
	charge := baseCharge

	component := &Component{
		Code:  ComponentLandUseCharge,
		Label: "Land Use Charge",
		Rate:  lo.ToPtr(rate),
		Metadata: map[string]string{
			"state":      in.State,
			"usage_type": string(in.UsageType),
		},
	}

	if in.PaymentDate != nil {
		windowEnd := in.FiscalYearStart.AddDate(0, 0, rules.LandUseCharge.EarlyPaymentWindowDays)
		paid := in.PaymentDate.UTC()
		if !paid.Before(in.FiscalYearStart) && !paid.After(windowEnd) {
			discount := decimal.NewFromInt(1).Sub(rules.LandUseCharge.EarlyPaymentDiscount)
			charge = baseCharge.Mul(discount)
			component.Metadata["early_payment_discount"] = rules.LandUseCharge.EarlyPaymentDiscount.String()
		}
	}

	component.Amount = charge
	return component, nil
}
