package taxrules

import (
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Bracket is one tier of a progressive rate table. Ceiling is the cumulative
// upper bound of the tier; a nil ceiling marks the open-ended top tier.
type Bracket struct {
	Label   string           `json:"label"`
	Ceiling *decimal.Decimal `json:"ceiling,omitempty"`
	Rate    decimal.Decimal  `json:"rate"`
}

// BracketTable is an ordered progressive rate table, ascending by ceiling.
type BracketTable []Bracket

// Validate checks the structural invariants of a bracket table: at least one
// tier, strictly increasing ceilings, rates within [0, 1], and exactly one
// open-ended top tier.
func (t BracketTable) Validate() error {
	if len(t) == 0 {
		return ierr.NewError("bracket table is empty").
			WithHint("A bracket table requires at least one tier").
			Mark(ierr.ErrValidation)
	}

	one := decimal.NewFromInt(1)
	var prev *decimal.Decimal
	for i, b := range t {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return ierr.NewError("bracket rate out of range").
				WithHintf("Bracket %q rate must be between 0 and 1, got %s", b.Label, b.Rate).
				Mark(ierr.ErrValidation)
		}

		if i == len(t)-1 {
			if b.Ceiling != nil {
				return ierr.NewError("top bracket must be open-ended").
					WithHintf("Bracket %q is the top tier and must not carry a ceiling", b.Label).
					Mark(ierr.ErrValidation)
			}
			continue
		}

		if b.Ceiling == nil {
			return ierr.NewError("only the top bracket may be open-ended").
				WithHintf("Bracket %q must carry a ceiling", b.Label).
				Mark(ierr.ErrValidation)
		}
		if !b.Ceiling.IsPositive() {
			return ierr.NewError("bracket ceiling must be positive").
				WithHintf("Bracket %q ceiling must be greater than 0, got %s", b.Label, b.Ceiling).
				Mark(ierr.ErrValidation)
		}
		if prev != nil && !b.Ceiling.GreaterThan(*prev) {
			return ierr.NewError("bracket ceilings must be strictly increasing").
				WithHintf("Bracket %q ceiling %s does not exceed the previous ceiling %s", b.Label, b.Ceiling, prev).
				Mark(ierr.ErrValidation)
		}
		prev = b.Ceiling
	}
	return nil
}

// StampDutyRules configures the stamp duty tiers and exemption floor.
type StampDutyRules struct {
	ExemptionThreshold decimal.Decimal `json:"exemption_threshold"`
	StandardRate       decimal.Decimal `json:"standard_rate"`
	LongLeaseRate      decimal.Decimal `json:"long_lease_rate"`
	ShortLeaseMaxYears int             `json:"short_lease_max_years"`
	MinLeaseYears      int             `json:"min_lease_years"`
	MaxLeaseYears      int             `json:"max_lease_years"`
}

func (r StampDutyRules) Validate() error {
	if r.ExemptionThreshold.IsNegative() {
		return ierr.NewError("stamp duty exemption threshold cannot be negative").
			WithHint("Stamp duty exemption threshold must be 0 or greater").
			Mark(ierr.ErrValidation)
	}
	if r.StandardRate.IsNegative() || r.LongLeaseRate.IsNegative() {
		return ierr.NewError("stamp duty rates cannot be negative").
			WithHint("Stamp duty rates must be 0 or greater").
			Mark(ierr.ErrValidation)
	}
	if r.MinLeaseYears < 1 || r.MaxLeaseYears < r.MinLeaseYears {
		return ierr.NewError("invalid lease duration bounds").
			WithHintf("Lease duration bounds [%d, %d] are not a valid range", r.MinLeaseYears, r.MaxLeaseYears).
			Mark(ierr.ErrValidation)
	}
	if r.ShortLeaseMaxYears < r.MinLeaseYears || r.ShortLeaseMaxYears > r.MaxLeaseYears {
		return ierr.NewError("short lease boundary out of range").
			WithHintf("Short lease boundary %d must fall within [%d, %d]", r.ShortLeaseMaxYears, r.MinLeaseYears, r.MaxLeaseYears).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// LandUseChargeRules configures the state+usage rate table and the
// early-payment discount window.
type LandUseChargeRules struct {
	Rates                  map[string]map[types.LandUsageType]decimal.Decimal `json:"rates"`
	EarlyPaymentDiscount   decimal.Decimal                                    `json:"early_payment_discount"`
	EarlyPaymentWindowDays int                                                `json:"early_payment_window_days"`
}

func (r LandUseChargeRules) Validate() error {
	one := decimal.NewFromInt(1)
	for state, usageRates := range r.Rates {
		for usage, rate := range usageRates {
			if err := usage.Validate(); err != nil {
				return err
			}
			if rate.IsNegative() {
				return ierr.NewError("land use charge rate cannot be negative").
					WithHintf("Rate for %s/%s must be 0 or greater", state, usage).
					Mark(ierr.ErrValidation)
			}
		}
	}
	if r.EarlyPaymentDiscount.IsNegative() || r.EarlyPaymentDiscount.GreaterThan(one) {
		return ierr.NewError("early payment discount out of range").
			WithHint("Early payment discount must be between 0 and 1").
			Mark(ierr.ErrValidation)
	}
	if r.EarlyPaymentWindowDays < 0 {
		return ierr.NewError("early payment window cannot be negative").
			WithHint("Early payment window days must be 0 or greater").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// RentReliefRules configures the rent relief deduction granted to individual
// taxpayers: min(Cap, Percentage x gross annual rent). A zero cap disables it.
type RentReliefRules struct {
	Percentage decimal.Decimal `json:"percentage"`
	Cap        decimal.Decimal `json:"cap"`
}

func (r RentReliefRules) Validate() error {
	one := decimal.NewFromInt(1)
	if r.Percentage.IsNegative() || r.Percentage.GreaterThan(one) {
		return ierr.NewError("rent relief percentage out of range").
			WithHint("Rent relief percentage must be between 0 and 1").
			Mark(ierr.ErrValidation)
	}
	if r.Cap.IsNegative() {
		return ierr.NewError("rent relief cap cannot be negative").
			WithHint("Rent relief cap must be 0 or greater").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// RuleSet is the full jurisdiction rule configuration, loaded once at
// startup. The calculators treat it as read-only.
type RuleSet struct {
	PersonalIncomeBrackets  BracketTable       `json:"personal_income_brackets"`
	CapitalGainsBrackets    BracketTable       `json:"capital_gains_brackets"`
	CompanyCapitalGainsRate decimal.Decimal    `json:"company_capital_gains_rate"`
	WithholdingRate         decimal.Decimal    `json:"withholding_rate"`
	StampDuty               StampDutyRules     `json:"stamp_duty"`
	LandUseCharge           LandUseChargeRules `json:"land_use_charge"`
	RentRelief              RentReliefRules    `json:"rent_relief"`
}

func (rs *RuleSet) Validate() error {
	if err := rs.PersonalIncomeBrackets.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid personal income bracket table").
			Mark(ierr.ErrValidation)
	}
	if err := rs.CapitalGainsBrackets.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid capital gains bracket table").
			Mark(ierr.ErrValidation)
	}

	one := decimal.NewFromInt(1)
	if rs.CompanyCapitalGainsRate.IsNegative() || rs.CompanyCapitalGainsRate.GreaterThan(one) {
		return ierr.NewError("company capital gains rate out of range").
			WithHint("Company capital gains rate must be between 0 and 1").
			Mark(ierr.ErrValidation)
	}
	if rs.WithholdingRate.IsNegative() || rs.WithholdingRate.GreaterThan(one) {
		return ierr.NewError("withholding rate out of range").
			WithHint("Withholding rate must be between 0 and 1").
			Mark(ierr.ErrValidation)
	}
	if err := rs.StampDuty.Validate(); err != nil {
		return err
	}
	if err := rs.LandUseCharge.Validate(); err != nil {
		return err
	}
	return rs.RentRelief.Validate()
}

// Default returns the built-in rule tables, modeled on the Nigeria Tax Act
// figures the product ships with. Deployments override them via the
// configured rules file.
func Default() *RuleSet {
	return &RuleSet{
		PersonalIncomeBrackets: BracketTable{
			{Label: "First 800,000", Ceiling: lo.ToPtr(decimal.NewFromInt(800_000)), Rate: decimal.Zero},
			{Label: "Next 2,200,000", Ceiling: lo.ToPtr(decimal.NewFromInt(3_000_000)), Rate: decimal.NewFromFloat(0.15)},
			{Label: "Next 9,000,000", Ceiling: lo.ToPtr(decimal.NewFromInt(12_000_000)), Rate: decimal.NewFromFloat(0.18)},
			{Label: "Next 13,000,000", Ceiling: lo.ToPtr(decimal.NewFromInt(25_000_000)), Rate: decimal.NewFromFloat(0.21)},
			{Label: "Next 25,000,000", Ceiling: lo.ToPtr(decimal.NewFromInt(50_000_000)), Rate: decimal.NewFromFloat(0.23)},
			{Label: "Above 50,000,000", Rate: decimal.NewFromFloat(0.25)},
		},
		CapitalGainsBrackets: BracketTable{
			{Label: "First 10,000,000", Ceiling: lo.ToPtr(decimal.NewFromInt(10_000_000)), Rate: decimal.NewFromFloat(0.15)},
			{Label: "Next 10,000,000", Ceiling: lo.ToPtr(decimal.NewFromInt(20_000_000)), Rate: decimal.NewFromFloat(0.20)},
			{Label: "Above 20,000,000", Rate: decimal.NewFromFloat(0.25)},
		},
		CompanyCapitalGainsRate: decimal.NewFromFloat(0.30),
		WithholdingRate:         decimal.NewFromFloat(0.10),
		StampDuty: StampDutyRules{
			ExemptionThreshold: decimal.NewFromInt(10_000_000),
			StandardRate:       decimal.NewFromFloat(0.0078),
			LongLeaseRate:      decimal.NewFromFloat(0.03),
			ShortLeaseMaxYears: 7,
			MinLeaseYears:      1,
			MaxLeaseYears:      21,
		},
		LandUseCharge: LandUseChargeRules{
			Rates: map[string]map[types.LandUsageType]decimal.Decimal{
				"lagos": {
					types.LandUsageTypeOwnerOccupied:     decimal.NewFromFloat(0.00076),
					types.LandUsageTypeRentedResidential: decimal.NewFromFloat(0.00256),
					types.LandUsageTypeCommercial:        decimal.NewFromFloat(0.0076),
				},
				"abuja": {
					types.LandUsageTypeOwnerOccupied:     decimal.NewFromFloat(0.001),
					types.LandUsageTypeRentedResidential: decimal.NewFromFloat(0.003),
					types.LandUsageTypeCommercial:        decimal.NewFromFloat(0.006),
				},
			},
			EarlyPaymentDiscount:   decimal.NewFromFloat(0.15),
			EarlyPaymentWindowDays: 30,
		},
		RentRelief: RentReliefRules{
			Percentage: decimal.NewFromFloat(0.20),
			Cap:        decimal.NewFromInt(500_000),
		},
	}
}
