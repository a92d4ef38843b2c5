package taxrules

import (
	"os"

	"github.com/rentfolio/rentfolio/internal/config"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/types"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// The file schema keeps every monetary value and rate as a string so that
// decimals never round-trip through binary floats.
type ruleFile struct {
	PersonalIncomeBrackets  []bracketEntry  `yaml:"personal_income_brackets"`
	CapitalGainsBrackets    []bracketEntry  `yaml:"capital_gains_brackets"`
	CompanyCapitalGainsRate string          `yaml:"company_capital_gains_rate"`
	WithholdingRate         string          `yaml:"withholding_rate"`
	StampDuty               stampDutyEntry  `yaml:"stamp_duty"`
	LandUseCharge           landUseEntry    `yaml:"land_use_charge"`
	RentRelief              rentReliefEntry `yaml:"rent_relief"`
}

type bracketEntry struct {
	Label   string `yaml:"label"`
	Ceiling string `yaml:"ceiling"` // empty = open-ended top tier
	Rate    string `yaml:"rate"`
}

type stampDutyEntry struct {
	ExemptionThreshold string `yaml:"exemption_threshold"`
	StandardRate       string `yaml:"standard_rate"`
	LongLeaseRate      string `yaml:"long_lease_rate"`
	ShortLeaseMaxYears int    `yaml:"short_lease_max_years"`
	MinLeaseYears      int    `yaml:"min_lease_years"`
	MaxLeaseYears      int    `yaml:"max_lease_years"`
}

type landUseEntry struct {
	Rates                  map[string]map[string]string `yaml:"rates"`
	EarlyPaymentDiscount   string                       `yaml:"early_payment_discount"`
	EarlyPaymentWindowDays int                          `yaml:"early_payment_window_days"`
}

type rentReliefEntry struct {
	Percentage string `yaml:"percentage"`
	Cap        string `yaml:"cap"`
}

// NewRuleSet loads the rule tables for the configured jurisdiction file, or
// the built-in defaults when no file is configured. The result is validated
// before the service starts; a malformed table refuses startup.
func NewRuleSet(cfg *config.Configuration) (*RuleSet, error) {
	if cfg.TaxRules.Path == "" {
		rules := Default()
		if err := rules.Validate(); err != nil {
			return nil, err
		}
		return rules, nil
	}
	return Load(cfg.TaxRules.Path)
}

// Load reads and validates a rule-table file.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to read tax rules file %s", path).
			Mark(ierr.ErrSystem)
	}
	return Parse(data)
}

// Parse decodes and validates rule tables from YAML.
func Parse(data []byte) (*RuleSet, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Tax rules file is not valid YAML").
			Mark(ierr.ErrValidation)
	}

	rules := &RuleSet{}

	var err error
	if rules.PersonalIncomeBrackets, err = parseBrackets(file.PersonalIncomeBrackets); err != nil {
		return nil, err
	}
	if rules.CapitalGainsBrackets, err = parseBrackets(file.CapitalGainsBrackets); err != nil {
		return nil, err
	}
	if rules.CompanyCapitalGainsRate, err = parseDecimal(file.CompanyCapitalGainsRate, "company_capital_gains_rate"); err != nil {
		return nil, err
	}
	if rules.WithholdingRate, err = parseDecimal(file.WithholdingRate, "withholding_rate"); err != nil {
		return nil, err
	}

	if rules.StampDuty.ExemptionThreshold, err = parseDecimal(file.StampDuty.ExemptionThreshold, "stamp_duty.exemption_threshold"); err != nil {
		return nil, err
	}
	if rules.StampDuty.StandardRate, err = parseDecimal(file.StampDuty.StandardRate, "stamp_duty.standard_rate"); err != nil {
		return nil, err
	}
	if rules.StampDuty.LongLeaseRate, err = parseDecimal(file.StampDuty.LongLeaseRate, "stamp_duty.long_lease_rate"); err != nil {
		return nil, err
	}
	rules.StampDuty.ShortLeaseMaxYears = file.StampDuty.ShortLeaseMaxYears
	rules.StampDuty.MinLeaseYears = file.StampDuty.MinLeaseYears
	rules.StampDuty.MaxLeaseYears = file.StampDuty.MaxLeaseYears

	rules.LandUseCharge.Rates = make(map[string]map[types.LandUsageType]decimal.Decimal, len(file.LandUseCharge.Rates))
	for state, usageRates := range file.LandUseCharge.Rates {
		rules.LandUseCharge.Rates[state] = make(map[types.LandUsageType]decimal.Decimal, len(usageRates))
		for usage, rate := range usageRates {
			parsed, perr := parseDecimal(rate, "land_use_charge.rates."+state+"."+usage)
			if perr != nil {
				return nil, perr
			}
			rules.LandUseCharge.Rates[state][types.LandUsageType(usage)] = parsed
		}
	}
	if rules.LandUseCharge.EarlyPaymentDiscount, err = parseDecimal(file.LandUseCharge.EarlyPaymentDiscount, "land_use_charge.early_payment_discount"); err != nil {
		return nil, err
	}
	rules.LandUseCharge.EarlyPaymentWindowDays = file.LandUseCharge.EarlyPaymentWindowDays

	if rules.RentRelief.Percentage, err = parseDecimal(file.RentRelief.Percentage, "rent_relief.percentage"); err != nil {
		return nil, err
	}
	if rules.RentRelief.Cap, err = parseDecimal(file.RentRelief.Cap, "rent_relief.cap"); err != nil {
		return nil, err
	}

	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

func parseBrackets(entries []bracketEntry) (BracketTable, error) {
	table := make(BracketTable, 0, len(entries))
	for _, e := range entries {
		b := Bracket{Label: e.Label}
		if e.Ceiling != "" {
			ceiling, err := parseDecimal(e.Ceiling, "bracket ceiling for "+e.Label)
			if err != nil {
				return nil, err
			}
			b.Ceiling = &ceiling
		}
		rate, err := parseDecimal(e.Rate, "bracket rate for "+e.Label)
		if err != nil {
			return nil, err
		}
		b.Rate = rate
		table = append(table, b)
	}
	return table, nil
}

func parseDecimal(value, field string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHintf("Tax rules field %s is not a valid decimal", field).
			Mark(ierr.ErrValidation)
	}
	return d, nil
}
