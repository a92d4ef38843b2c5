package types

import (
	ierr "github.com/rentfolio/rentfolio/internal/errors"
)

// TaxCalculationStatus is the lifecycle state of a persisted tax calculation.
// A draft can be recomputed or deleted; a finalized calculation is immutable.
type TaxCalculationStatus string

const (
	// TaxCalculationStatusDraft indicates the calculation can still be recomputed or deleted
	TaxCalculationStatusDraft TaxCalculationStatus = "DRAFT"
	// TaxCalculationStatusFinalized indicates the calculation is the taxpayer's filed
	// record of truth and can never be modified or deleted
	TaxCalculationStatusFinalized TaxCalculationStatus = "FINALIZED"
)

func (s TaxCalculationStatus) Validate() error {
	switch s {
	case TaxCalculationStatusDraft, TaxCalculationStatusFinalized:
		return nil
	}
	return ierr.NewError("invalid calculation status").
		WithHintf("Calculation status %s is not valid", s).
		Mark(ierr.ErrValidation)
}

// TaxpayerType determines which rate schedule applies to capital gains.
type TaxpayerType string

const (
	TaxpayerTypeIndividual TaxpayerType = "individual"
	TaxpayerTypeCompany    TaxpayerType = "company"
)

func (t TaxpayerType) Validate() error {
	switch t {
	case TaxpayerTypeIndividual, TaxpayerTypeCompany:
		return nil
	}
	return ierr.NewError("invalid taxpayer type").
		WithHintf("Taxpayer type %s is not valid", t).
		Mark(ierr.ErrValidation)
}

// StampDutyInstrument is the kind of instrument stamp duty is charged on.
type StampDutyInstrument string

const (
	StampDutyInstrumentLease StampDutyInstrument = "lease"
	StampDutyInstrumentSale  StampDutyInstrument = "sale"
)

func (i StampDutyInstrument) Validate() error {
	switch i {
	case StampDutyInstrumentLease, StampDutyInstrumentSale:
		return nil
	}
	return ierr.NewError("invalid stamp duty instrument").
		WithHintf("Stamp duty instrument %s is not valid", i).
		Mark(ierr.ErrValidation)
}

// LandUsageType is the property usage class for land use charge rate lookup.
type LandUsageType string

const (
	LandUsageTypeOwnerOccupied     LandUsageType = "owner_occupied"
	LandUsageTypeRentedResidential LandUsageType = "rented_residential"
	LandUsageTypeCommercial        LandUsageType = "commercial"
)

func (u LandUsageType) Validate() error {
	switch u {
	case LandUsageTypeOwnerOccupied, LandUsageTypeRentedResidential, LandUsageTypeCommercial:
		return nil
	}
	return ierr.NewError("invalid land usage type").
		WithHintf("Land usage type %s is not valid", u).
		Mark(ierr.ErrValidation)
}

// TaxCalculationFilter is the filter for listing tax calculation history
type TaxCalculationFilter struct {
	*QueryFilter
	*TimeRangeFilter
	CalculationIDs    []string              `json:"calculation_ids,omitempty" form:"calculation_ids"`
	PropertyID        *string               `json:"property_id,omitempty" form:"property_id"`
	TaxYear           *int                  `json:"tax_year,omitempty" form:"tax_year"`
	CalculationStatus *TaxCalculationStatus `json:"calculation_status,omitempty" form:"calculation_status"`
}

// NewDefaultTaxCalculationFilter creates a filter with default pagination
func NewDefaultTaxCalculationFilter() *TaxCalculationFilter {
	return &TaxCalculationFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitTaxCalculationFilter creates a filter without pagination limits
func NewNoLimitTaxCalculationFilter() *TaxCalculationFilter {
	return &TaxCalculationFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

func (f *TaxCalculationFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return ierr.WithError(err).
				WithHint("Invalid pagination parameters").
				Mark(ierr.ErrValidation)
		}
	}
	if f.TimeRangeFilter != nil {
		if err := f.TimeRangeFilter.Validate(); err != nil {
			return ierr.WithError(err).
				WithHint("Invalid time range").
				Mark(ierr.ErrValidation)
		}
	}
	if f.CalculationStatus != nil {
		if err := f.CalculationStatus.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (f *TaxCalculationFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

func (f *TaxCalculationFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

func (f *TaxCalculationFilter) GetStatus() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

func (f *TaxCalculationFilter) GetSort() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

func (f *TaxCalculationFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

func (f *TaxCalculationFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
