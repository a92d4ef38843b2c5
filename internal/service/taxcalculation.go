package service

import (
	"context"
	"time"

	"github.com/rentfolio/rentfolio/internal/api/dto"
	"github.com/rentfolio/rentfolio/internal/domain/taxcalc"
	"github.com/rentfolio/rentfolio/internal/domain/taxcalculation"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TaxCalculationService orchestrates the tax computation: it resolves the
// financial facts, runs the component calculators, persists the result as a
// draft, and manages the draft -> finalized lifecycle.
type TaxCalculationService interface {
	Calculate(ctx context.Context, req *dto.CreateTaxCalculationRequest) (*dto.TaxCalculationResponse, error)
	AutoFetchTaxData(ctx context.Context, req *dto.FinancialDataRequest) (*dto.FinancialDataResponse, error)
	GetCalculation(ctx context.Context, id string) (*dto.TaxCalculationResponse, error)
	ListCalculations(ctx context.Context, filter *types.TaxCalculationFilter) (*dto.ListTaxCalculationsResponse, error)
	FinalizeCalculation(ctx context.Context, id string) (*dto.TaxCalculationResponse, error)
	DeleteCalculation(ctx context.Context, id string) error
}

type taxCalculationService struct {
	ServiceParams
	financialData FinancialDataService
	settings      TaxSettingsService
}

func NewTaxCalculationService(params ServiceParams) TaxCalculationService {
	return &taxCalculationService{
		ServiceParams: params,
		financialData: NewFinancialDataService(params),
		settings:      NewTaxSettingsService(params),
	}
}

func (s *taxCalculationService) Calculate(ctx context.Context, req *dto.CreateTaxCalculationRequest) (*dto.TaxCalculationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	settingsResp, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	taxpayerType := settingsResp.TaxpayerType

	fin, err := s.financialData.Resolve(ctx, req.PropertyID, req.TaxYear)
	if err != nil {
		return nil, err
	}

	// monetary leaves are rounded half-up to 2dp once; every total derives
	// from the rounded leaves so the persisted invariants hold exactly
	rentalIncome := fin.RentalIncome.Round(2)
	otherIncome := decimal.Zero
	if req.OtherIncome != nil {
		otherIncome = req.OtherIncome.Round(2)
	}
	otherDeductions := fin.OtherDeductions
	if req.OtherDeductions != nil {
		otherDeductions = *req.OtherDeductions
	}
	otherDeductions = otherDeductions.Round(2)

	rentRelief := s.computeRentRelief(taxpayerType, rentalIncome)

	totalIncome := rentalIncome.Add(otherIncome)
	totalDeductions := otherDeductions.Add(rentRelief)
	taxableIncome := totalIncome.Sub(totalDeductions)
	if taxableIncome.IsNegative() {
		taxableIncome = decimal.Zero
	}

	pitTotal, brackets, err := taxcalc.ComputeBracketTax(taxableIncome, s.Rules.PersonalIncomeBrackets)
	if err != nil {
		return nil, err
	}
	personalIncomeTax := pitTotal.Round(2)

	wht := taxcalc.ComputeWithholdingTax(rentalIncome, s.Rules)
	wht.Amount = wht.Amount.Round(2)

	components := []taxcalc.Component{
		{
			Code:   taxcalc.ComponentPersonalIncomeTax,
			Label:  "Personal Income Tax",
			Amount: personalIncomeTax,
		},
		wht,
	}

	capitalGainsTax := decimal.Zero
	if req.CapitalGains != nil {
		cgt, err := s.computeCapitalGains(req, fin, taxpayerType)
		if err != nil {
			return nil, err
		}
		cgt.Amount = cgt.Amount.Round(2)
		capitalGainsTax = cgt.Amount
		components = append(components, *cgt)
	}

	stampDuty := decimal.Zero
	if req.StampDuty != nil {
		sd, err := taxcalc.ComputeStampDuty(taxcalc.StampDutyInput{
			Instrument:         req.StampDuty.Instrument,
			Value:              req.StampDuty.Value,
			LeaseDurationYears: req.StampDuty.LeaseDurationYears,
		}, s.Rules)
		if err != nil {
			return nil, err
		}
		sd.Amount = sd.Amount.Round(2)
		stampDuty = sd.Amount
		components = append(components, *sd)
	}

	landUseCharge := decimal.Zero
	if luc, err := s.computeLandUseCharge(req, fin); err != nil {
		return nil, err
	} else if luc != nil {
		luc.Amount = luc.Amount.Round(2)
		landUseCharge = luc.Amount
		components = append(components, *luc)
	}

	propertyTaxes := fin.PropertyTaxes.Round(2)
	if propertyTaxes.IsPositive() {
		components = append(components, taxcalc.Component{
			Code:   taxcalc.ComponentPropertyTaxes,
			Label:  "Property Taxes",
			Amount: propertyTaxes,
		})
	}

	totalTaxLiability := personalIncomeTax.
		Add(wht.Amount).
		Add(capitalGainsTax).
		Add(stampDuty).
		Add(landUseCharge).
		Add(propertyTaxes)

	calc := &taxcalculation.TaxCalculation{
		PropertyID:        lo.ToPtr(req.PropertyID),
		TaxYear:           req.TaxYear,
		Currency:          settingsResp.Currency,
		TotalRentalIncome: rentalIncome,
		OtherIncome:       otherIncome,
		TotalIncome:       totalIncome,
		OtherDeductions:   otherDeductions,
		RentRelief:        rentRelief,
		TotalDeductions:   totalDeductions,
		TaxableIncome:     taxableIncome,
		PersonalIncomeTax: personalIncomeTax,
		WithholdingTax:    wht.Amount,
		CapitalGainsTax:   capitalGainsTax,
		StampDuty:         stampDuty,
		LandUseCharge:     landUseCharge,
		PropertyTaxes:     propertyTaxes,
		TotalTaxLiability: totalTaxLiability,
		CalculationStatus: types.TaxCalculationStatusDraft,
		CalculationDate:   time.Now().UTC(),
		Breakdown: taxcalc.TaxBreakdown{
			Brackets:   brackets,
			Components: components,
		},
	}

	if err := s.persistDraft(ctx, calc); err != nil {
		return nil, err
	}

	s.Logger.Infow("computed tax calculation",
		"calculation_id", calc.ID,
		"property_id", req.PropertyID,
		"tax_year", req.TaxYear,
		"total_tax_liability", calc.TotalTaxLiability,
	)
	return &dto.TaxCalculationResponse{TaxCalculation: calc}, nil
}

// computeRentRelief grants individual taxpayers min(cap, pct x gross rent).
// A zero cap disables the relief entirely.
func (s *taxCalculationService) computeRentRelief(taxpayerType types.TaxpayerType, rentalIncome decimal.Decimal) decimal.Decimal {
	rr := s.Rules.RentRelief
	if taxpayerType != types.TaxpayerTypeIndividual || !rr.Cap.IsPositive() {
		return decimal.Zero
	}
	relief := rentalIncome.Mul(rr.Percentage)
	if relief.GreaterThan(rr.Cap) {
		relief = rr.Cap
	}
	return relief.Round(2)
}

func (s *taxCalculationService) computeCapitalGains(req *dto.CreateTaxCalculationRequest, fin *dto.FinancialDataResponse, taxpayerType types.TaxpayerType) (*taxcalc.Component, error) {
	salePrice := req.CapitalGains.SalePrice
	if salePrice == nil {
		salePrice = fin.PropertySalePrice
	}
	purchasePrice := req.CapitalGains.PurchasePrice
	if purchasePrice == nil {
		purchasePrice = fin.PropertyPurchasePrice
	}
	if salePrice == nil || purchasePrice == nil {
		return nil, ierr.NewError("capital gains inputs incomplete").
			WithHint("Sale price and purchase price are required, either on the request or on the property record").
			Mark(ierr.ErrValidation)
	}

	return taxcalc.ComputeCapitalGains(taxcalc.CapitalGainsInput{
		SalePrice:          *salePrice,
		PurchasePrice:      *purchasePrice,
		Improvements:       req.CapitalGains.Improvements,
		DisposalCosts:      req.CapitalGains.DisposalCosts,
		TaxpayerType:       taxpayerType,
		IsPrimaryResidence: req.CapitalGains.IsPrimaryResidence,
	}, s.Rules)
}

// computeLandUseCharge returns nil when the component was not requested or
// when no state/usage type could be determined; a missing base assessment on
// an explicit request is an error.
func (s *taxCalculationService) computeLandUseCharge(req *dto.CreateTaxCalculationRequest, fin *dto.FinancialDataResponse) (*taxcalc.Component, error) {
	if req.LandUseCharge == nil {
		return nil, nil
	}

	state := req.LandUseCharge.State
	if state == "" {
		state = fin.PropertyState
	}
	usageType := req.LandUseCharge.UsageType
	if usageType == nil {
		usageType = fin.PropertyUsageType
	}
	if state == "" || usageType == nil {
		return nil, nil
	}

	baseAssessment := req.LandUseCharge.BaseAssessment
	if baseAssessment == nil {
		baseAssessment = fin.PropertyCurrentValue
	}
	if baseAssessment == nil {
		return nil, ierr.NewError("land use charge base assessment missing").
			WithHint("Provide a base assessment or set the property's current value").
			Mark(ierr.ErrValidation)
	}

	return taxcalc.ComputeLandUseCharge(taxcalc.LandUseChargeInput{
		State:           state,
		UsageType:       *usageType,
		BaseAssessment:  *baseAssessment,
		PaymentDate:     req.LandUseCharge.PaymentDate,
		FiscalYearStart: types.TaxYearStart(req.TaxYear),
	}, s.Rules)
}

// persistDraft overwrites the existing draft for the (property, tax year)
// pair in place, or creates a new draft when none exists. A finalized
// calculation is never touched.
func (s *taxCalculationService) persistDraft(ctx context.Context, calc *taxcalculation.TaxCalculation) error {
	existing, err := s.TaxCalculationRepo.GetDraftForPropertyYear(ctx, calc.PropertyID, calc.TaxYear)
	switch {
	case err == nil:
		calc.ID = existing.ID
		calc.ReferenceNumber = existing.ReferenceNumber
		calc.BaseModel = existing.BaseModel
		if err := calc.Validate(); err != nil {
			return err
		}
		return s.TaxCalculationRepo.Update(ctx, calc)
	case ierr.IsNotFound(err):
		calc.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TAX_CALCULATION)
		calc.ReferenceNumber = types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_CALCULATION)
		calc.BaseModel = types.GetDefaultBaseModel(ctx)
		if err := calc.Validate(); err != nil {
			return err
		}
		createErr := s.TaxCalculationRepo.Create(ctx, calc)
		if createErr != nil && ierr.IsAlreadyExists(createErr) {
			// lost the race against a concurrent first calculation for the
			// same property and year; adopt the winner's draft row
			return s.adoptExistingDraft(ctx, calc)
		}
		return createErr
	default:
		return err
	}
}

func (s *taxCalculationService) adoptExistingDraft(ctx context.Context, calc *taxcalculation.TaxCalculation) error {
	existing, err := s.TaxCalculationRepo.GetDraftForPropertyYear(ctx, calc.PropertyID, calc.TaxYear)
	if err != nil {
		return err
	}
	calc.ID = existing.ID
	calc.ReferenceNumber = existing.ReferenceNumber
	calc.BaseModel = existing.BaseModel
	return s.TaxCalculationRepo.Update(ctx, calc)
}

func (s *taxCalculationService) AutoFetchTaxData(ctx context.Context, req *dto.FinancialDataRequest) (*dto.FinancialDataResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.financialData.Resolve(ctx, req.PropertyID, req.TaxYear)
}

func (s *taxCalculationService) GetCalculation(ctx context.Context, id string) (*dto.TaxCalculationResponse, error) {
	calc, err := s.TaxCalculationRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.TaxCalculationResponse{TaxCalculation: calc}, nil
}

func (s *taxCalculationService) ListCalculations(ctx context.Context, filter *types.TaxCalculationFilter) (*dto.ListTaxCalculationsResponse, error) {
	if filter == nil {
		filter = types.NewDefaultTaxCalculationFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	calcs, err := s.TaxCalculationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.TaxCalculationRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.TaxCalculationResponse, len(calcs))
	for i, calc := range calcs {
		items[i] = &dto.TaxCalculationResponse{TaxCalculation: calc}
	}
	return &dto.ListTaxCalculationsResponse{
		Items:      items,
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *taxCalculationService) FinalizeCalculation(ctx context.Context, id string) (*dto.TaxCalculationResponse, error) {
	if err := s.TaxCalculationRepo.FinalizeDraft(ctx, id, time.Now().UTC()); err != nil {
		return nil, err
	}

	calc, err := s.TaxCalculationRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Logger.Infow("finalized tax calculation", "calculation_id", id)
	return &dto.TaxCalculationResponse{TaxCalculation: calc}, nil
}

func (s *taxCalculationService) DeleteCalculation(ctx context.Context, id string) error {
	if err := s.TaxCalculationRepo.DeleteDraft(ctx, id); err != nil {
		return err
	}
	s.Logger.Infow("deleted draft tax calculation", "calculation_id", id)
	return nil
}
