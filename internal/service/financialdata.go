package service

import (
	"context"
	"sort"
	"strings"

	"github.com/rentfolio/rentfolio/internal/api/dto"
	"github.com/rentfolio/rentfolio/internal/domain/taxcalc"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/types"
	"github.com/shopspring/decimal"
)

// FinancialDataService assembles the financial facts a tax calculation runs
// on: cash-basis rental income, deductible expenses by category, and the
// property's price fields. Every call resolves fresh from the stores.
type FinancialDataService interface {
	Resolve(ctx context.Context, propertyID string, taxYear int) (*dto.FinancialDataResponse, error)
}

type financialDataService struct {
	ServiceParams
}

func NewFinancialDataService(params ServiceParams) FinancialDataService {
	return &financialDataService{ServiceParams: params}
}

func (s *financialDataService) Resolve(ctx context.Context, propertyID string, taxYear int) (*dto.FinancialDataResponse, error) {
	prop, err := s.PropertyRepo.Get(ctx, propertyID)
	if err != nil {
		if ierr.IsNotFound(err) {
			// a property outside the caller's account resolves as an
			// authorization failure, never as zero income
			return nil, ierr.NewError("property access denied").
				WithHintf("Property %s does not belong to this account", propertyID).
				WithReportableDetails(map[string]any{"property_id": propertyID}).
				Mark(ierr.ErrPermissionDenied)
		}
		return nil, err
	}

	start := types.TaxYearStart(taxYear)
	end := types.TaxYearStart(taxYear + 1)

	payments, err := s.PaymentRepo.ListByPropertyBetween(ctx, &propertyID, start, end)
	if err != nil {
		return nil, err
	}

	rentalIncome := decimal.Zero
	for _, p := range payments {
		if p.PaymentStatus.IsSettled() {
			rentalIncome = rentalIncome.Add(p.Amount)
		}
	}

	expenses, err := s.ExpenseRepo.ListByPropertyBetween(ctx, &propertyID, start, end)
	if err != nil {
		return nil, err
	}

	deductions := decimal.Zero
	propertyTaxes := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if !e.ExpenseStatus.IsDeductible() {
			continue
		}
		category := strings.ToLower(strings.TrimSpace(e.Category))
		if category == types.ExpenseCategoryPropertyTax {
			propertyTaxes = propertyTaxes.Add(e.Amount)
			continue
		}
		deductions = deductions.Add(e.Amount)
		byCategory[category] = byCategory[category].Add(e.Amount)
	}

	breakdown := make([]taxcalc.ExpenseBreakdownEntry, 0, len(byCategory))
	for category, amount := range byCategory {
		breakdown = append(breakdown, taxcalc.ExpenseBreakdownEntry{
			Category: category,
			Amount:   amount,
		})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Category < breakdown[j].Category
	})

	s.Logger.Debugw("resolved financial data",
		"property_id", propertyID,
		"tax_year", taxYear,
		"rental_income", rentalIncome,
		"deductions", deductions,
		"property_taxes", propertyTaxes,
	)

	return &dto.FinancialDataResponse{
		TaxYear:               taxYear,
		PropertyID:            propertyID,
		RentalIncome:          rentalIncome,
		OtherDeductions:       deductions,
		PropertyTaxes:         propertyTaxes,
		ExpenseBreakdown:      breakdown,
		PropertyPurchasePrice: prop.PurchasePrice,
		PropertySalePrice:     prop.SalePrice,
		PropertyCurrentValue:  prop.CurrentValue,
		PropertyState:         prop.State,
		PropertyUsageType:     prop.UsageType,
	}, nil
}
