package service

import (
	"github.com/rentfolio/rentfolio/internal/config"
	"github.com/rentfolio/rentfolio/internal/domain/expense"
	"github.com/rentfolio/rentfolio/internal/domain/payment"
	"github.com/rentfolio/rentfolio/internal/domain/property"
	"github.com/rentfolio/rentfolio/internal/domain/taxcalculation"
	"github.com/rentfolio/rentfolio/internal/domain/taxsettings"
	"github.com/rentfolio/rentfolio/internal/logger"
	"github.com/rentfolio/rentfolio/internal/taxrules"
)

// ServiceParams holds the dependencies every service draws from. Passing the
// whole struct keeps constructors uniform and lets tests swap repositories
// for in-memory stores.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Rules  *taxrules.RuleSet

	TaxCalculationRepo taxcalculation.Repository
	TaxSettingsRepo    taxsettings.Repository
	PropertyRepo       property.Repository
	PaymentRepo        payment.Repository
	ExpenseRepo        expense.Repository
}

// NewServiceParams assembles the service dependency bundle for DI wiring.
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	rules *taxrules.RuleSet,
	taxCalculationRepo taxcalculation.Repository,
	taxSettingsRepo taxsettings.Repository,
	propertyRepo property.Repository,
	paymentRepo payment.Repository,
	expenseRepo expense.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:             logger,
		Config:             config,
		Rules:              rules,
		TaxCalculationRepo: taxCalculationRepo,
		TaxSettingsRepo:    taxSettingsRepo,
		PropertyRepo:       propertyRepo,
		PaymentRepo:        paymentRepo,
		ExpenseRepo:        expenseRepo,
	}
}
