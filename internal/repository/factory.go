package repository

import (
	"github.com/rentfolio/rentfolio/internal/domain/expense"
	"github.com/rentfolio/rentfolio/internal/domain/payment"
	"github.com/rentfolio/rentfolio/internal/domain/property"
	"github.com/rentfolio/rentfolio/internal/domain/taxcalculation"
	"github.com/rentfolio/rentfolio/internal/domain/taxsettings"
	"github.com/rentfolio/rentfolio/internal/logger"
	"github.com/rentfolio/rentfolio/internal/postgres"
	postgresRepo "github.com/rentfolio/rentfolio/internal/repository/postgres"
)

func NewTaxCalculationRepository(db *postgres.DB, logger *logger.Logger) taxcalculation.Repository {
	return postgresRepo.NewTaxCalculationRepository(db, logger)
}

func NewTaxSettingsRepository(db *postgres.DB, logger *logger.Logger) taxsettings.Repository {
	return postgresRepo.NewTaxSettingsRepository(db, logger)
}

func NewPropertyRepository(db *postgres.DB, logger *logger.Logger) property.Repository {
	return postgresRepo.NewPropertyRepository(db, logger)
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return postgresRepo.NewPaymentRepository(db, logger)
}

func NewExpenseRepository(db *postgres.DB, logger *logger.Logger) expense.Repository {
	return postgresRepo.NewExpenseRepository(db, logger)
}
