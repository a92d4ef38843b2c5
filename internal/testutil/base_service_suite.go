package testutil

import (
	"context"
	"time"

	"github.com/rentfolio/rentfolio/internal/config"
	"github.com/rentfolio/rentfolio/internal/domain/expense"
	"github.com/rentfolio/rentfolio/internal/domain/payment"
	"github.com/rentfolio/rentfolio/internal/domain/property"
	"github.com/rentfolio/rentfolio/internal/domain/taxcalculation"
	"github.com/rentfolio/rentfolio/internal/domain/taxsettings"
	"github.com/rentfolio/rentfolio/internal/logger"
	"github.com/rentfolio/rentfolio/internal/types"
	"github.com/rentfolio/rentfolio/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	TaxCalculationRepo taxcalculation.Repository
	TaxSettingsRepo    taxsettings.Repository
	PropertyRepo       property.Repository
	PaymentRepo        payment.Repository
	ExpenseRepo        expense.Repository
}

// ContextWithTenant builds a request context for an arbitrary tenant and user
func ContextWithTenant(tenantID, userID string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxTenantID, tenantID)
	ctx = context.WithValue(ctx, types.CtxUserID, userID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	s.config = cfg

	var err error
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.Background()
	s.ctx = context.WithValue(s.ctx, types.CtxTenantID, types.DefaultTenantID)
	s.ctx = context.WithValue(s.ctx, types.CtxUserID, types.DefaultUserID)
	s.ctx = context.WithValue(s.ctx, types.CtxRequestID, types.GenerateUUID())
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		TaxCalculationRepo: NewInMemoryTaxCalculationStore(),
		TaxSettingsRepo:    NewInMemoryTaxSettingsStore(),
		PropertyRepo:       NewInMemoryPropertyStore(),
		PaymentRepo:        NewInMemoryPaymentStore(),
		ExpenseRepo:        NewInMemoryExpenseStore(),
	}
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.TaxCalculationRepo.(*InMemoryTaxCalculationStore).Clear()
	s.stores.TaxSettingsRepo.(*InMemoryTaxSettingsStore).Clear()
	s.stores.PropertyRepo.(*InMemoryPropertyStore).Clear()
	s.stores.PaymentRepo.(*InMemoryPaymentStore).Clear()
	s.stores.ExpenseRepo.(*InMemoryExpenseStore).Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// SetContext overrides the test context, e.g. to act as another tenant
func (s *BaseServiceTestSuite) SetContext(ctx context.Context) {
	s.ctx = ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
