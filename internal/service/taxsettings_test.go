package service

import (
	"testing"
	"time"

	"github.com/rentfolio/rentfolio/internal/api/dto"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/taxrules"
	"github.com/rentfolio/rentfolio/internal/testutil"
	"github.com/rentfolio/rentfolio/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type TaxSettingsServiceSuite struct {
	testutil.BaseServiceTestSuite
	service TaxSettingsService
}

func TestTaxSettingsService(t *testing.T) {
	suite.Run(t, new(TaxSettingsServiceSuite))
}

func (s *TaxSettingsServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewTaxSettingsService(ServiceParams{
		Logger:             s.GetLogger(),
		Config:             s.GetConfig(),
		Rules:              taxrules.Default(),
		TaxCalculationRepo: stores.TaxCalculationRepo,
		TaxSettingsRepo:    stores.TaxSettingsRepo,
		PropertyRepo:       stores.PropertyRepo,
		PaymentRepo:        stores.PaymentRepo,
		ExpenseRepo:        stores.ExpenseRepo,
	})
}

func (s *TaxSettingsServiceSuite) TestGetSettingsCreatesDefaults() {
	resp, err := s.service.GetSettings(s.GetContext())
	s.NoError(err)
	s.NotEmpty(resp.ID)
	s.Equal(types.TaxpayerTypeIndividual, resp.TaxpayerType)
	s.Equal("NGN", resp.Currency)
	s.Equal(time.Now().UTC().Year(), resp.DefaultTaxYear)
	s.Nil(resp.TaxIdentificationNumber)

	// a second read returns the same row, not another default
	again, err := s.service.GetSettings(s.GetContext())
	s.NoError(err)
	s.Equal(resp.ID, again.ID)
}

func (s *TaxSettingsServiceSuite) TestUpdateSettings() {
	resp, err := s.service.UpdateSettings(s.GetContext(), &dto.UpdateTaxSettingsRequest{
		TaxpayerType:            string(types.TaxpayerTypeCompany),
		TaxIdentificationNumber: lo.ToPtr("TIN-12345678"),
		DefaultTaxYear:          2026,
		Currency:                "NGN",
	})
	s.NoError(err)
	s.Equal(types.TaxpayerTypeCompany, resp.TaxpayerType)
	s.Equal(2026, resp.DefaultTaxYear)
	s.Require().NotNil(resp.TaxIdentificationNumber)
	s.Equal("TIN-12345678", *resp.TaxIdentificationNumber)

	read, err := s.service.GetSettings(s.GetContext())
	s.NoError(err)
	s.Equal(resp.ID, read.ID)
	s.Equal(types.TaxpayerTypeCompany, read.TaxpayerType)
}

func (s *TaxSettingsServiceSuite) TestUpdateSettingsValidation() {
	tests := []struct {
		name string
		req  *dto.UpdateTaxSettingsRequest
	}{
		{
			name: "unknown taxpayer type",
			req: &dto.UpdateTaxSettingsRequest{
				TaxpayerType:   "trust",
				DefaultTaxYear: 2026,
				Currency:       "NGN",
			},
		},
		{
			name: "missing tax year",
			req: &dto.UpdateTaxSettingsRequest{
				TaxpayerType: "individual",
				Currency:     "NGN",
			},
		},
		{
			name: "bad currency code",
			req: &dto.UpdateTaxSettingsRequest{
				TaxpayerType:   "individual",
				DefaultTaxYear: 2026,
				Currency:       "NAIRA",
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.UpdateSettings(s.GetContext(), tt.req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *TaxSettingsServiceSuite) TestSettingsAreTenantScoped() {
	first, err := s.service.GetSettings(s.GetContext())
	s.NoError(err)

	otherCtx := testutil.ContextWithTenant(types.GenerateUUID(), types.GenerateUUID())
	second, err := s.service.GetSettings(otherCtx)
	s.NoError(err)
	s.NotEqual(first.ID, second.ID)
}
