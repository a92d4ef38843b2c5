package service

import (
	"context"

	"github.com/rentfolio/rentfolio/internal/api/dto"
	"github.com/rentfolio/rentfolio/internal/domain/taxsettings"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/types"
)

// TaxSettingsService manages the per-taxpayer tax profile. Settings are
// created with defaults on first access and only ever overwritten.
type TaxSettingsService interface {
	GetSettings(ctx context.Context) (*dto.TaxSettingsResponse, error)
	UpdateSettings(ctx context.Context, req *dto.UpdateTaxSettingsRequest) (*dto.TaxSettingsResponse, error)
}

type taxSettingsService struct {
	ServiceParams
}

func NewTaxSettingsService(params ServiceParams) TaxSettingsService {
	return &taxSettingsService{ServiceParams: params}
}

func (s *taxSettingsService) GetSettings(ctx context.Context) (*dto.TaxSettingsResponse, error) {
	settings, err := s.getOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.TaxSettingsResponse{TaxSettings: settings}, nil
}

func (s *taxSettingsService) UpdateSettings(ctx context.Context, req *dto.UpdateTaxSettingsRequest) (*dto.TaxSettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	settings, err := s.getOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	settings.TaxpayerType = types.TaxpayerType(req.TaxpayerType)
	settings.TaxIdentificationNumber = req.TaxIdentificationNumber
	settings.DefaultTaxYear = req.DefaultTaxYear
	settings.Currency = req.Currency

	if err := s.TaxSettingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	s.Logger.Infow("updated tax settings",
		"settings_id", settings.ID,
		"taxpayer_type", settings.TaxpayerType,
	)
	return &dto.TaxSettingsResponse{TaxSettings: settings}, nil
}

func (s *taxSettingsService) getOrCreate(ctx context.Context) (*taxsettings.TaxSettings, error) {
	settings, err := s.TaxSettingsRepo.GetByTenant(ctx)
	if err == nil {
		return settings, nil
	}
	if !ierr.IsNotFound(err) {
		return nil, err
	}

	settings = taxsettings.NewDefault(ctx)
	if err := s.TaxSettingsRepo.Create(ctx, settings); err != nil {
		return nil, err
	}
	s.Logger.Infow("created default tax settings", "settings_id", settings.ID)
	return settings, nil
}
