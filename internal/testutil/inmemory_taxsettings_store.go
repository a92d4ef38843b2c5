package testutil

import (
	"context"
	"time"

	"github.com/rentfolio/rentfolio/internal/domain/taxsettings"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/types"
)

// InMemoryTaxSettingsStore implements taxsettings.Repository
type InMemoryTaxSettingsStore struct {
	*InMemoryStore[*taxsettings.TaxSettings]
}

// NewInMemoryTaxSettingsStore creates a new in-memory tax settings store
func NewInMemoryTaxSettingsStore() *InMemoryTaxSettingsStore {
	return &InMemoryTaxSettingsStore{
		InMemoryStore: NewInMemoryStore[*taxsettings.TaxSettings](),
	}
}

func copyTaxSettings(settings *taxsettings.TaxSettings) *taxsettings.TaxSettings {
	if settings == nil {
		return nil
	}
	out := *settings
	if settings.TaxIdentificationNumber != nil {
		tin := *settings.TaxIdentificationNumber
		out.TaxIdentificationNumber = &tin
	}
	return &out
}

func (s *InMemoryTaxSettingsStore) Create(ctx context.Context, settings *taxsettings.TaxSettings) error {
	if settings == nil {
		return ierr.NewError("tax settings cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, settings.ID, copyTaxSettings(settings))
}

func (s *InMemoryTaxSettingsStore) GetByTenant(ctx context.Context) (*taxsettings.TaxSettings, error) {
	all, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, settings *taxsettings.TaxSettings, _ interface{}) bool {
		return settings.TenantID == types.GetTenantID(ctx)
	}, nil)
	if err != nil || len(all) == 0 {
		return nil, ierr.NewError("tax settings not found").
			WithHint("No tax settings exist for this account yet").
			Mark(ierr.ErrNotFound)
	}
	return copyTaxSettings(all[0]), nil
}

func (s *InMemoryTaxSettingsStore) Update(ctx context.Context, settings *taxsettings.TaxSettings) error {
	if settings == nil {
		return ierr.NewError("tax settings cannot be nil").
			Mark(ierr.ErrValidation)
	}
	settings.UpdatedAt = time.Now().UTC()
	settings.UpdatedBy = types.GetUserID(ctx)
	if err := s.InMemoryStore.Update(ctx, settings.ID, copyTaxSettings(settings)); err != nil {
		return ierr.NewError("tax settings not found").
			WithHint("No tax settings exist for this account yet").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
