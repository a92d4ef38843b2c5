package postgres

import (
	"context"
	"time"

	"github.com/rentfolio/rentfolio/internal/domain/taxsettings"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/logger"
	"github.com/rentfolio/rentfolio/internal/postgres"
	"github.com/rentfolio/rentfolio/internal/types"
)

type taxSettingsRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewTaxSettingsRepository(db *postgres.DB, logger *logger.Logger) taxsettings.Repository {
	return &taxSettingsRepository{db: db, logger: logger}
}

func (r *taxSettingsRepository) Create(ctx context.Context, settings *taxsettings.TaxSettings) error {
	query := `
		INSERT INTO tax_settings (
			id,
			taxpayer_type,
			tax_identification_number,
			default_tax_year,
			currency,
			tenant_id,
			status,
			created_at,
			updated_at,
			created_by,
			updated_by
		) VALUES (
			:id,
			:taxpayer_type,
			:tax_identification_number,
			:default_tax_year,
			:currency,
			:tenant_id,
			:status,
			:created_at,
			:updated_at,
			:created_by,
			:updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, settings); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create tax settings").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *taxSettingsRepository) GetByTenant(ctx context.Context) (*taxsettings.TaxSettings, error) {
	query := `
		SELECT * FROM tax_settings
		WHERE
			tenant_id = :tenant_id AND
			status = :status
	`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusPublished,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get tax settings").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("tax settings not found").
			WithHint("No tax settings exist for this account yet").
			Mark(ierr.ErrNotFound)
	}

	var settings taxsettings.TaxSettings
	if err := rows.StructScan(&settings); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan tax settings").
			Mark(ierr.ErrDatabase)
	}
	return &settings, nil
}

func (r *taxSettingsRepository) Update(ctx context.Context, settings *taxsettings.TaxSettings) error {
	query := `
		UPDATE tax_settings
		SET
			taxpayer_type = :taxpayer_type,
			tax_identification_number = :tax_identification_number,
			default_tax_year = :default_tax_year,
			currency = :currency,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE
			id = :id AND
			tenant_id = :tenant_id
	`

	settings.UpdatedAt = time.Now().UTC()
	settings.UpdatedBy = types.GetUserID(ctx)

	result, err := r.db.NamedExecContext(ctx, query, settings)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update tax settings").
			Mark(ierr.ErrDatabase)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to read affected rows").
			Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		return ierr.NewError("tax settings not found").
			WithHint("No tax settings exist for this account yet").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
