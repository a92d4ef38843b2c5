package postgres

import (
	"context"

	"github.com/rentfolio/rentfolio/internal/domain/property"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/logger"
	"github.com/rentfolio/rentfolio/internal/postgres"
	"github.com/rentfolio/rentfolio/internal/types"
)

type propertyRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPropertyRepository(db *postgres.DB, logger *logger.Logger) property.Repository {
	return &propertyRepository{db: db, logger: logger}
}

func (r *propertyRepository) Create(ctx context.Context, p *property.Property) error {
	query := `
		INSERT INTO properties (
			id,
			name,
			address,
			state,
			usage_type,
			purchase_price,
			sale_price,
			current_value,
			tenant_id,
			status,
			created_at,
			updated_at,
			created_by,
			updated_by
		) VALUES (
			:id,
			:name,
			:address,
			:state,
			:usage_type,
			:purchase_price,
			:sale_price,
			:current_value,
			:tenant_id,
			:status,
			:created_at,
			:updated_at,
			:created_by,
			:updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create property").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *propertyRepository) Get(ctx context.Context, id string) (*property.Property, error) {
	query := `
		SELECT * FROM properties
		WHERE
			id = :id AND
			tenant_id = :tenant_id AND
			status = :status
	`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"id":        id,
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusPublished,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get property").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("property not found").
			WithHintf("Property with ID %s was not found", id).
			WithReportableDetails(map[string]any{"property_id": id}).
			Mark(ierr.ErrNotFound)
	}

	var p property.Property
	if err := rows.StructScan(&p); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan property").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *propertyRepository) List(ctx context.Context) ([]*property.Property, error) {
	query := `
		SELECT * FROM properties
		WHERE
			tenant_id = :tenant_id AND
			status = :status
		ORDER BY created_at DESC
	`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusPublished,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list properties").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	properties := make([]*property.Property, 0)
	for rows.Next() {
		var p property.Property
		if err := rows.StructScan(&p); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan property").
				Mark(ierr.ErrDatabase)
		}
		properties = append(properties, &p)
	}
	return properties, nil
}
