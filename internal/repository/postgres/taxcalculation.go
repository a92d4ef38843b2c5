package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/rentfolio/rentfolio/internal/domain/taxcalculation"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/logger"
	"github.com/rentfolio/rentfolio/internal/postgres"
	"github.com/rentfolio/rentfolio/internal/types"
)

type taxCalculationRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewTaxCalculationRepository(db *postgres.DB, logger *logger.Logger) taxcalculation.Repository {
	return &taxCalculationRepository{db: db, logger: logger}
}

// sortColumns whitelists the columns list queries may order by
var sortColumns = map[string]string{
	"created_at":       "created_at",
	"calculation_date": "calculation_date",
	"tax_year":         "tax_year",
}

func (r *taxCalculationRepository) Create(ctx context.Context, calc *taxcalculation.TaxCalculation) error {
	query := `
		INSERT INTO tax_calculations (
			id,
			reference_number,
			property_id,
			tax_year,
			currency,
			total_rental_income,
			other_income,
			total_income,
			other_deductions,
			rent_relief,
			total_deductions,
			taxable_income,
			personal_income_tax,
			withholding_tax,
			capital_gains_tax,
			stamp_duty,
			land_use_charge,
			property_taxes,
			total_tax_liability,
			calculation_status,
			calculation_date,
			finalized_at,
			breakdown,
			tenant_id,
			status,
			created_at,
			updated_at,
			created_by,
			updated_by
		) VALUES (
			:id,
			:reference_number,
			:property_id,
			:tax_year,
			:currency,
			:total_rental_income,
			:other_income,
			:total_income,
			:other_deductions,
			:rent_relief,
			:total_deductions,
			:taxable_income,
			:personal_income_tax,
			:withholding_tax,
			:capital_gains_tax,
			:stamp_duty,
			:land_use_charge,
			:property_taxes,
			:total_tax_liability,
			:calculation_status,
			:calculation_date,
			:finalized_at,
			:breakdown,
			:tenant_id,
			:status,
			:created_at,
			:updated_at,
			:created_by,
			:updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, calc); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A draft calculation already exists for this property and tax year").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create tax calculation").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *taxCalculationRepository) Get(ctx context.Context, id string) (*taxcalculation.TaxCalculation, error) {
	query := `
		SELECT * FROM tax_calculations
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
			WithHint("Failed to get tax calculation").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("tax calculation not found").
			WithHintf("Tax calculation with ID %s was not found", id).
			WithReportableDetails(map[string]any{"calculation_id": id}).
			Mark(ierr.ErrNotFound)
	}

	var calc taxcalculation.TaxCalculation
	if err := rows.StructScan(&calc); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan tax calculation").
			Mark(ierr.ErrDatabase)
	}
	return &calc, nil
}

func (r *taxCalculationRepository) GetDraftForPropertyYear(ctx context.Context, propertyID *string, taxYear int) (*taxcalculation.TaxCalculation, error) {
	// IS NOT DISTINCT FROM makes a nil property id match the portfolio-wide draft
	query := `
		SELECT * FROM tax_calculations
		WHERE
			tenant_id = :tenant_id AND
			status = :status AND
			property_id IS NOT DISTINCT FROM :property_id AND
			tax_year = :tax_year AND
			calculation_status = :calculation_status
	`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"tenant_id":          types.GetTenantID(ctx),
		"status":             types.StatusPublished,
		"property_id":        propertyID,
		"tax_year":           taxYear,
		"calculation_status": types.TaxCalculationStatusDraft,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get draft tax calculation").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("draft tax calculation not found").
			WithHintf("No draft calculation exists for tax year %d", taxYear).
			Mark(ierr.ErrNotFound)
	}

	var calc taxcalculation.TaxCalculation
	if err := rows.StructScan(&calc); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan tax calculation").
			Mark(ierr.ErrDatabase)
	}
	return &calc, nil
}

func (r *taxCalculationRepository) Update(ctx context.Context, calc *taxcalculation.TaxCalculation) error {
	query := `
		UPDATE tax_calculations
		SET
			total_rental_income = :total_rental_income,
			other_income = :other_income,
			total_income = :total_income,
			other_deductions = :other_deductions,
			rent_relief = :rent_relief,
			total_deductions = :total_deductions,
			taxable_income = :taxable_income,
			personal_income_tax = :personal_income_tax,
			withholding_tax = :withholding_tax,
			capital_gains_tax = :capital_gains_tax,
			stamp_duty = :stamp_duty,
			land_use_charge = :land_use_charge,
			property_taxes = :property_taxes,
			total_tax_liability = :total_tax_liability,
			calculation_date = :calculation_date,
			breakdown = :breakdown,
			currency = :currency,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE
			id = :id AND
			tenant_id = :tenant_id AND
			calculation_status = 'DRAFT'
	`

	calc.UpdatedAt = time.Now().UTC()
	calc.UpdatedBy = types.GetUserID(ctx)

	result, err := r.db.NamedExecContext(ctx, query, calc)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update tax calculation").
			Mark(ierr.ErrDatabase)
	}
	return r.checkDraftTransition(ctx, calc.ID, result)
}

func (r *taxCalculationRepository) FinalizeDraft(ctx context.Context, id string, finalizedAt time.Time) error {
	query := `
		UPDATE tax_calculations
		SET
			calculation_status = :finalized,
			finalized_at = :finalized_at,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE
			id = :id AND
			tenant_id = :tenant_id AND
			calculation_status = :draft
	`

	// the conditional update and the zero-row diagnosis read must observe
	// the same snapshot, otherwise a concurrent finalize can misreport
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
			"finalized":    types.TaxCalculationStatusFinalized,
			"finalized_at": finalizedAt,
			"updated_at":   time.Now().UTC(),
			"updated_by":   types.GetUserID(ctx),
			"id":           id,
			"tenant_id":    types.GetTenantID(ctx),
			"draft":        types.TaxCalculationStatusDraft,
		})
		if err != nil {
			return ierr.WithError(err).
				WithHint("Failed to finalize tax calculation").
				Mark(ierr.ErrDatabase)
		}
		return r.checkDraftTransition(ctx, id, result)
	})
}

func (r *taxCalculationRepository) DeleteDraft(ctx context.Context, id string) error {
	query := `
		DELETE FROM tax_calculations
		WHERE
			id = :id AND
			tenant_id = :tenant_id AND
			calculation_status = :draft
	`

	return r.db.WithTx(ctx, func(ctx context.Context) error {
		result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
			"id":        id,
			"tenant_id": types.GetTenantID(ctx),
			"draft":     types.TaxCalculationStatusDraft,
		})
		if err != nil {
			return ierr.WithError(err).
				WithHint("Failed to delete tax calculation").
				Mark(ierr.ErrDatabase)
		}
		return r.checkDraftTransition(ctx, id, result)
	})
}

// checkDraftTransition interprets a zero-row conditional update: the record
// either does not exist or is already finalized.
func (r *taxCalculationRepository) checkDraftTransition(ctx context.Context, id string, result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to read affected rows").
			Mark(ierr.ErrDatabase)
	}
	if affected > 0 {
		return nil
	}

	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.IsFinalized() {
		return ierr.NewError("tax calculation is finalized").
			WithHint("Finalized calculations are immutable").
			WithReportableDetails(map[string]any{"calculation_id": id}).
			Mark(ierr.ErrPreconditionFailed)
	}
	return ierr.NewError("tax calculation not found").
		WithHintf("Tax calculation with ID %s was not found", id).
		Mark(ierr.ErrNotFound)
}

func (r *taxCalculationRepository) List(ctx context.Context, filter *types.TaxCalculationFilter) ([]*taxcalculation.TaxCalculation, error) {
	query := `SELECT * FROM tax_calculations WHERE tenant_id = :tenant_id AND status = :status`
	query += r.buildFilterClauses(filter)

	sortCol, ok := sortColumns[filter.GetSort()]
	if !ok {
		sortCol = "created_at"
	}
	order := "DESC"
	if filter.GetOrder() == "asc" {
		order = "ASC"
	}
	query += " ORDER BY " + sortCol + " " + order

	params := r.filterParams(ctx, filter)
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
		params["limit"] = filter.GetLimit()
		params["offset"] = filter.GetOffset()
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list tax calculations").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	calcs := make([]*taxcalculation.TaxCalculation, 0)
	for rows.Next() {
		var calc taxcalculation.TaxCalculation
		if err := rows.StructScan(&calc); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan tax calculation").
				Mark(ierr.ErrDatabase)
		}
		calcs = append(calcs, &calc)
	}
	return calcs, nil
}

func (r *taxCalculationRepository) Count(ctx context.Context, filter *types.TaxCalculationFilter) (int, error) {
	query := `SELECT COUNT(*) FROM tax_calculations WHERE tenant_id = :tenant_id AND status = :status`
	query += r.buildFilterClauses(filter)

	rows, err := r.db.NamedQueryContext(ctx, query, r.filterParams(ctx, filter))
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count tax calculations").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHint("Failed to scan count").
				Mark(ierr.ErrDatabase)
		}
	}
	return count, nil
}

func (r *taxCalculationRepository) buildFilterClauses(filter *types.TaxCalculationFilter) string {
	clauses := ""
	if len(filter.CalculationIDs) > 0 {
		clauses += " AND id = ANY(:calculation_ids)"
	}
	if filter.PropertyID != nil {
		clauses += " AND property_id = :property_id"
	}
	if filter.TaxYear != nil {
		clauses += " AND tax_year = :tax_year"
	}
	if filter.CalculationStatus != nil {
		clauses += " AND calculation_status = :calculation_status"
	}
	if filter.TimeRangeFilter != nil {
		if filter.StartTime != nil {
			clauses += " AND calculation_date >= :start_time"
		}
		if filter.EndTime != nil {
			clauses += " AND calculation_date <= :end_time"
		}
	}
	return clauses
}

func (r *taxCalculationRepository) filterParams(ctx context.Context, filter *types.TaxCalculationFilter) map[string]interface{} {
	params := map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"status":    filter.GetStatus(),
	}
	if len(filter.CalculationIDs) > 0 {
		params["calculation_ids"] = pq.Array(filter.CalculationIDs)
	}
	if filter.PropertyID != nil {
		params["property_id"] = *filter.PropertyID
	}
	if filter.TaxYear != nil {
		params["tax_year"] = *filter.TaxYear
	}
	if filter.CalculationStatus != nil {
		params["calculation_status"] = *filter.CalculationStatus
	}
	if filter.TimeRangeFilter != nil {
		if filter.StartTime != nil {
			params["start_time"] = *filter.StartTime
		}
		if filter.EndTime != nil {
			params["end_time"] = *filter.EndTime
		}
	}
	return params
}
