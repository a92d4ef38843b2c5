package postgres

import (
	"context"
	"time"

	"github.com/rentfolio/rentfolio/internal/domain/expense"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/logger"
	"github.com/rentfolio/rentfolio/internal/postgres"
	"github.com/rentfolio/rentfolio/internal/types"
)

type expenseRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewExpenseRepository(db *postgres.DB, logger *logger.Logger) expense.Repository {
	return &expenseRepository{db: db, logger: logger}
}

func (r *expenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	query := `
		INSERT INTO expenses (
			id,
			property_id,
			category,
			description,
			amount,
			expense_status,
			expense_date,
			tenant_id,
			status,
			created_at,
			updated_at,
			created_by,
			updated_by
		) VALUES (
			:id,
			:property_id,
			:category,
			:description,
			:amount,
			:expense_status,
			:expense_date,
			:tenant_id,
			:status,
			:created_at,
			:updated_at,
			:created_by,
			:updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, e); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create expense").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *expenseRepository) ListByPropertyBetween(ctx context.Context, propertyID *string, start, end time.Time) ([]*expense.Expense, error) {
	query := `
		SELECT * FROM expenses
		WHERE
			tenant_id = :tenant_id AND
			status = :status AND
			expense_date >= :start AND
			expense_date < :end
	`
	params := map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusPublished,
		"start":     start,
		"end":       end,
	}
	if propertyID != nil {
		query += " AND property_id = :property_id"
		params["property_id"] = *propertyID
	}
	query += " ORDER BY expense_date ASC"

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list expenses").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	expenses := make([]*expense.Expense, 0)
	for rows.Next() {
		var e expense.Expense
		if err := rows.StructScan(&e); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan expense").
				Mark(ierr.ErrDatabase)
		}
		expenses = append(expenses, &e)
	}
	return expenses, nil
}
