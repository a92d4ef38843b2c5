package postgres

import (
	"context"
	"time"

	"github.com/rentfolio/rentfolio/internal/domain/payment"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/logger"
	"github.com/rentfolio/rentfolio/internal/postgres"
	"github.com/rentfolio/rentfolio/internal/types"
)

type paymentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return &paymentRepository{db: db, logger: logger}
}

func (r *paymentRepository) Create(ctx context.Context, p *payment.PaymentTransaction) error {
	query := `
		INSERT INTO payment_transactions (
			id,
			property_id,
			amount,
			payment_status,
			payment_date,
			tenant_id,
			status,
			created_at,
			updated_at,
			created_by,
			updated_by
		) VALUES (
			:id,
			:property_id,
			:amount,
			:payment_status,
			:payment_date,
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
			WithHint("Failed to create payment").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *paymentRepository) ListByPropertyBetween(ctx context.Context, propertyID *string, start, end time.Time) ([]*payment.PaymentTransaction, error) {
	query := `
		SELECT * FROM payment_transactions
		WHERE
			tenant_id = :tenant_id AND
			status = :status AND
			payment_date >= :start AND
			payment_date < :end
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
	query += " ORDER BY payment_date ASC"

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list payments").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	payments := make([]*payment.PaymentTransaction, 0)
	for rows.Next() {
		var p payment.PaymentTransaction
		if err := rows.StructScan(&p); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan payment").
				Mark(ierr.ErrDatabase)
		}
		payments = append(payments, &p)
	}
	return payments, nil
}
