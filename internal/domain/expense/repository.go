package expense

import (
	"context"
	"time"
)

// Repository defines the interface for expense persistence.
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	// ListByPropertyBetween returns the tenant's expenses for the property
	// with an expense date in [start, end). A nil propertyID matches all of
	// the tenant's properties.
	ListByPropertyBetween(ctx context.Context, propertyID *string, start, end time.Time) ([]*Expense, error)
}
