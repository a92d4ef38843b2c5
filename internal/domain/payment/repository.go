package payment

import (
	"context"
	"time"
)

// Repository defines the interface for payment persistence.
type Repository interface {
	Create(ctx context.Context, p *PaymentTransaction) error
	// ListByPropertyBetween returns the tenant's payments for the property
	// with a payment date in [start, end). A nil propertyID matches all of
	// the tenant's properties.
	ListByPropertyBetween(ctx context.Context, propertyID *string, start, end time.Time) ([]*PaymentTransaction, error)
}
