package testutil

import (
	"context"
	"time"

	"github.com/rentfolio/rentfolio/internal/domain/payment"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/types"
)

// InMemoryPaymentStore implements payment.Repository
type InMemoryPaymentStore struct {
	*InMemoryStore[*payment.PaymentTransaction]
}

// NewInMemoryPaymentStore creates a new in-memory payment store
func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		InMemoryStore: NewInMemoryStore[*payment.PaymentTransaction](),
	}
}

func (s *InMemoryPaymentStore) Create(ctx context.Context, p *payment.PaymentTransaction) error {
	if p == nil {
		return ierr.NewError("payment cannot be nil").
			Mark(ierr.ErrValidation)
	}
	cp := *p
	return s.InMemoryStore.Create(ctx, p.ID, &cp)
}

func (s *InMemoryPaymentStore) ListByPropertyBetween(ctx context.Context, propertyID *string, start, end time.Time) ([]*payment.PaymentTransaction, error) {
	all, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, p *payment.PaymentTransaction, _ interface{}) bool {
		if p.TenantID != types.GetTenantID(ctx) {
			return false
		}
		if propertyID != nil && p.PropertyID != *propertyID {
			return false
		}
		return !p.PaymentDate.Before(start) && p.PaymentDate.Before(end)
	}, func(i, j *payment.PaymentTransaction) bool {
		return i.PaymentDate.Before(j.PaymentDate)
	})
	if err != nil {
		return nil, err
	}
	out := make([]*payment.PaymentTransaction, len(all))
	for i, p := range all {
		cp := *p
		out[i] = &cp
	}
	return out, nil
}
