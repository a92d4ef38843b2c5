package testutil

import (
	"context"
	"time"

	"github.com/rentfolio/rentfolio/internal/domain/expense"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/types"
)

// InMemoryExpenseStore implements expense.Repository
type InMemoryExpenseStore struct {
	*InMemoryStore[*expense.Expense]
}

// NewInMemoryExpenseStore creates a new in-memory expense store
func NewInMemoryExpenseStore() *InMemoryExpenseStore {
	return &InMemoryExpenseStore{
		InMemoryStore: NewInMemoryStore[*expense.Expense](),
	}
}

func (s *InMemoryExpenseStore) Create(ctx context.Context, e *expense.Expense) error {
	if e == nil {
		return ierr.NewError("expense cannot be nil").
			Mark(ierr.ErrValidation)
	}
	cp := *e
	return s.InMemoryStore.Create(ctx, e.ID, &cp)
}

func (s *InMemoryExpenseStore) ListByPropertyBetween(ctx context.Context, propertyID *string, start, end time.Time) ([]*expense.Expense, error) {
	all, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, e *expense.Expense, _ interface{}) bool {
		if e.TenantID != types.GetTenantID(ctx) {
			return false
		}
		if propertyID != nil && e.PropertyID != *propertyID {
			return false
		}
		return !e.ExpenseDate.Before(start) && e.ExpenseDate.Before(end)
	}, func(i, j *expense.Expense) bool {
		return i.ExpenseDate.Before(j.ExpenseDate)
	})
	if err != nil {
		return nil, err
	}
	out := make([]*expense.Expense, len(all))
	for i, e := range all {
		cp := *e
		out[i] = &cp
	}
	return out, nil
}
