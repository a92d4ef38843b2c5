package testutil

import (
	"context"

	"github.com/rentfolio/rentfolio/internal/domain/property"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/types"
	"github.com/shopspring/decimal"
)

// InMemoryPropertyStore implements property.Repository
type InMemoryPropertyStore struct {
	*InMemoryStore[*property.Property]
}

// NewInMemoryPropertyStore creates a new in-memory property store
func NewInMemoryPropertyStore() *InMemoryPropertyStore {
	return &InMemoryPropertyStore{
		InMemoryStore: NewInMemoryStore[*property.Property](),
	}
}

func copyProperty(p *property.Property) *property.Property {
	if p == nil {
		return nil
	}
	out := *p
	out.PurchasePrice = copyDecimalPtr(p.PurchasePrice)
	out.SalePrice = copyDecimalPtr(p.SalePrice)
	out.CurrentValue = copyDecimalPtr(p.CurrentValue)
	if p.UsageType != nil {
		usage := *p.UsageType
		out.UsageType = &usage
	}
	return &out
}

func copyDecimalPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func (s *InMemoryPropertyStore) Create(ctx context.Context, p *property.Property) error {
	if p == nil {
		return ierr.NewError("property cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, p.ID, copyProperty(p))
}

func (s *InMemoryPropertyStore) Get(ctx context.Context, id string) (*property.Property, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || p.TenantID != types.GetTenantID(ctx) {
		return nil, ierr.NewError("property not found").
			WithHintf("Property with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyProperty(p), nil
}

func (s *InMemoryPropertyStore) List(ctx context.Context) ([]*property.Property, error) {
	all, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, p *property.Property, _ interface{}) bool {
		return p.TenantID == types.GetTenantID(ctx)
	}, nil)
	if err != nil {
		return nil, err
	}
	out := make([]*property.Property, len(all))
	for i, p := range all {
		out[i] = copyProperty(p)
	}
	return out, nil
}
