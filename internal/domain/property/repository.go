package property

import "context"

// Repository defines the interface for property persistence. Get is
// tenant-scoped; requesting another tenant's property returns ErrNotFound.
type Repository interface {
	Create(ctx context.Context, p *Property) error
	Get(ctx context.Context, id string) (*Property, error)
	List(ctx context.Context) ([]*Property, error)
}
