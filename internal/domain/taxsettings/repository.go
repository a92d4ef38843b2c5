package taxsettings

import "context"

// Repository defines the interface for tax settings persistence. Settings
// are keyed by tenant; GetByTenant returns ErrNotFound before first access.
type Repository interface {
	Create(ctx context.Context, settings *TaxSettings) error
	GetByTenant(ctx context.Context) (*TaxSettings, error)
	Update(ctx context.Context, settings *TaxSettings) error
}
