package taxcalculation

import (
	"context"
	"time"

	"github.com/rentfolio/rentfolio/internal/types"
)

// Repository defines the interface for tax calculation persistence.
//
// FinalizeDraft and DeleteDraft are conditional on the record still being a
// draft; implementations must perform the check atomically so two concurrent
// finalize calls cannot both succeed.
type Repository interface {
	Create(ctx context.Context, calc *TaxCalculation) error
	Get(ctx context.Context, id string) (*TaxCalculation, error)
	// GetDraftForPropertyYear returns the existing draft for the tenant's
	// (property, tax year) pair, or ErrNotFound when there is none.
	GetDraftForPropertyYear(ctx context.Context, propertyID *string, taxYear int) (*TaxCalculation, error)
	// Update overwrites a draft in place. Finalized records are immutable;
	// updating one fails with ErrPreconditionFailed.
	Update(ctx context.Context, calc *TaxCalculation) error
	// FinalizeDraft atomically transitions a draft to finalized. A record
	// that is already finalized fails with ErrPreconditionFailed.
	FinalizeDraft(ctx context.Context, id string, finalizedAt time.Time) error
	// DeleteDraft removes a draft. A finalized record fails with
	// ErrPreconditionFailed.
	DeleteDraft(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.TaxCalculationFilter) ([]*TaxCalculation, error)
	Count(ctx context.Context, filter *types.TaxCalculationFilter) (int, error)
}
