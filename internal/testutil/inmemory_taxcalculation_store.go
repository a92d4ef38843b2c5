package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/rentfolio/rentfolio/internal/domain/taxcalc"
	"github.com/rentfolio/rentfolio/internal/domain/taxcalculation"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/types"
)

// InMemoryTaxCalculationStore implements taxcalculation.Repository
type InMemoryTaxCalculationStore struct {
	*InMemoryStore[*taxcalculation.TaxCalculation]

	// transitionMu serializes the conditional draft transitions so that
	// concurrent finalize/delete calls see the same all-or-nothing behavior
	// as the database implementation
	transitionMu sync.Mutex
}

// NewInMemoryTaxCalculationStore creates a new in-memory tax calculation store
func NewInMemoryTaxCalculationStore() *InMemoryTaxCalculationStore {
	return &InMemoryTaxCalculationStore{
		InMemoryStore: NewInMemoryStore[*taxcalculation.TaxCalculation](),
	}
}

func copyTaxCalculation(calc *taxcalculation.TaxCalculation) *taxcalculation.TaxCalculation {
	if calc == nil {
		return nil
	}
	out := *calc
	if calc.FinalizedAt != nil {
		finalizedAt := *calc.FinalizedAt
		out.FinalizedAt = &finalizedAt
	}
	if calc.PropertyID != nil {
		propertyID := *calc.PropertyID
		out.PropertyID = &propertyID
	}
	out.Breakdown = taxcalc.TaxBreakdown{
		Brackets:   append([]taxcalc.BracketResult(nil), calc.Breakdown.Brackets...),
		Components: append([]taxcalc.Component(nil), calc.Breakdown.Components...),
	}
	return &out
}

func (s *InMemoryTaxCalculationStore) Create(ctx context.Context, calc *taxcalculation.TaxCalculation) error {
	if calc == nil {
		return ierr.NewError("tax calculation cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, calc.ID, copyTaxCalculation(calc))
}

func (s *InMemoryTaxCalculationStore) Get(ctx context.Context, id string) (*taxcalculation.TaxCalculation, error) {
	calc, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || calc.TenantID != types.GetTenantID(ctx) {
		return nil, ierr.NewError("tax calculation not found").
			WithHintf("Tax calculation with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyTaxCalculation(calc), nil
}

func (s *InMemoryTaxCalculationStore) GetDraftForPropertyYear(ctx context.Context, propertyID *string, taxYear int) (*taxcalculation.TaxCalculation, error) {
	calcs, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, calc *taxcalculation.TaxCalculation, _ interface{}) bool {
		if calc.TenantID != types.GetTenantID(ctx) || calc.TaxYear != taxYear {
			return false
		}
		if calc.CalculationStatus != types.TaxCalculationStatusDraft {
			return false
		}
		if propertyID == nil {
			return calc.PropertyID == nil
		}
		return calc.PropertyID != nil && *calc.PropertyID == *propertyID
	}, nil)
	if err != nil || len(calcs) == 0 {
		return nil, ierr.NewError("draft tax calculation not found").
			WithHintf("No draft calculation exists for tax year %d", taxYear).
			Mark(ierr.ErrNotFound)
	}
	return copyTaxCalculation(calcs[0]), nil
}

func (s *InMemoryTaxCalculationStore) Update(ctx context.Context, calc *taxcalculation.TaxCalculation) error {
	if calc == nil {
		return ierr.NewError("tax calculation cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.transitionMu.Lock()
	defer s.transitionMu.Unlock()

	existing, err := s.Get(ctx, calc.ID)
	if err != nil {
		return err
	}
	if existing.IsFinalized() {
		return finalizedError(calc.ID)
	}

	calc.UpdatedAt = time.Now().UTC()
	calc.UpdatedBy = types.GetUserID(ctx)
	return s.InMemoryStore.Update(ctx, calc.ID, copyTaxCalculation(calc))
}

func (s *InMemoryTaxCalculationStore) FinalizeDraft(ctx context.Context, id string, finalizedAt time.Time) error {
	s.transitionMu.Lock()
	defer s.transitionMu.Unlock()

	calc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if calc.IsFinalized() {
		return finalizedError(id)
	}

	calc.CalculationStatus = types.TaxCalculationStatusFinalized
	calc.FinalizedAt = &finalizedAt
	calc.UpdatedAt = time.Now().UTC()
	calc.UpdatedBy = types.GetUserID(ctx)
	return s.InMemoryStore.Update(ctx, id, calc)
}

func (s *InMemoryTaxCalculationStore) DeleteDraft(ctx context.Context, id string) error {
	s.transitionMu.Lock()
	defer s.transitionMu.Unlock()

	calc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if calc.IsFinalized() {
		return finalizedError(id)
	}
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryTaxCalculationStore) List(ctx context.Context, filter *types.TaxCalculationFilter) ([]*taxcalculation.TaxCalculation, error) {
	calcs, err := s.InMemoryStore.List(ctx, filter, taxCalculationFilterFn, taxCalculationSortFn)
	if err != nil {
		return nil, err
	}
	out := make([]*taxcalculation.TaxCalculation, len(calcs))
	for i, calc := range calcs {
		out[i] = copyTaxCalculation(calc)
	}
	return out, nil
}

func (s *InMemoryTaxCalculationStore) Count(ctx context.Context, filter *types.TaxCalculationFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, taxCalculationFilterFn)
}

func finalizedError(id string) error {
	return ierr.NewError("tax calculation is finalized").
		WithHint("Finalized calculations are immutable").
		WithReportableDetails(map[string]any{"calculation_id": id}).
		Mark(ierr.ErrPreconditionFailed)
}

func taxCalculationFilterFn(ctx context.Context, calc *taxcalculation.TaxCalculation, filter interface{}) bool {
	f, ok := filter.(*types.TaxCalculationFilter)
	if !ok {
		return true
	}
	if calc.TenantID != types.GetTenantID(ctx) {
		return false
	}
	if len(f.CalculationIDs) > 0 {
		found := false
		for _, id := range f.CalculationIDs {
			if calc.ID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.PropertyID != nil {
		if calc.PropertyID == nil || *calc.PropertyID != *f.PropertyID {
			return false
		}
	}
	if f.TaxYear != nil && calc.TaxYear != *f.TaxYear {
		return false
	}
	if f.CalculationStatus != nil && calc.CalculationStatus != *f.CalculationStatus {
		return false
	}
	if f.TimeRangeFilter != nil {
		if f.StartTime != nil && calc.CalculationDate.Before(*f.StartTime) {
			return false
		}
		if f.EndTime != nil && calc.CalculationDate.After(*f.EndTime) {
			return false
		}
	}
	return true
}

func taxCalculationSortFn(i, j *taxcalculation.TaxCalculation) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
