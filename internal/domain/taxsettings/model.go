package taxsettings

import (
	"context"
	"time"

	"github.com/rentfolio/rentfolio/internal/types"
)

// TaxSettings is the per-taxpayer tax profile. It is created with defaults
// on first access and only ever overwritten, never deleted.
type TaxSettings struct {
	ID                      string             `db:"id" json:"id"`
	TaxpayerType            types.TaxpayerType `db:"taxpayer_type" json:"taxpayer_type"`
	TaxIdentificationNumber *string            `db:"tax_identification_number" json:"tax_identification_number,omitempty"`
	DefaultTaxYear          int                `db:"default_tax_year" json:"default_tax_year"`
	Currency                string             `db:"currency" json:"currency"`

	types.BaseModel
}

// NewDefault returns the settings a taxpayer starts with.
func NewDefault(ctx context.Context) *TaxSettings {
	return &TaxSettings{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TAX_SETTINGS),
		TaxpayerType:   types.TaxpayerTypeIndividual,
		DefaultTaxYear: time.Now().UTC().Year(),
		Currency:       "NGN",
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}
