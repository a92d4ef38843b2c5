package property

import (
	"github.com/rentfolio/rentfolio/internal/types"
	"github.com/shopspring/decimal"
)

// Property is a landlord's rental asset. Financial fields are optional;
// tax components that need a missing field fail validation at calculation
// time rather than here.
type Property struct {
	ID            string               `db:"id" json:"id"`
	Name          string               `db:"name" json:"name"`
	Address       string               `db:"address" json:"address"`
	State         string               `db:"state" json:"state"`
	UsageType     *types.LandUsageType `db:"usage_type" json:"usage_type,omitempty"`
	PurchasePrice *decimal.Decimal     `db:"purchase_price" json:"purchase_price,omitempty"`
	SalePrice     *decimal.Decimal     `db:"sale_price" json:"sale_price,omitempty"`
	CurrentValue  *decimal.Decimal     `db:"current_value" json:"current_value,omitempty"`

	types.BaseModel
}
