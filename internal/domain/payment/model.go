package payment

import (
	"time"

	"github.com/rentfolio/rentfolio/internal/types"
	"github.com/shopspring/decimal"
)

// PaymentTransaction is a rent payment received against a property.
type PaymentTransaction struct {
	ID            string              `db:"id" json:"id"`
	PropertyID    string              `db:"property_id" json:"property_id"`
	Amount        decimal.Decimal     `db:"amount" json:"amount"`
	PaymentStatus types.PaymentStatus `db:"payment_status" json:"payment_status"`
	PaymentDate   time.Time           `db:"payment_date" json:"payment_date"`

	types.BaseModel
}
