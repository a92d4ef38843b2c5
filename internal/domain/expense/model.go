package expense

import (
	"time"

	"github.com/rentfolio/rentfolio/internal/types"
	"github.com/shopspring/decimal"
)

// Expense is a cost incurred against a property. Category is free-form
// except that "property tax" is recognized and reported as its own tax
// component instead of a deduction.
type Expense struct {
	ID            string              `db:"id" json:"id"`
	PropertyID    string              `db:"property_id" json:"property_id"`
	Category      string              `db:"category" json:"category"`
	Description   string              `db:"description" json:"description"`
	Amount        decimal.Decimal     `db:"amount" json:"amount"`
	ExpenseStatus types.ExpenseStatus `db:"expense_status" json:"expense_status"`
	ExpenseDate   time.Time           `db:"expense_date" json:"expense_date"`

	types.BaseModel
}
