package taxcalc

import (
	"database/sql/driver"
	"encoding/json"

	ierr "github.com/rentfolio/rentfolio/internal/errors"
)

// Value serializes the breakdown for storage in a jsonb column.
func (b TaxBreakdown) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan deserializes the breakdown from a jsonb column.
func (b *TaxBreakdown) Scan(value interface{}) error {
	if value == nil {
		*b = TaxBreakdown{}
		return nil
	}
	data, ok := value.([]byte)
	if !ok {
		return ierr.NewError("unsupported breakdown column type").
			WithHint("Tax breakdown must be stored as jsonb").
			Mark(ierr.ErrDatabase)
	}
	return json.Unmarshal(data, b)
}
