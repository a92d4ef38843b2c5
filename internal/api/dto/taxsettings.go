package dto

import (
	"github.com/rentfolio/rentfolio/internal/domain/taxsettings"
	"github.com/rentfolio/rentfolio/internal/validator"
)

// UpdateTaxSettingsRequest overwrites the taxpayer's settings. Settings are
// never deleted, only replaced.
type UpdateTaxSettingsRequest struct {
	TaxpayerType            string  `json:"taxpayer_type" validate:"required,oneof=individual company"`
	TaxIdentificationNumber *string `json:"tax_identification_number,omitempty"`
	DefaultTaxYear          int     `json:"default_tax_year" validate:"required,min=1"`
	Currency                string  `json:"currency" validate:"required,len=3"`
}

func (r *UpdateTaxSettingsRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// TaxSettingsResponse wraps the taxpayer's settings for API consumers.
type TaxSettingsResponse struct {
	*taxsettings.TaxSettings
}
