package validator

import (
	"sync"

	"github.com/go-playground/validator/v10"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// NewValidator returns the process-wide validator, creating it on first use.
func NewValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

func ValidateRequest(req interface{}) error {
	if err := NewValidator().Struct(req); err != nil {
		details := make(map[string]any)
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, err := range validateErrs {
				details[err.Field()] = err.Error()
			}
		}
		return ierr.WithError(err).
			WithHint("Request validation failed").
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}
