package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentfolio/rentfolio/internal/api/dto"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/logger"
	"github.com/rentfolio/rentfolio/internal/service"
)

type TaxSettingsHandler struct {
	service service.TaxSettingsService
	logger  *logger.Logger
}

func NewTaxSettingsHandler(service service.TaxSettingsService, logger *logger.Logger) *TaxSettingsHandler {
	return &TaxSettingsHandler{
		service: service,
		logger:  logger,
	}
}

// GetSettings returns the taxpayer's settings, creating defaults on first
// access.
func (h *TaxSettingsHandler) GetSettings(c *gin.Context) {
	resp, err := h.service.GetSettings(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to get tax settings", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateSettings overwrites the taxpayer's settings.
func (h *TaxSettingsHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateTaxSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateSettings(c.Request.Context(), &req)
	if err != nil {
		h.logger.Errorw("failed to update tax settings", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
