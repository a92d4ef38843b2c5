package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentfolio/rentfolio/internal/api/dto"
	ierr "github.com/rentfolio/rentfolio/internal/errors"
	"github.com/rentfolio/rentfolio/internal/logger"
	"github.com/rentfolio/rentfolio/internal/service"
	"github.com/rentfolio/rentfolio/internal/types"
)

type TaxCalculationHandler struct {
	service service.TaxCalculationService
	logger  *logger.Logger
}

func NewTaxCalculationHandler(service service.TaxCalculationService, logger *logger.Logger) *TaxCalculationHandler {
	return &TaxCalculationHandler{
		service: service,
		logger:  logger,
	}
}

// CalculateTax computes the taxes for a property and tax year and persists
// the result as a draft, overwriting any existing draft for the pair.
func (h *TaxCalculationHandler) CalculateTax(c *gin.Context) {
	var req dto.CreateTaxCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Calculate(c.Request.Context(), &req)
	if err != nil {
		h.logger.Errorw("failed to calculate tax", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// AutoFetchTaxData resolves the financial facts for a property and tax year
// without computing or persisting anything.
func (h *TaxCalculationHandler) AutoFetchTaxData(c *gin.Context) {
	var req dto.FinancialDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.AutoFetchTaxData(c.Request.Context(), &req)
	if err != nil {
		h.logger.Errorw("failed to fetch tax data", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetCalculation returns one calculation by ID.
func (h *TaxCalculationHandler) GetCalculation(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid calculation id").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetCalculation(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListCalculations returns the paginated calculation history.
func (h *TaxCalculationHandler) ListCalculations(c *gin.Context) {
	var filter types.TaxCalculationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.logger.Errorw("failed to bind query parameters", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid query parameters").Mark(ierr.ErrValidation))
		return
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.ListCalculations(c.Request.Context(), &filter)
	if err != nil {
		h.logger.Errorw("failed to list calculations", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// FinalizeCalculation transitions a draft to its immutable finalized state.
func (h *TaxCalculationHandler) FinalizeCalculation(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid calculation id").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.FinalizeCalculation(c.Request.Context(), id)
	if err != nil {
		h.logger.Errorw("failed to finalize calculation", "error", err, "calculation_id", id)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteCalculation removes a draft calculation.
func (h *TaxCalculationHandler) DeleteCalculation(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid calculation id").Mark(ierr.ErrValidation))
		return
	}

	if err := h.service.DeleteCalculation(c.Request.Context(), id); err != nil {
		h.logger.Errorw("failed to delete calculation", "error", err, "calculation_id", id)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
