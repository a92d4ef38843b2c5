package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/rentfolio/rentfolio/internal/api/v1"
	"github.com/rentfolio/rentfolio/internal/rest/middleware"
)

type Handlers struct {
	Health         *v1.HealthHandler
	TaxCalculation *v1.TaxCalculationHandler
	TaxSettings    *v1.TaxSettingsHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestContext(),
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	taxes := router.Group("/taxes")
	{
		calculations := taxes.Group("/calculations")
		{
			calculations.POST("", handlers.TaxCalculation.CalculateTax)
			calculations.POST("/data", handlers.TaxCalculation.AutoFetchTaxData)
			calculations.GET("", handlers.TaxCalculation.ListCalculations)
			calculations.GET("/:id", handlers.TaxCalculation.GetCalculation)
			calculations.POST("/:id/finalize", handlers.TaxCalculation.FinalizeCalculation)
			calculations.DELETE("/:id", handlers.TaxCalculation.DeleteCalculation)
		}

		settings := taxes.Group("/settings")
		{
			settings.GET("", handlers.TaxSettings.GetSettings)
			settings.PUT("", handlers.TaxSettings.UpdateSettings)
		}
	}
}
