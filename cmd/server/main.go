package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentfolio/rentfolio/internal/api"
	v1 "github.com/rentfolio/rentfolio/internal/api/v1"
	"github.com/rentfolio/rentfolio/internal/config"
	"github.com/rentfolio/rentfolio/internal/logger"
	"github.com/rentfolio/rentfolio/internal/postgres"
	"github.com/rentfolio/rentfolio/internal/repository"
	"github.com/rentfolio/rentfolio/internal/service"
	"github.com/rentfolio/rentfolio/internal/taxrules"
	"github.com/rentfolio/rentfolio/internal/validator"
	"go.uber.org/fx"
)

func init() {
	// the engine reasons about tax years in UTC everywhere
	time.Local = time.UTC
}

func main() {
	validator.NewValidator()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			postgres.NewDB,
			taxrules.NewRuleSet,

			repository.NewTaxCalculationRepository,
			repository.NewTaxSettingsRepository,
			repository.NewPropertyRepository,
			repository.NewPaymentRepository,
			repository.NewExpenseRepository,

			service.NewServiceParams,
			service.NewTaxCalculationService,
			service.NewTaxSettingsService,
			service.NewFinancialDataService,

			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	taxCalculationService service.TaxCalculationService,
	taxSettingsService service.TaxSettingsService,
) api.Handlers {
	return api.Handlers{
		Health:         v1.NewHealthHandler(),
		TaxCalculation: v1.NewTaxCalculationHandler(taxCalculationService, logger),
		TaxSettings:    v1.NewTaxSettingsHandler(taxSettingsService, logger),
	}
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	db *postgres.DB,
	log *logger.Logger,
) {
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting server", "address", cfg.Server.Address)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalw("server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			if err := server.Shutdown(ctx); err != nil {
				return err
			}
			db.Close()
			return nil
		},
	})
}
