package handlers

import (
	"github.com/fincore/bookkeeper_svc/cmd/docs"
	portssvc "github.com/fincore/bookkeeper_svc/internal/core/ports/services"
	"github.com/fincore/bookkeeper_svc/internal/events/memory"
	"github.com/fincore/bookkeeper_svc/internal/middleware"
	"github.com/fincore/bookkeeper_svc/internal/platform/config"
	"github.com/fincore/bookkeeper_svc/internal/worker"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	dispatcher *worker.Dispatcher,
	bus *memory.Bus,
) {
	registerCustomValidators()
	registerHomeRoutes(r)
	setupAPIV1Routes(r, cfg, services, dispatcher, bus)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the entity
// route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	dispatcher *worker.Dispatcher,
	bus *memory.Bus,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	runner := &commandRunner{dispatcher: dispatcher, bus: bus}

	registerLedgerRoutes(v1, services.Ledger, runner)
	registerAccountRoutes(v1, services.Account, runner)
	registerJournalRoutes(v1, services.Journal, runner)
	registerTransactionTypeRoutes(v1, services.TxType, runner)
	registerReportingRoutes(v1, services.Reporting, services.Ledger)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// No swagger in prod.
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
