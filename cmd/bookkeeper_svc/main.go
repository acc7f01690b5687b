package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/fincore/bookkeeper_svc/internal/core/ports"
	"github.com/fincore/bookkeeper_svc/internal/core/services"
	"github.com/fincore/bookkeeper_svc/internal/events"
	kafkaevents "github.com/fincore/bookkeeper_svc/internal/events/kafka"
	"github.com/fincore/bookkeeper_svc/internal/events/memory"
	"github.com/fincore/bookkeeper_svc/internal/handlers"
	"github.com/fincore/bookkeeper_svc/internal/middleware"
	"github.com/fincore/bookkeeper_svc/internal/platform/config"
	"github.com/fincore/bookkeeper_svc/internal/repositories/database/pgsql"
	"github.com/fincore/bookkeeper_svc/internal/worker"
	"github.com/fincore/bookkeeper_svc/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Bookkeeper Service API
// @version 1.0
// @description Double-entry bookkeeping ledger service.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(repos)

	// The in-process bus always runs so wait=true callers and tests can
	// observe completion events; Kafka joins the fan-out when enabled.
	bus := memory.NewBus()
	defer bus.Close()

	var publisher ports.EventPublisher = bus
	if cfg.KafkaEnabled {
		kafkaPublisher := kafkaevents.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() {
			if cerr := kafkaPublisher.Close(); cerr != nil {
				logger.Error("Error closing kafka publisher", slog.String("error", cerr.Error()))
			}
		}()
		publisher = events.NewFanOut(bus, kafkaPublisher)
		logger.Info("Kafka event publication enabled", slog.String("topic", cfg.KafkaTopic))
	}

	dispatcher := worker.NewDispatcher(cfg.WorkerCount, cfg.QueueCapacity, publisher, logger)
	defer dispatcher.Stop()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if rateMiddleware, err := rateLimitMiddleware(cfg.RateLimit); err != nil {
		logger.Warn("Invalid rate limit spec, rate limiting disabled", slog.String("spec", cfg.RateLimit))
	} else {
		r.Use(rateMiddleware)
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, dispatcher, bus)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending migrations over a temporary database/sql
// connection using the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Database migrations applied")
	}
	return nil
}

// rateLimitMiddleware builds a gin middleware from a limiter rate spec like "300-M".
func rateLimitMiddleware(spec string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(spec)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(memorystore.NewStore(), rate)
	return middleware.RateLimit(instance), nil
}
