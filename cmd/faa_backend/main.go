package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	limiter "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/omcerp/fuel_accounting_app/internal/core/accounting"
	portsrepo "github.com/omcerp/fuel_accounting_app/internal/core/ports/repositories"
	"github.com/omcerp/fuel_accounting_app/internal/core/services"
	"github.com/omcerp/fuel_accounting_app/internal/handlers"
	"github.com/omcerp/fuel_accounting_app/internal/middleware"
	"github.com/omcerp/fuel_accounting_app/internal/repositories/database/pgsql"
	"github.com/omcerp/fuel_accounting_app/pkg/config"
	"github.com/omcerp/fuel_accounting_app/pkg/database"
)

// @title Fuel Accounting API
// @version 1.0
// @description Automated double-entry accounting engine for fuel distribution operations.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the service JWT.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)

	chart := accounting.DefaultChart()
	catalog := loadTemplateCatalog(logger, repos)
	rates := loadLevyRates(logger, cfg)

	serviceProvider := services.NewServiceProvider(repos, chart, catalog, rates, services.NewLogNotifier())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT spec", slog.String("error", err.Error()))
		os.Exit(1)
	}
	rateLimiter := limiter.New(memory.NewStore(), rate)

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceProvider, catalog, rateLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending up migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

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

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// loadTemplateCatalog prefers the persisted template configuration and falls
// back to the shipped catalog when the table is empty or unreadable.
func loadTemplateCatalog(logger *slog.Logger, repos portsrepo.RepositoryProvider) *accounting.TemplateCatalog {
	templates, err := repos.TemplateRepo.FindAllTemplates(context.Background())
	if err != nil {
		logger.Warn("Failed to load templates from database, using shipped catalog",
			slog.String("error", err.Error()))
		return accounting.DefaultTemplateCatalog()
	}
	if len(templates) == 0 {
		logger.Info("Template table empty, using shipped catalog")
		return accounting.DefaultTemplateCatalog()
	}
	return accounting.NewTemplateCatalog(templates)
}

// loadLevyRates applies any configured LEVY_* overrides on top of the
// shipped defaults.
func loadLevyRates(logger *slog.Logger, cfg *config.Config) accounting.LevyRates {
	rates := accounting.DefaultLevyRates()
	overrideRate(logger, "LEVY_VAT_RATE", cfg.LevyVATRate, &rates.VAT)
	overrideRate(logger, "LEVY_NHIL_RATE", cfg.LevyNHILRate, &rates.NHIL)
	overrideRate(logger, "LEVY_GETFUND_RATE", cfg.LevyGETFundRate, &rates.GETFund)
	overrideRate(logger, "LEVY_WHT_RATE", cfg.LevyWHTRate, &rates.WithholdingTax)
	return rates
}

func overrideRate(logger *slog.Logger, name, value string, target *decimal.Decimal) {
	if value == "" {
		return
	}
	rate, err := decimal.NewFromString(value)
	if err != nil {
		logger.Warn("Invalid levy rate override, keeping default",
			slog.String("setting", name), slog.String("value", value))
		return
	}
	*target = rate
}
