package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	limiter "github.com/ulule/limiter/v3"

	"github.com/omcerp/fuel_accounting_app/cmd/docs"
	"github.com/omcerp/fuel_accounting_app/internal/core/accounting"
	portssvc "github.com/omcerp/fuel_accounting_app/internal/core/ports/services"
	"github.com/omcerp/fuel_accounting_app/internal/ingest"
	"github.com/omcerp/fuel_accounting_app/internal/middleware"
	"github.com/omcerp/fuel_accounting_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceProvider,
	catalog *accounting.TemplateCatalog,
	rateLimiter *limiter.Limiter,
) {
	registerTransactionTypeValidation(catalog)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", getHealth)
	r.GET("/", getHome)

	setupAPIV1Routes(r, cfg, services, rateLimiter)
	setupSwaggerRoutes(r, cfg)
}

// registerTransactionTypeValidation backs the "txtype" binding tag with the
// template catalog, so unknown transaction types fail at bind time.
func registerTransactionTypeValidation(catalog *accounting.TemplateCatalog) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("txtype", func(fl validator.FieldLevel) bool {
			_, known := catalog.Lookup(fl.Field().String())
			return known
		})
	}
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceProvider,
	rateLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1",
		middleware.RateLimit(rateLimiter),
		middleware.ServiceAuthMiddleware(cfg.ServiceJWTSecret, cfg.ServiceJWTIssuer),
	)

	registerEventRoutes(v1, ingest.NewConsumer(services.Posting))
	registerEntryRoutes(v1, services.Posting)
	registerAccountRoutes(v1, services.Chart)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
