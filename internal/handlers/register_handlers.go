package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/spendwise/spendwise_app/cmd/docs"
	"github.com/spendwise/spendwise_app/internal/core/domain"
	portssvc "github.com/spendwise/spendwise_app/internal/core/ports/services"
	"github.com/spendwise/spendwise_app/internal/middleware"
	"github.com/spendwise/spendwise_app/internal/platform/config"
	"github.com/spendwise/spendwise_app/internal/utils"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public routes: auth, billing webhook and the unauthenticated rate feed
	registerAuthRoutes(r, cfg, services)
	RegisterWebhookRoutes(r, cfg, services.Reconciler)
	RegisterPublicCurrencyRoutes(r, services.Currency)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, posthogClient)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	if posthogClient.IsInitialized() {
		v1.Use(middleware.PosthogMiddleware(posthogClient))
	}

	registerUserRoutes(v1, services.User)
	registerCurrencyRoutes(v1, services.Currency)
	registerCategoryRoutes(v1, services.Category)
	registerExpenseRoutes(v1, services.Expense)
	registerIncomeRoutes(v1, services.Income)
	registerDashboardRoutes(v1, services.Reporting)
	RegisterSubscriptionRoutes(v1, services.Subscription, services.User)

	// Admin routes sit behind a second authorization gate
	admin := v1.Group("/admin", middleware.RequireAdmin(services.User))
	registerAdminRoutes(admin, services.User, services.Reporting)
}

// registerCustomValidators wires the currencycode rule into gin's binding
// validator so request DTOs can declare it in their tags.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
		_, ok := domain.CurrencyByCode(fl.Field().String())
		return ok
	})
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
