package handlers

import (
	"github.com/SscSPs/investment_ledger_app/cmd/docs"
	"github.com/SscSPs/investment_ledger_app/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/investment_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/investment_ledger_app/internal/middleware"
	"github.com/SscSPs/investment_ledger_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Dependencies are the collaborators the HTTP layer needs besides the services.
type Dependencies struct {
	Storage       gateways.DocumentStorage
	Events        gateways.EventPublisher
	PublicLimiter *limiter.Limiter
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps Dependencies,
) {
	r.GET("/", getHome)
	r.GET("/health", getHealth)

	// Locally stored proof documents
	if cfg.GCSBucket == "" && cfg.UploadDir != "" {
		r.Static("/uploads", cfg.UploadDir)
	}

	v1 := r.Group("/api/v1")
	registerAuthRoutes(v1, services.AdminAuth)
	setupPublicRoutes(v1, cfg, services, deps)
	setupAdminRoutes(v1, cfg, services, deps)

	setupSwaggerRoutes(r, cfg)
}

// setupPublicRoutes configures the customer-facing routes behind the per-IP limit.
func setupPublicRoutes(v1 *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer, deps Dependencies) {
	public := v1.Group("")
	if deps.PublicLimiter != nil {
		public.Use(middleware.RateLimit(deps.PublicLimiter))
	}

	registerPaymentRoutes(public, services.Payment)
	registerPublicInvestmentRoutes(public, newInvestmentHandler(services.Investment, deps.Storage, cfg.MaxUploadBytes))
	registerPublicWithdrawalRoutes(public, &withdrawalHandler{withdrawalService: services.Withdrawal})
}

// setupAdminRoutes configures the /api/v1/admin group with Auth Middleware.
func setupAdminRoutes(v1 *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer, deps Dependencies) {
	admin := v1.Group("/admin", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	if deps.Events != nil {
		admin.Use(middleware.EventTrackingMiddleware(deps.Events))
	}

	registerAdminInvestmentRoutes(admin, newInvestmentHandler(services.Investment, deps.Storage, cfg.MaxUploadBytes))
	registerPlanRoutes(admin, services.Plan)
	registerReferralRoutes(admin, services.Referral)
	registerAdminWithdrawalRoutes(admin, &withdrawalHandler{withdrawalService: services.Withdrawal})
	registerAccrualRoutes(admin, services.Accrual)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
