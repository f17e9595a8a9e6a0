// Package http exposes the budget service over HTTP with gin.
package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/budget-service/internal/metrics"
	"github.com/guttosm/budget-service/internal/middleware"
	"github.com/guttosm/budget-service/internal/service"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit         int
	RateWindow        time.Duration
	EnableIdempotency bool
	// SearchTimeout bounds the recommendation endpoints.
	SearchTimeout time.Duration
	CORSOrigins   []string
	SwaggerUser   string
	SwaggerPass   string
	// AsyncLogger ships request and audit logs; nil disables them.
	AsyncLogger *middleware.AsyncLogger

	Recommendations service.RecommendationService

	// The services below are wired only when MongoDB is enabled. Without
	// AuthService only the stateless calculator is served.
	AuthService       service.AuthService
	RoleService       service.RoleService
	PermissionService service.PermissionService
	MenuService       service.MenuService
	PurchaseService   service.PurchaseService
	BudgetService     service.BudgetService

	idempotency gin.HandlerFunc
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:         100,
		RateWindow:        time.Minute,
		EnableIdempotency: true,
		SearchTimeout:     2 * time.Second,
	}
}

// NewRouter creates and configures the Gin router for the budget service.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	// Replays are scoped per caller, so on protected routes the check runs
	// after JWTAuth.
	cfg.idempotency = middleware.Idempotency(middleware.IdempotencyConfig{})
	if cfg.EnableIdempotency {
		cfg.idempotency = middleware.Idempotency(middleware.DefaultIdempotencyConfig())
	}

	api := router.Group("/api")

	if cfg.Recommendations != nil {
		NewRecommendationRoutes(cfg.Recommendations, cfg.AsyncLogger).RegisterPublicRoutes(api, &cfg)
	}
	if cfg.AuthService != nil {
		registerAuthenticatedRoutes(api, &cfg)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Authorization", RefreshTokenHeader, "Cache-Control", "X-Requested-With", middleware.IdempotencyKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, middleware.IdempotencyReplayedHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.AsyncLogger, "/healthz", "/readyz", "/metrics"),
		middleware.ErrorHandler(),
	)

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(limiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler == nil {
		healthHandler = NewHealthHandler()
	}
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// registerAuthenticatedRoutes registers the auth endpoints and every route
// behind JWT authentication.
func registerAuthenticatedRoutes(api *gin.RouterGroup, cfg *RouterConfig) {
	authRoutes := NewAuthRoutes(cfg.AuthService, cfg.AsyncLogger)
	authRoutes.RegisterPublicRoutes(api, cfg)

	protected := authRoutes.ProtectedGroup(api, cfg)
	authRoutes.RegisterProtectedRoutes(protected, cfg)

	if cfg.Recommendations != nil {
		NewRecommendationRoutes(cfg.Recommendations, cfg.AsyncLogger).RegisterProtectedRoutes(protected, cfg)
	}
	if cfg.MenuService != nil {
		NewMenuRoutes(cfg.MenuService, cfg.AsyncLogger).RegisterProtectedRoutes(protected, cfg)
	}
	if cfg.PurchaseService != nil {
		NewPurchaseRoutes(cfg.PurchaseService, cfg.AsyncLogger).RegisterProtectedRoutes(protected, cfg)
	}
	if cfg.BudgetService != nil {
		NewBudgetRoutes(cfg.BudgetService).RegisterProtectedRoutes(protected, cfg)
	}
}
