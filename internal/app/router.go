// Package app provides router configuration.
package app

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/budget-service/config"
	"github.com/guttosm/budget-service/internal/http"
	"github.com/guttosm/budget-service/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	AsyncLogger   *middleware.AsyncLogger
	Config        http.RouterConfig
}

// InitializeRouter builds the health handler, the async request logger and
// the router configuration. dbComponents may be nil.
func InitializeRouter(services *ServiceComponents, dbComponents *DatabaseComponents, cfg config.Config) *RouterComponents {
	healthHandler := http.NewHealthHandler()
	if dbComponents != nil {
		if dbComponents.DB != nil {
			healthHandler.RegisterChecker("mongodb", http.HealthCheckerFunc(dbComponents.DB.HealthCheck))
		}
		for name, cb := range dbComponents.CircuitBreakers() {
			if cb != nil {
				healthHandler.RegisterCircuitBreaker(name, cb)
			}
		}
	}

	asyncLogger, err := middleware.NewAsyncLogger(services.Logging, middleware.DefaultAsyncLoggerConfig())
	if err != nil {
		log.Warn().Err(err).Msg("Failed to start async logger - request logs will not be persisted")
		asyncLogger = nil
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		EnableIdempotency: true,
		SearchTimeout:     cfg.Budget.SearchTimeout,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		AsyncLogger:       asyncLogger,
		Recommendations:   services.Recommendations,
		AuthService:       services.Auth,
		RoleService:       services.Roles,
		PermissionService: services.Permissions,
		MenuService:       services.Menus,
		PurchaseService:   services.Purchases,
		BudgetService:     services.Budget,
	}

	return &RouterComponents{
		HealthHandler: healthHandler,
		AsyncLogger:   asyncLogger,
		Config:        routerCfg,
	}
}
