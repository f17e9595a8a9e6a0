// Package app provides service initialization.
package app

import (
	"github.com/guttosm/budget-service/config"
	"github.com/guttosm/budget-service/internal/service"
)

// ServiceComponents holds service-related components. Everything except
// Recommendations is nil when MongoDB is unavailable.
type ServiceComponents struct {
	Recommendations service.RecommendationService
	Menus           service.MenuService
	Purchases       service.PurchaseService
	Budget          service.BudgetService
	Auth            service.AuthService
	Roles           service.RoleService
	Permissions     service.PermissionService
	Logging         service.LoggingService
}

// recommendationConfig maps the budget and cache settings onto the search.
func recommendationConfig(cfg config.Config) service.RecommendationConfig {
	return service.RecommendationConfig{
		MaxResults: cfg.Budget.MaxResults,
		Tolerance:  cfg.Budget.Tolerance,
		StepBudget: cfg.Budget.StepBudget,
		CacheSize:  cfg.Cache.Size,
		CacheTTL:   cfg.Cache.TTL,
	}
}

// InitializeServices initializes business logic services. db may be nil, in
// which case only the stateless recommendation calculator is available.
func InitializeServices(cfg config.Config, db *DatabaseComponents) *ServiceComponents {
	if db == nil {
		return &ServiceComponents{
			Recommendations: service.NewRecommendationService(recommendationConfig(cfg), nil, nil),
		}
	}

	menus := service.NewMenuService(db.MenuRepo)
	budget := service.NewBudgetService(db.PurchaseRepo, cfg.Budget.MonthlyBudget, cfg.Budget.Location)

	return &ServiceComponents{
		Recommendations: service.NewRecommendationService(recommendationConfig(cfg), menus, budget),
		Menus:           menus,
		Purchases:       service.NewPurchaseService(db.PurchaseRepo, db.MenuRepo, cfg.Budget.Location),
		Budget:          budget,
		Auth:            service.NewAuthService(db.UserRepo, db.RoleRepo, db.TokenRepo, cfg.Auth),
		Roles:           service.NewRoleService(db.RoleRepo),
		Permissions:     service.NewPermissionService(db.PermissionRepo, cfg.Cache.TTL),
		Logging:         db.LoggingService,
	}
}
