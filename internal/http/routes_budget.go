package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/budget-service/internal/middleware"
	"github.com/guttosm/budget-service/internal/service"
)

// Permission resources and actions seeded at startup.
const (
	ResourceMenus           = "menus"
	ResourcePurchases       = "purchases"
	ResourceBudget          = "budget"
	ResourceRecommendations = "recommendations"

	ActionRead  = "read"
	ActionWrite = "write"
)

// authorize returns the permission check for resource:action, or nothing
// when role lookups are not wired.
func authorize(cfg *RouterConfig, resource, action string) []gin.HandlerFunc {
	if cfg.RoleService == nil || cfg.PermissionService == nil {
		return nil
	}
	return []gin.HandlerFunc{
		middleware.RequirePermission(resource, action, cfg.RoleService, cfg.PermissionService),
	}
}

func chain(guards []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(guards)+1)
	return append(append(out, guards...), h)
}

// RecommendationRoutes registers the combination search endpoints.
type RecommendationRoutes struct {
	handler *RecommendationHandler
}

// NewRecommendationRoutes creates a new RecommendationRoutes instance.
func NewRecommendationRoutes(recommendations service.RecommendationService, auditLogger *middleware.AsyncLogger) *RecommendationRoutes {
	return &RecommendationRoutes{handler: NewRecommendationHandler(recommendations, auditLogger)}
}

// RegisterPublicRoutes registers the stateless calculator.
func (r *RecommendationRoutes) RegisterPublicRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	guards := []gin.HandlerFunc{searchTimeout(cfg)}
	if cfg.idempotency != nil {
		guards = append([]gin.HandlerFunc{cfg.idempotency}, guards...)
	}
	rg.POST("/recommendations/calculate", chain(guards, r.handler.Calculate)...)
}

// RegisterProtectedRoutes registers the remaining-budget recommendation.
func (r *RecommendationRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup, cfg *RouterConfig) {
	guards := append(authorize(cfg, ResourceRecommendations, ActionRead), searchTimeout(cfg))
	protected.GET("/recommendations", chain(guards, r.handler.Recommend)...)
}

func searchTimeout(cfg *RouterConfig) gin.HandlerFunc {
	return middleware.TimeoutWithDuration(cfg.SearchTimeout)
}

// MenuRoutes registers the menu catalog endpoints.
type MenuRoutes struct {
	handler *MenuHandler
}

// NewMenuRoutes creates a new MenuRoutes instance.
func NewMenuRoutes(menus service.MenuService, auditLogger *middleware.AsyncLogger) *MenuRoutes {
	return &MenuRoutes{handler: NewMenuHandler(menus, auditLogger)}
}

// RegisterProtectedRoutes registers menu CRUD and import.
func (r *MenuRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup, cfg *RouterConfig) {
	read := authorize(cfg, ResourceMenus, ActionRead)
	write := authorize(cfg, ResourceMenus, ActionWrite)

	menus := protected.Group("/menus")
	menus.GET("", chain(read, r.handler.List)...)
	menus.GET("/:id", chain(read, r.handler.Get)...)
	menus.POST("", chain(write, r.handler.Create)...)
	menus.POST("/import", chain(write, r.handler.Import)...)
	menus.PUT("/:id", chain(write, r.handler.Update)...)
	menus.DELETE("/:id", chain(write, r.handler.Delete)...)
}

// PurchaseRoutes registers the purchase history endpoints.
type PurchaseRoutes struct {
	handler *PurchaseHandler
}

// NewPurchaseRoutes creates a new PurchaseRoutes instance.
func NewPurchaseRoutes(purchases service.PurchaseService, auditLogger *middleware.AsyncLogger) *PurchaseRoutes {
	return &PurchaseRoutes{handler: NewPurchaseHandler(purchases, auditLogger)}
}

// RegisterProtectedRoutes registers purchase CRUD and batch purchase.
func (r *PurchaseRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup, cfg *RouterConfig) {
	read := authorize(cfg, ResourcePurchases, ActionRead)
	write := authorize(cfg, ResourcePurchases, ActionWrite)

	purchases := protected.Group("/purchases")
	purchases.GET("", chain(read, r.handler.List)...)
	purchases.GET("/:id", chain(read, r.handler.Get)...)
	purchases.POST("", chain(write, r.handler.Create)...)
	purchases.POST("/batch", chain(write, r.handler.CreateBatch)...)
	purchases.PUT("/:id", chain(write, r.handler.Update)...)
	purchases.DELETE("/:id", chain(write, r.handler.Delete)...)
}

// BudgetRoutes registers the budget status endpoints.
type BudgetRoutes struct {
	handler *BudgetHandler
}

// NewBudgetRoutes creates a new BudgetRoutes instance.
func NewBudgetRoutes(budget service.BudgetService) *BudgetRoutes {
	return &BudgetRoutes{handler: NewBudgetHandler(budget)}
}

// RegisterProtectedRoutes registers the current, monthly and statistics views.
func (r *BudgetRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup, cfg *RouterConfig) {
	read := authorize(cfg, ResourceBudget, ActionRead)

	budget := protected.Group("/budget")
	budget.GET("", chain(read, r.handler.Current)...)
	budget.GET("/statistics", chain(read, r.handler.Statistics)...)
	budget.GET("/:year/:month", chain(read, r.handler.ForMonth)...)
}
