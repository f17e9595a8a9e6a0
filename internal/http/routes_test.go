package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/guttosm/budget-service/internal/mocks"
	"github.com/guttosm/budget-service/internal/service"
)

type routeCase struct {
	method string
	path   string
}

// assertRegistered checks the engine's route table for every method and path.
func assertRegistered(t *testing.T, router *gin.Engine, routes []routeCase) {
	t.Helper()
	registered := make(map[string]bool)
	for _, info := range router.Routes() {
		registered[info.Method+" "+info.Path] = true
	}
	for _, rc := range routes {
		assert.True(t, registered[rc.method+" "+rc.path], "%s %s not registered", rc.method, rc.path)
	}
}

// Tests for AuthRoutes

func TestNewAuthRoutes(t *testing.T) {
	routes := NewAuthRoutes(new(mocks.MockAuthService), nil)

	assert.NotNil(t, routes)
	assert.NotNil(t, routes.handler)
}

func TestAuthRoutes_RegisterPublicRoutes(t *testing.T) {
	routes := NewAuthRoutes(new(mocks.MockAuthService), nil)

	router := newTestEngine()
	routes.RegisterPublicRoutes(router.Group("/api"), &RouterConfig{})

	assertRegistered(t, router, []routeCase{
		{http.MethodPost, "/api/auth/login"},
		{http.MethodPost, "/api/auth/register"},
		{http.MethodPost, "/api/auth/refresh"},
	})

	// Empty bodies fail validation before the service is reached.
	w := serve(router, http.MethodPost, "/api/auth/login", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthRoutes_RegisterProtectedRoutes(t *testing.T) {
	routes := NewAuthRoutes(new(mocks.MockAuthService), nil)

	router := newTestEngine()
	routes.RegisterProtectedRoutes(router.Group("/api"), &RouterConfig{RateLimit: 100, RateWindow: time.Minute})

	assertRegistered(t, router, []routeCase{{http.MethodPost, "/api/auth/logout"}})

	w := serve(router, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRoutes_ProtectedGroup(t *testing.T) {
	tests := []struct {
		name       string
		rateLimit  int
		rateWindow time.Duration
	}{
		{
			name:       "with rate limiting",
			rateLimit:  100,
			rateWindow: time.Minute,
		},
		{
			name:       "without rate limiting",
			rateLimit:  0,
			rateWindow: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			routes := NewAuthRoutes(new(mocks.MockAuthService), nil)

			router := newTestEngine()
			protected := routes.ProtectedGroup(router.Group("/api"), &RouterConfig{
				RateLimit:  tt.rateLimit,
				RateWindow: tt.rateWindow,
			})
			protected.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := serve(router, http.MethodGet, "/api/ping", "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

// Tests for RecommendationRoutes

func TestRecommendationRoutes(t *testing.T) {
	routes := NewRecommendationRoutes(service.NewRecommendationService(service.DefaultRecommendationConfig(), nil, nil), nil)
	cfg := &RouterConfig{SearchTimeout: time.Second}

	router := newTestEngine()
	api := router.Group("/api")
	routes.RegisterPublicRoutes(api, cfg)
	routes.RegisterProtectedRoutes(api, cfg)

	assertRegistered(t, router, []routeCase{
		{http.MethodPost, "/api/recommendations/calculate"},
		{http.MethodGet, "/api/recommendations"},
	})
}

// Tests for MenuRoutes, PurchaseRoutes and BudgetRoutes

func TestDataRoutes(t *testing.T) {
	cfg := &RouterConfig{}

	router := newTestEngine()
	api := router.Group("/api")
	NewMenuRoutes(new(mocks.MockMenuService), nil).RegisterProtectedRoutes(api, cfg)
	NewPurchaseRoutes(new(mocks.MockPurchaseService), nil).RegisterProtectedRoutes(api, cfg)
	NewBudgetRoutes(new(mocks.MockBudgetService)).RegisterProtectedRoutes(api, cfg)

	assertRegistered(t, router, []routeCase{
		{http.MethodGet, "/api/menus"},
		{http.MethodGet, "/api/menus/:id"},
		{http.MethodPost, "/api/menus"},
		{http.MethodPost, "/api/menus/import"},
		{http.MethodPut, "/api/menus/:id"},
		{http.MethodDelete, "/api/menus/:id"},
		{http.MethodGet, "/api/purchases"},
		{http.MethodGet, "/api/purchases/:id"},
		{http.MethodPost, "/api/purchases"},
		{http.MethodPost, "/api/purchases/batch"},
		{http.MethodPut, "/api/purchases/:id"},
		{http.MethodDelete, "/api/purchases/:id"},
		{http.MethodGet, "/api/budget"},
		{http.MethodGet, "/api/budget/statistics"},
		{http.MethodGet, "/api/budget/:year/:month"},
	})
}

func TestAuthorize(t *testing.T) {
	assert.Empty(t, authorize(&RouterConfig{}, ResourceMenus, ActionRead))
	assert.Empty(t, authorize(&RouterConfig{RoleService: new(mocks.MockRoleService)}, ResourceMenus, ActionRead))
	assert.Len(t, authorize(&RouterConfig{
		RoleService:       new(mocks.MockRoleService),
		PermissionService: new(mocks.MockPermissionService),
	}, ResourceMenus, ActionWrite), 1)
}
