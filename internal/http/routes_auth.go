package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/budget-service/internal/middleware"
	"github.com/guttosm/budget-service/internal/service"
)

// AuthRoutes handles authentication route registration.
type AuthRoutes struct {
	handler     *AuthHandler
	authService service.AuthService
}

// NewAuthRoutes creates a new AuthRoutes instance.
func NewAuthRoutes(authService service.AuthService, auditLogger *middleware.AsyncLogger) *AuthRoutes {
	return &AuthRoutes{
		handler:     NewAuthHandler(authService, auditLogger),
		authService: authService,
	}
}

// RegisterPublicRoutes registers login, register and refresh.
func (r *AuthRoutes) RegisterPublicRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", r.handler.Login)
		auth.POST("/register", r.handler.Register)
		auth.POST("/refresh", r.handler.RefreshToken)
	}
}

// RegisterProtectedRoutes registers logout on a group that already runs JWTAuth.
func (r *AuthRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup, _ *RouterConfig) {
	protected.POST("/auth/logout", r.handler.Logout)
}

// ProtectedGroup returns a group with JWT auth and per-user rate limiting applied.
func (r *AuthRoutes) ProtectedGroup(rg *gin.RouterGroup, cfg *RouterConfig) *gin.RouterGroup {
	protected := rg.Group("")
	protected.Use(middleware.JWTAuth(r.authService))

	if cfg.RateLimit > 0 {
		userLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		protected.Use(userLimiter.UserRateLimit())
	}
	if cfg.idempotency != nil {
		protected.Use(cfg.idempotency)
	}

	return protected
}
