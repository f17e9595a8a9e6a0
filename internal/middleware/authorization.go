package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/budget-service/internal/domain/dto"
	"github.com/guttosm/budget-service/internal/i18n"
	"github.com/guttosm/budget-service/internal/service"
)

const permissionLookupTimeout = 3 * time.Second

// Permission names a resource and an action on it, e.g. menus:write.
type Permission struct {
	Resource string
	Action   string
}

// AuthorizationConfig configures authorization requirements for a route.
type AuthorizationConfig struct {
	// RequiredPermissions are checked against the union of the caller's
	// role permissions. Empty means any authenticated user.
	RequiredPermissions []Permission
	// RequireAllPermissions if true, user must have ALL permissions, otherwise ANY is sufficient.
	RequireAllPermissions bool
}

// RequirePermission is shorthand for a single required permission.
func RequirePermission(resource, action string, roleService service.RoleService, permissionService service.PermissionService) gin.HandlerFunc {
	return RequireAuthorization(AuthorizationConfig{
		RequiredPermissions: []Permission{{Resource: resource, Action: action}},
	}, roleService, permissionService)
}

// RequireAuthorization returns a middleware that checks the caller's role
// permissions. It must run after JWTAuth. A storage failure while resolving
// permissions yields 503.
func RequireAuthorization(cfg AuthorizationConfig, roleService service.RoleService, permissionService service.PermissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			abortWith(c, http.StatusUnauthorized, i18n.ErrKeyUnauthorized)
			return
		}
		if len(cfg.RequiredPermissions) == 0 {
			c.Next()
			return
		}
		if roleService == nil || permissionService == nil {
			abortWith(c, http.StatusForbidden, i18n.ErrKeyForbidden)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), permissionLookupTimeout)
		defer cancel()

		granted, err := roleService.PermissionSet(ctx, claims.Roles)
		if err != nil {
			log.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to resolve role permissions")
			abortWith(c, http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable)
			return
		}

		matched := 0
		for _, p := range cfg.RequiredPermissions {
			id := permissionService.GetPermissionIDByResourceAndAction(ctx, p.Resource, p.Action)
			if id != "" && granted[id] {
				matched++
			}
		}

		allowed := matched > 0
		if cfg.RequireAllPermissions {
			allowed = matched == len(cfg.RequiredPermissions)
		}
		if !allowed {
			abortWith(c, http.StatusForbidden, i18n.ErrKeyForbidden)
			return
		}

		c.Next()
	}
}

func abortWith(c *gin.Context, status int, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	c.AbortWithStatusJSON(status, dto.NewError(dto.ErrCodeFromStatus(status), message).
		WithRequestID(GetRequestID(c)))
}
