package service

import (
	"context"
	"time"

	"github.com/guttosm/budget-service/internal/repository"
	"github.com/guttosm/budget-service/internal/service/cache"
)

const (
	permissionCacheName = "permissions"
	permissionLookupTTL = 2 * time.Second
)

// PermissionService resolves "resource:action" pairs to permission IDs.
type PermissionService interface {
	// GetPermissionIDByResourceAndAction returns "" when the permission does
	// not exist or cannot be looked up.
	GetPermissionIDByResourceAndAction(ctx context.Context, resource, action string) string
}

// PermissionServiceImpl implements PermissionService. Found IDs are cached;
// misses are not, so a permission seeded later is picked up.
type PermissionServiceImpl struct {
	permissionRepo repository.PermissionRepositoryInterface
	ids            cache.Cache[string, string]
}

// NewPermissionService creates a new permission service whose lookups are
// cached for ttl.
func NewPermissionService(permissionRepo repository.PermissionRepositoryInterface, ttl time.Duration) *PermissionServiceImpl {
	return &PermissionServiceImpl{
		permissionRepo: permissionRepo,
		ids:            cache.NewLRU[string, string](permissionCacheName, 128, ttl),
	}
}

func (s *PermissionServiceImpl) GetPermissionIDByResourceAndAction(ctx context.Context, resource, action string) string {
	if s.permissionRepo == nil {
		return ""
	}
	key := resource + ":" + action
	if id, ok := s.ids.Get(key); ok {
		return id
	}

	lookupCtx, cancel := context.WithTimeout(ctx, permissionLookupTTL)
	defer cancel()

	perm, err := s.permissionRepo.FindByResourceAndAction(lookupCtx, resource, action)
	if err != nil || perm == nil || !perm.Active {
		return ""
	}
	id := perm.ID.Hex()
	s.ids.Set(key, id)
	return id
}
