//go:build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/budget-service/config"
	"github.com/guttosm/budget-service/internal/service"
)

func TestInitializeDatabase_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Use shared container with unique database names for each subtest
	uri := getSharedContainerURI()

	newConfig := func(t *testing.T) config.DatabaseConfig {
		return config.DatabaseConfig{
			URI:                            uri,
			DatabaseName:                   sanitizeDBNameForApp(t.Name()),
			LogsTTL:                        30 * 24 * time.Hour,
			Enabled:                        true,
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          30 * time.Second,
		}
	}

	t.Run("initialize with enabled database", func(t *testing.T) {
		t.Parallel()
		components := InitializeDatabase(newConfig(t))
		require.NotNil(t, components)
		defer func() { _ = components.Close(ctx) }()

		assert.NotNil(t, components.DB)
		assert.NotNil(t, components.MenuRepo)
		assert.NotNil(t, components.PurchaseRepo)
		assert.NotNil(t, components.LoggingService)
		assert.NotNil(t, components.UserRepo)
		assert.NotNil(t, components.TokenRepo)
		assert.NoError(t, components.DB.HealthCheck(ctx))

		for name, cb := range components.CircuitBreakers() {
			stats := cb.GetStats()
			assert.Equal(t, "closed", stats.State, name)
			assert.True(t, stats.IsHealthy, name)
		}
	})

	t.Run("seeds default roles and permissions", func(t *testing.T) {
		t.Parallel()
		components := InitializeDatabase(newConfig(t))
		require.NotNil(t, components)
		defer func() { _ = components.Close(ctx) }()

		perms, err := components.PermissionRepo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, perms, len(defaultPermissions))

		user, err := components.RoleRepo.FindByName(ctx, service.RoleUser)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Len(t, user.Permissions, len(defaultPermissions)-1)

		admin, err := components.RoleRepo.FindByName(ctx, service.RoleAdmin)
		require.NoError(t, err)
		require.NotNil(t, admin)
		assert.Len(t, admin.Permissions, len(defaultPermissions))
	})

	t.Run("seeding twice is a no-op", func(t *testing.T) {
		t.Parallel()
		cfg := newConfig(t)
		first := InitializeDatabase(cfg)
		require.NotNil(t, first)
		defer func() { _ = first.Close(ctx) }()
		second := InitializeDatabase(cfg)
		require.NotNil(t, second)
		defer func() { _ = second.Close(ctx) }()

		perms, err := second.PermissionRepo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, perms, len(defaultPermissions))
	})

	t.Run("initialize with disabled database", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, InitializeDatabase(config.DatabaseConfig{Enabled: false}))
	})
}
