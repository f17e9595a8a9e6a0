//go:build !integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/budget-service/config"
	"github.com/guttosm/budget-service/internal/domain/dto"
	"github.com/guttosm/budget-service/internal/mocks"
)

func TestRecommendationConfig(t *testing.T) {
	cfg := config.Config{
		Cache:  config.CacheConfig{Size: 10, TTL: time.Minute},
		Budget: config.BudgetConfig{MaxResults: 3, Tolerance: 50, StepBudget: 1000},
	}

	got := recommendationConfig(cfg)

	assert.Equal(t, 3, got.MaxResults)
	assert.Equal(t, 50, got.Tolerance)
	assert.Equal(t, 1000, got.StepBudget)
	assert.Equal(t, 10, got.CacheSize)
	assert.Equal(t, time.Minute, got.CacheTTL)
}

func TestInitializeServices_WithoutDatabase(t *testing.T) {
	components := InitializeServices(statelessConfig(), nil)

	require.NotNil(t, components)
	assert.NotNil(t, components.Recommendations)
	assert.Nil(t, components.Menus)
	assert.Nil(t, components.Purchases)
	assert.Nil(t, components.Budget)
	assert.Nil(t, components.Auth)
	assert.Nil(t, components.Roles)
	assert.Nil(t, components.Permissions)
	assert.Nil(t, components.Logging)

	resp, err := components.Recommendations.Calculate(context.Background(), dto.CalculateRequest{
		Target:  8000,
		Catalog: []dto.CatalogItemRequest{{ID: "a", Name: "Americano", Price: 4000}},
	}, "en")
	require.NoError(t, err)
	assert.True(t, resp.Exact)
	require.NotEmpty(t, resp.Combinations)
	assert.Equal(t, 8000, resp.Combinations[0].TotalPrice)
}

func TestInitializeServices_WithDatabase(t *testing.T) {
	db := &DatabaseComponents{
		MenuRepo:       new(mocks.MockMenuRepositoryInterface),
		PurchaseRepo:   new(mocks.MockPurchaseRepositoryInterface),
		LoggingService: new(mocks.MockLoggingService),
		UserRepo:       new(mocks.MockUserRepositoryInterface),
		RoleRepo:       new(mocks.MockRoleRepositoryInterface),
		PermissionRepo: new(mocks.MockPermissionRepositoryInterface),
		TokenRepo:      new(mocks.MockTokenRepositoryInterface),
	}
	cfg := statelessConfig()
	cfg.Auth = config.AuthConfig{
		JWTSecretKey:     "secret",
		JWTRefreshSecret: "refresh",
		AccessTokenTTL:   time.Minute,
		RefreshTokenTTL:  time.Hour,
	}

	components := InitializeServices(cfg, db)

	require.NotNil(t, components)
	assert.NotNil(t, components.Recommendations)
	assert.NotNil(t, components.Menus)
	assert.NotNil(t, components.Purchases)
	assert.NotNil(t, components.Budget)
	assert.NotNil(t, components.Auth)
	assert.NotNil(t, components.Roles)
	assert.NotNil(t, components.Permissions)
	assert.Same(t, db.LoggingService, components.Logging)
}
