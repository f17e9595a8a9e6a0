// Package app provides database initialization and setup.
package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/budget-service/config"
	"github.com/guttosm/budget-service/internal/circuitbreaker"
	"github.com/guttosm/budget-service/internal/metrics"
	"github.com/guttosm/budget-service/internal/repository"
	"github.com/guttosm/budget-service/internal/service"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                     *repository.MongoDB
	MenuRepo               repository.MenuRepositoryInterface
	PurchaseRepo           repository.PurchaseRepositoryInterface
	LoggingService         service.LoggingService
	MenuCircuitBreaker     *circuitbreaker.CircuitBreaker
	PurchaseCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker     *circuitbreaker.CircuitBreaker
	UserRepo               repository.UserRepositoryInterface
	RoleRepo               repository.RoleRepositoryInterface
	PermissionRepo         repository.PermissionRepositoryInterface
	TokenRepo              repository.TokenRepositoryInterface
}

// CircuitBreakers returns the breakers by health-check name.
func (d *DatabaseComponents) CircuitBreakers() map[string]*circuitbreaker.CircuitBreaker {
	if d == nil {
		return nil
	}
	return map[string]*circuitbreaker.CircuitBreaker{
		"mongodb_menus":     d.MenuCircuitBreaker,
		"mongodb_purchases": d.PurchaseCircuitBreaker,
		"mongodb_logs":      d.LogsCircuitBreaker,
	}
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}

// newCircuitBreaker builds a breaker from the database config and exports
// its state as a gauge.
func newCircuitBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	cb := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		IsFailure:        repository.IsStorageFailure,
		OnStateChange: func(name string, _, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
		},
	})
	metrics.SetCircuitBreakerState(name, int(circuitbreaker.StateClosed))
	return cb
}

// InitializeDatabase initializes MongoDB connection and creates required repositories and services.
// Returns nil if database is disabled or connection fails.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")
	return newDatabaseComponents(db, cfg)
}

func newDatabaseComponents(db *repository.MongoDB, cfg config.DatabaseConfig) *DatabaseComponents {
	if err := db.SetLogsTTL(context.Background(), cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index")
	}

	menuCB := newCircuitBreaker(cfg, "mongodb-menus")
	purchaseCB := newCircuitBreaker(cfg, "mongodb-purchases")
	logsCB := newCircuitBreaker(cfg, "mongodb-logs")

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)

	if err := initializeDefaultRolesAndPermissions(roleRepo, permissionRepo); err != nil {
		log.Warn().Err(err).Msg("Failed to initialize default roles and permissions")
	}

	return &DatabaseComponents{
		DB:                     db,
		MenuRepo:               repository.NewMenuRepositoryWithCircuitBreaker(repository.NewMenuRepository(db), menuCB),
		PurchaseRepo:           repository.NewPurchaseRepositoryWithCircuitBreaker(repository.NewPurchaseRepository(db), purchaseCB),
		LoggingService:         service.NewLoggingService(logsRepo),
		MenuCircuitBreaker:     menuCB,
		PurchaseCircuitBreaker: purchaseCB,
		LogsCircuitBreaker:     logsCB,
		UserRepo:               repository.NewUserRepository(db),
		RoleRepo:               roleRepo,
		PermissionRepo:         permissionRepo,
		TokenRepo:              repository.NewTokenRepository(db),
	}
}
