// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/budget-service/config"
	"github.com/guttosm/budget-service/internal/http"
	"github.com/guttosm/budget-service/internal/middleware"
)

const closeTimeout = 10 * time.Second

// App is the wired application: the router plus the resources that must be
// released on shutdown.
type App struct {
	Router *gin.Engine

	db          *DatabaseComponents
	asyncLogger *middleware.AsyncLogger
}

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all components.
func InitializeApp(cfg config.Config) *App {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Log)

	// Initialize database components (MongoDB repositories); nil when disabled
	dbComponents := InitializeDatabase(cfg.Database)

	// Initialize business services
	services := InitializeServices(cfg, dbComponents)

	// Initialize router components (handlers and configuration)
	routerComponents := InitializeRouter(services, dbComponents, cfg)

	log.Info().
		Bool("database", dbComponents != nil).
		Int("monthly_budget", cfg.Budget.MonthlyBudget).
		Int("max_results", cfg.Budget.MaxResults).
		Int("tolerance", cfg.Budget.Tolerance).
		Msg("Application initialized")

	return &App{
		Router:      http.NewRouter(routerComponents.HealthHandler, routerComponents.Config),
		db:          dbComponents,
		asyncLogger: routerComponents.AsyncLogger,
	}
}

// Close flushes pending log writes and disconnects from MongoDB. It is safe
// to call on an App without a database.
func (a *App) Close() {
	a.asyncLogger.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := a.db.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
	}
}
