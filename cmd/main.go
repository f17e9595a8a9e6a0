// Package main is the entry point for the budget-service application.
//
// @title           Budget Service API
// @version         1.0.0
// @description     API for tracking monthly spending on a shared menu and recommending menu combinations that use up the remaining budget.
//
//	Combinations spend the remaining amount exactly when possible (at most 5 of any item), otherwise they come as close as possible below it.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/budget-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 JWT access token as "Bearer <token>".
//
// @tag.name        Recommendations
// @tag.description Budget-exhaustion combination search
//
// @tag.name        Menus
// @tag.description Shared menu catalog
//
// @tag.name        Purchases
// @tag.description Purchase history
//
// @tag.name        Budget
// @tag.description Monthly budget status and statistics
//
// @tag.name        Auth
// @tag.description Authentication and authorization endpoints
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/budget-service/config"
	_ "github.com/guttosm/budget-service/docs" // swagger docs
	"github.com/guttosm/budget-service/internal/app"
)

func main() {
	cfg := config.Load()

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server.Port)
	server.OnShutdown(application.Close)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
