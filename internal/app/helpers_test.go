package app

import (
	"time"

	"github.com/guttosm/budget-service/config"
)

// statelessConfig is a configuration without MongoDB.
func statelessConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:       "8080",
			RateLimit:  100,
			RateWindow: time.Minute,
		},
		Cache: config.CacheConfig{
			Size: 100,
			TTL:  time.Minute,
		},
		Budget: config.BudgetConfig{
			MonthlyBudget: 50000,
			MaxResults:    5,
			Tolerance:     100,
			SearchTimeout: 2 * time.Second,
		},
	}
}
