// Command budgetctl runs the combination search against a local catalog file
// and generates secrets for the service configuration.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/guttosm/budget-service/internal/i18n"
	"github.com/guttosm/budget-service/internal/logger"
	"github.com/guttosm/budget-service/internal/optimizer"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("budgetctl failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "budgetctl",
		Usage: "Budget-exhaustion combination search and service tooling",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "recommend",
				Usage:  "Find combinations from a catalog file that spend a target amount",
				Action: recommendCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "target",
						Aliases:  []string{"t"},
						Usage:    "Amount to spend",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "catalog",
						Aliases:  []string{"c"},
						Usage:    "Path to a .json or .csv catalog",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Maximum number of exact combinations",
						Value: optimizer.DefaultMaxResults,
					},
					&cli.IntFlag{
						Name:  "tolerance",
						Usage: "How far below the target the approximate search may go",
						Value: optimizer.DefaultTolerance,
					},
					&cli.IntFlag{
						Name:  "step-budget",
						Usage: "Maximum search nodes per engine call (0 for unlimited)",
					},
					&cli.StringFlag{
						Name:  "locale",
						Usage: "Language for combination descriptions (en, ko)",
						Value: i18n.DefaultLocale,
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Search deadline",
						Value: 2 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the result as JSON",
					},
				},
			},
			{
				Name:   "keys",
				Usage:  "Print random JWT secrets for the .env file",
				Action: keysCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "bytes",
						Usage: "Random bytes per secret",
						Value: 32,
					},
				},
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	logger.Init(c.String("log-level"), true)
	return nil
}
