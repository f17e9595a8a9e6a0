package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/guttosm/budget-service/internal/domain/dto"
	"github.com/guttosm/budget-service/internal/i18n"
	"github.com/guttosm/budget-service/internal/service"
)

func recommendCommand(c *cli.Context) error {
	locale := c.String("locale")
	if !i18n.GetTranslator().Supported(locale) {
		return fmt.Errorf("unsupported locale %q", locale)
	}
	if c.Int("max-results") <= 0 {
		return errors.New("max-results must be positive")
	}
	if c.Int("tolerance") < 0 {
		return errors.New("tolerance must not be negative")
	}

	catalog, err := loadCatalog(c.String("catalog"))
	if err != nil {
		return err
	}

	tolerance := c.Int("tolerance")
	req := dto.CalculateRequest{
		Target:     c.Int("target"),
		Catalog:    catalog,
		MaxResults: c.Int("max-results"),
		Tolerance:  &tolerance,
	}

	svc := service.NewRecommendationService(service.RecommendationConfig{
		MaxResults: req.MaxResults,
		Tolerance:  tolerance,
		StepBudget: c.Int("step-budget"),
	}, nil, nil)

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	start := time.Now()
	resp, err := svc.Calculate(ctx, req, locale)
	if err != nil {
		return err
	}
	log.Debug().
		Int("target", req.Target).
		Int("items", len(catalog)).
		Bool("exact", resp.Exact).
		Int("combinations", len(resp.Combinations)).
		Dur("duration", time.Since(start)).
		Msg("Search finished")

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	return printCombinations(c.App.Writer, resp)
}

func printCombinations(w io.Writer, resp *dto.CalculateResponse) error {
	if len(resp.Combinations) == 0 {
		_, err := fmt.Fprintf(w, "No combinations found for %d\n", resp.Target)
		return err
	}

	heading := "Exact combinations for %d:\n"
	if !resp.Exact {
		heading = "No exact match. Closest combinations below %d:\n"
	}
	if _, err := fmt.Fprintf(w, heading, resp.Target); err != nil {
		return err
	}
	for i, combo := range resp.Combinations {
		if _, err := fmt.Fprintf(w, "%2d. %s (%d)\n", i+1, combo.Description, combo.TotalPrice); err != nil {
			return err
		}
	}
	return nil
}
