package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cardwise/cardwise/internal/cli"
	"github.com/cardwise/cardwise/internal/engine"
	"github.com/cardwise/cardwise/internal/model"
)

func categorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize <description>",
		Short: "Categorize a purchase description",
		Long: `Resolve a spending category for a free-text purchase description.

The engine tries tiers cheapest-first: keyword patterns, then semantic
similarity search, then an LLM. Repeat lookups for the same description
are served from the cache.

Examples:
  cardwise categorize "STARBUCKS #1234 SEATTLE"
  cardwise categorize "refueling my car for a road trip"
  cardwise categorize --force-tier llm "dinner with friends"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCategorize,
	}

	cmd.Flags().String("force-tier", "", "run exactly one tier (keyword, semantic, llm), bypassing the cache")
	_ = viper.BindPFlag("categorize.force_tier", cmd.Flags().Lookup("force-tier"))

	return cmd
}

func runCategorize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	description := strings.Join(args, " ")

	query, err := model.NewPurchaseQuery(description, 0, time.Now())
	if err != nil {
		return err
	}

	logger := slog.Default()
	svc, cleanup, err := buildService(ctx, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := svc.Categorize(ctx, query, engine.Options{
		ForceTier: viper.GetString("categorize.force_tier"),
	})
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	cmd.Print(cli.RenderClassification(result))
	return nil
}
