package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cardwise/cardwise/internal/cli"
	"github.com/cardwise/cardwise/internal/common"
	"github.com/cardwise/cardwise/internal/model"
	"github.com/cardwise/cardwise/internal/rewards"
)

func gapsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "Find weak categories in a portfolio",
		Long: `Compare a user's best per-category reward rate against the best rate
anywhere in the market.

By default every category is scanned and only material gaps (market
beats you by at least 1.0x) are shown. With --category, the single
comparison is always shown, even when you are already optimal.

Examples:
  cardwise gaps --user alice
  cardwise gaps --user alice --category Dining`,
		RunE: runGaps,
	}

	cmd.Flags().String("user", "", "user whose portfolio to analyze (required)")
	cmd.Flags().String("category", "", "restrict to a single category")
	_ = cmd.MarkFlagRequired("user")

	_ = viper.BindPFlag("gaps.user", cmd.Flags().Lookup("user"))
	_ = viper.BindPFlag("gaps.category", cmd.Flags().Lookup("category"))

	return cmd
}

func runGaps(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	mode := model.GapModeAuto
	var category model.Category
	if raw := viper.GetString("gaps.category"); raw != "" {
		parsed, ok := model.ParseCategory(raw)
		if !ok {
			return common.NewInvalidInput("category", fmt.Sprintf("unknown category %q", raw))
		}
		mode = model.GapModeCategory
		category = parsed
	}

	// Gap analysis is pure catalog math; it does not need the
	// classification tiers or their credentials.
	store, err := openCatalog(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	userCards, err := store.ListUserCards(ctx, viper.GetString("gaps.user"))
	if err != nil {
		return fmt.Errorf("failed to load user portfolio: %w", err)
	}
	marketCards, err := store.ListCards(ctx)
	if err != nil {
		return fmt.Errorf("failed to load market catalog: %w", err)
	}

	records, err := rewards.AnalyzeGaps(userCards, marketCards, mode, category, time.Now())
	if err != nil {
		return fmt.Errorf("gap analysis failed: %w", err)
	}

	cmd.Print(cli.RenderGaps(records, mode))
	return nil
}
