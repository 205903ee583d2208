package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cardwise/cardwise/internal/cli"
	"github.com/cardwise/cardwise/internal/model"
	"github.com/cardwise/cardwise/internal/service"
)

func recommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <description>",
		Short: "Recommend the best card for a purchase",
		Long: `Categorize a purchase and rank cards for it.

With --user, candidates are that user's portfolio; otherwise the whole
market catalog is ranked. Running spend against capped rules can be
supplied per card as card-id=amount pairs.

Examples:
  cardwise recommend --amount 54.20 "dinner at the new ramen place"
  cardwise recommend --user alice --amount 120 "weekly grocery run"
  cardwise recommend --amount 40 --prior-spend gold-card=24800 "groceries"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRecommend,
	}

	cmd.Flags().Float64("amount", 0, "purchase amount in dollars")
	cmd.Flags().String("user", "", "rank this user's portfolio instead of the market")
	cmd.Flags().String("date", "", "purchase date (YYYY-MM-DD, default today)")
	cmd.Flags().StringSlice("prior-spend", nil, "running category spend per card, as card-id=amount")
	cmd.Flags().String("force-tier", "", "run exactly one classification tier, bypassing the cache")

	_ = viper.BindPFlag("recommend.amount", cmd.Flags().Lookup("amount"))
	_ = viper.BindPFlag("recommend.user", cmd.Flags().Lookup("user"))
	_ = viper.BindPFlag("recommend.date", cmd.Flags().Lookup("date"))
	_ = viper.BindPFlag("recommend.force_tier", cmd.Flags().Lookup("force-tier"))

	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	description := strings.Join(args, " ")

	date, err := parseDateFlag(viper.GetString("recommend.date"))
	if err != nil {
		return err
	}

	query, err := model.NewPurchaseQuery(description, viper.GetFloat64("recommend.amount"), date)
	if err != nil {
		return err
	}
	query.UserID = viper.GetString("recommend.user")

	priorSpendPairs, _ := cmd.Flags().GetStringSlice("prior-spend")
	priorSpend, err := parsePriorSpend(priorSpendPairs)
	if err != nil {
		return err
	}

	svc, cleanup, err := buildService(ctx, slog.Default())
	if err != nil {
		return err
	}
	defer cleanup()

	rec, err := svc.RecommendCard(ctx, query, service.RecommendOptions{
		PriorSpend: priorSpend,
		ForceTier:  viper.GetString("recommend.force_tier"),
	})
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	cmd.Print(cli.RenderRecommendation(rec))
	return nil
}

// parsePriorSpend parses repeated card-id=amount pairs.
func parsePriorSpend(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	spend := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		id, raw, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid prior-spend %q, expected card-id=amount", pair)
		}
		var amount float64
		if _, err := fmt.Sscanf(raw, "%f", &amount); err != nil {
			return nil, fmt.Errorf("invalid prior-spend amount %q: %w", raw, err)
		}
		spend[id] = amount
	}
	return spend, nil
}
