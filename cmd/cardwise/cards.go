package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardwise/cardwise/internal/catalog"
	"github.com/cardwise/cardwise/internal/cli"
)

func cardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Manage the card catalog and user portfolios",
	}

	cmd.AddCommand(cardsListCmd())
	cmd.AddCommand(cardsSeedCmd())
	cmd.AddCommand(cardsAddCmd())

	return cmd
}

func cardsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the market catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openCatalog(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cards, err := store.ListCards(ctx)
			if err != nil {
				return fmt.Errorf("failed to list cards: %w", err)
			}

			if len(cards) == 0 {
				cmd.Println(cli.SubtleStyle.Render("Catalog is empty; run `cardwise cards seed` first."))
				return nil
			}

			for _, card := range cards {
				cmd.Printf("%s  %s\n",
					cli.BoldStyle.Render(card.Name),
					cli.SubtleStyle.Render(fmt.Sprintf("%s %s, $%.0f/yr, id=%s", card.Issuer, card.Network, card.AnnualFee, card.ID)))
				for _, rule := range card.Rules {
					line := fmt.Sprintf("  %.1fx %s", rule.Multiplier, rule.Category)
					if rule.Cap != nil {
						line += fmt.Sprintf(" (cap $%.0f)", *rule.Cap)
					}
					if rule.PortalOnly {
						line += " [portal]"
					}
					if rule.Notes != "" {
						line += ", " + rule.Notes
					}
					cmd.Println(cli.SubtleStyle.Render(line))
				}
			}
			return nil
		},
	}
}

func cardsSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in market catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openCatalog(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := catalog.Seed(ctx, store); err != nil {
				return err
			}

			cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf("Seeded %d cards into the catalog.", len(catalog.SeedCards()))))
			return nil
		},
	}
}

func cardsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <card-id>",
		Short: "Add a catalog card to a user's portfolio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, _ := cmd.Flags().GetString("user")
			if user == "" {
				return fmt.Errorf("--user is required")
			}

			store, err := openCatalog(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.AddUserCard(ctx, user, args[0]); err != nil {
				return fmt.Errorf("failed to add card: %w", err)
			}

			cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf("Added %s to %s's portfolio.", args[0], user)))
			return nil
		},
	}

	cmd.Flags().String("user", "", "portfolio owner")
	return cmd
}
