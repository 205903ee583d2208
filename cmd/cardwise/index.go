package main

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/cardwise/cardwise/internal/cli"
	"github.com/cardwise/cardwise/internal/semantic"
)

func indexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage the semantic search index",
	}

	cmd.AddCommand(indexSeedCmd())
	return cmd
}

func indexSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Embed and index the built-in training examples",
		Long: `Populate the vector index with labeled purchase descriptions.

This is the offline half of the semantic tier: each training example is
embedded and upserted with its category label so runtime classification
can find the nearest labeled neighbor. Run it once before relying on
semantic matches.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := slog.Default()

			provider, err := buildEmbedding()
			if err != nil {
				return fmt.Errorf("failed to build embedding provider: %w", err)
			}

			index, err := buildIndex(logger)
			if err != nil {
				return fmt.Errorf("failed to connect to vector index: %w", err)
			}
			defer func() { _ = index.Close() }()

			examples := semantic.TrainingExamples()
			bar := progressbar.Default(int64(len(examples)), "indexing")

			trainer := semantic.NewTrainer(provider, index, logger)
			trainer.Progress = func(done, _ int) {
				_ = bar.Set(done)
			}

			if err := trainer.Seed(ctx, examples); err != nil {
				return fmt.Errorf("index seeding failed: %w", err)
			}

			cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf("Indexed %d training examples.", len(examples))))
			return nil
		},
	}
}
