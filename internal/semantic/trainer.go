package semantic

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cardwise/cardwise/internal/embedding"
	"github.com/cardwise/cardwise/internal/vector"
)

// Trainer populates the vector index with labeled training examples.
// It runs offline (via the index seed command), never on the
// classification request path.
type Trainer struct {
	provider embedding.Provider
	index    vector.Index
	logger   *slog.Logger
	// Progress, when set, is called after each example is indexed.
	Progress func(done, total int)
}

// NewTrainer creates a trainer over an embedding provider and an index.
func NewTrainer(provider embedding.Provider, index vector.Index, logger *slog.Logger) *Trainer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Trainer{
		provider: provider,
		index:    index,
		logger:   logger,
	}
}

// Seed embeds and upserts the given examples. Points are written one at a
// time: seed sets are small and per-point writes keep partial progress on
// interruption.
func (t *Trainer) Seed(ctx context.Context, examples []Example) error {
	if err := t.index.EnsureCollection(ctx); err != nil {
		return fmt.Errorf("failed to ensure collection: %w", err)
	}

	for i, example := range examples {
		vec, err := t.provider.Embed(ctx, example.Description)
		if err != nil {
			return fmt.Errorf("failed to embed example %d (%q): %w", i, example.Description, err)
		}

		point := vector.Point{
			ID:          uint64(i + 1),
			Label:       string(example.Category),
			Description: example.Description,
			Vector:      vec,
		}
		if err := t.index.Upsert(ctx, []vector.Point{point}); err != nil {
			return fmt.Errorf("failed to index example %d (%q): %w", i, example.Description, err)
		}

		t.logger.Debug("indexed training example",
			"description", example.Description,
			"category", example.Category)

		if t.Progress != nil {
			t.Progress(i+1, len(examples))
		}
	}

	t.logger.Info("training set indexed", "examples", len(examples))
	return nil
}
