// Package semantic implements the middle classification tier: embedding
// the purchase description and finding the nearest labeled training
// example in a vector index.
package semantic

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cardwise/cardwise/internal/embedding"
	"github.com/cardwise/cardwise/internal/model"
	"github.com/cardwise/cardwise/internal/vector"
)

// Matcher classifies descriptions by nearest-neighbor lookup.
type Matcher struct {
	provider embedding.Provider
	index    vector.Index
	logger   *slog.Logger
}

// NewMatcher creates a semantic matcher over an embedding provider and a
// vector index.
func NewMatcher(provider embedding.Provider, index vector.Index, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{
		provider: provider,
		index:    index,
		logger:   logger,
	}
}

// Name identifies this tier in results and logs.
func (m *Matcher) Name() string {
	return string(model.SourceSemantic)
}

// Classify embeds the description, queries the index for the single
// nearest labeled example, and returns that example's category with
// confidence equal to the cosine-similarity score. Provider and index
// failures return errors; the orchestrator treats them as confidence 0
// and falls through to the next tier.
func (m *Matcher) Classify(ctx context.Context, description string) (model.ClassificationResult, error) {
	vec, err := m.provider.Embed(ctx, description)
	if err != nil {
		return model.ClassificationResult{}, fmt.Errorf("embedding failed: %w", err)
	}

	matches, err := m.index.Query(ctx, vec, 1)
	if err != nil {
		return model.ClassificationResult{}, fmt.Errorf("similarity search failed: %w", err)
	}

	if len(matches) == 0 {
		return model.ClassificationResult{
			Category:   model.CategoryOther,
			Confidence: 0,
			Source:     model.SourceSemantic,
			Reasoning:  "no labeled example found in index",
		}, nil
	}

	top := matches[0]
	category, ok := model.ParseCategory(top.Label)
	if !ok {
		m.logger.Warn("index returned unknown label, coercing to Other",
			"label", top.Label,
			"score", top.Score)
	}

	confidence := top.Score
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	return model.ClassificationResult{
		Category:   category,
		Confidence: confidence,
		Source:     model.SourceSemantic,
		Reasoning:  fmt.Sprintf("nearest labeled example scored %.3f for %s", top.Score, category),
		RawDetails: map[string]any{
			"label":     top.Label,
			"top_score": top.Score,
		},
	}, nil
}
