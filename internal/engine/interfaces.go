// Package engine sequences the classification tiers and owns the shared
// result cache.
package engine

import (
	"context"

	"github.com/cardwise/cardwise/internal/model"
)

// Tier is one stage of the categorization fallback chain. Tiers are
// polymorphic over this interface so adding or reordering a tier is a
// data change in the orchestrator's tier list, not a control-flow change.
type Tier interface {
	// Name identifies the tier (keyword, semantic, llm).
	Name() string
	// Classify returns a result with confidence in [0,1]. A tier that
	// cannot produce any signal returns (Other, 0) rather than an error;
	// errors are reserved for provider failures.
	Classify(ctx context.Context, description string) (model.ClassificationResult, error)
}
