package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cardwise/cardwise/internal/common"
	"github.com/cardwise/cardwise/internal/model"
)

// Default acceptance thresholds per tier. A tier's result is accepted
// when its confidence clears the threshold; otherwise the next, more
// expensive tier runs. The terminal tier has no threshold: its result is
// always accepted unless it carries no signal at all.
const (
	keywordThreshold  = 0.8
	semanticThreshold = 0.85
)

// defaultTierTimeout bounds each provider-backed tier call. A timeout is
// that tier's failure, not the request's.
const defaultTierTimeout = 5 * time.Second

// Options adjusts a single Categorize call.
type Options struct {
	// ForceTier runs exactly the named tier (keyword, semantic, llm),
	// bypassing the cache read and the fallback chain, and overwrites the
	// cache entry with the outcome. Used for re-analysis.
	ForceTier string
}

// tier pairs a classifier with its acceptance threshold.
type tier struct {
	classifier Tier
	threshold  float64
	terminal   bool
}

// Categorizer sequences the classification tiers, cheapest first, and
// caches accepted results by normalized description.
type Categorizer struct {
	cache       *resultCache
	logger      *slog.Logger
	tiers       []tier
	tierTimeout time.Duration
}

// CategorizerConfig holds tuning knobs for the orchestrator.
type CategorizerConfig struct {
	// CacheTTL of 0 keeps entries forever.
	CacheTTL time.Duration
	// CacheMaxEntries of 0 leaves the cache unbounded.
	CacheMaxEntries int
	// TierTimeout bounds each provider-backed tier call.
	TierTimeout time.Duration
}

// NewCategorizer builds the standard three-tier chain. Order matters:
// each tier's cost and latency strictly exceeds the previous one's, so
// the orchestrator escalates only when a cheaper tier is rejected.
func NewCategorizer(keywordTier, semanticTier, llmTier Tier, cfg CategorizerConfig, logger *slog.Logger) *Categorizer {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.TierTimeout
	if timeout <= 0 {
		timeout = defaultTierTimeout
	}

	return &Categorizer{
		tiers: []tier{
			{classifier: keywordTier, threshold: keywordThreshold},
			{classifier: semanticTier, threshold: semanticThreshold},
			{classifier: llmTier, threshold: 0, terminal: true},
		},
		cache:       newResultCache(cfg.CacheTTL, cfg.CacheMaxEntries),
		tierTimeout: timeout,
		logger:      logger,
	}
}

// Categorize resolves a spending category for the query's description.
// An empty description is a hard error, never a classification into
// Other. Failures of non-terminal tiers fall through to the next tier;
// a terminal-tier failure surfaces as ErrClassificationUnavailable.
func (c *Categorizer) Categorize(ctx context.Context, query model.PurchaseQuery, opts Options) (model.ClassificationResult, error) {
	key := model.NormalizeDescription(query.Description)
	if key == "" {
		return model.ClassificationResult{}, common.NewInvalidInput("description", "must not be empty")
	}

	if opts.ForceTier != "" {
		return c.categorizeForced(ctx, key, opts.ForceTier)
	}

	if cached, found := c.cache.get(key); found {
		c.logger.Debug("cache hit", "description", key)
		cached.Source = model.SourceCache
		return cached, nil
	}

	for _, t := range c.tiers {
		result, err := c.runTier(ctx, t.classifier, key)
		if err != nil {
			if t.terminal {
				return model.ClassificationResult{}, fmt.Errorf("%w: %v",
					common.ErrClassificationUnavailable, err)
			}
			// A non-terminal provider failure is this tier's "no signal".
			c.logger.Warn("tier failed, falling through",
				"tier", t.classifier.Name(),
				"error", err)
			continue
		}

		if result.ZeroSignal() {
			if t.terminal {
				return model.ClassificationResult{}, fmt.Errorf(
					"%w: terminal tier produced no signal", common.ErrClassificationUnavailable)
			}
			continue
		}

		if result.Confidence >= t.threshold {
			c.logger.Info("description categorized",
				"description", key,
				"tier", t.classifier.Name(),
				"category", result.Category,
				"confidence", result.Confidence)
			c.cache.set(key, result)
			return result, nil
		}

		c.logger.Debug("tier below threshold, escalating",
			"tier", t.classifier.Name(),
			"confidence", result.Confidence,
			"threshold", t.threshold)
	}

	return model.ClassificationResult{}, common.ErrClassificationUnavailable
}

// categorizeForced runs exactly one tier and overwrites the cache entry
// with its outcome. This is the explicit cache-bypass contract.
func (c *Categorizer) categorizeForced(ctx context.Context, key, tierName string) (model.ClassificationResult, error) {
	for _, t := range c.tiers {
		if t.classifier.Name() != tierName {
			continue
		}
		result, err := c.runTier(ctx, t.classifier, key)
		if err != nil {
			return model.ClassificationResult{}, fmt.Errorf("forced tier %s failed: %w", tierName, err)
		}
		c.cache.set(key, result)
		return result, nil
	}
	return model.ClassificationResult{}, common.NewInvalidInput("forceTier",
		fmt.Sprintf("unknown tier %q", tierName))
}

// runTier invokes one tier under the per-tier timeout budget and clamps
// its confidence into [0,1].
func (c *Categorizer) runTier(ctx context.Context, t Tier, description string) (model.ClassificationResult, error) {
	tierCtx, cancel := context.WithTimeout(ctx, c.tierTimeout)
	defer cancel()

	result, err := t.Classify(tierCtx, description)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return model.ClassificationResult{}, fmt.Errorf("%w: tier %s timed out",
				common.ErrProviderUnavailable, t.Name())
		}
		return model.ClassificationResult{}, err
	}

	if result.Confidence < 0 {
		result.Confidence = 0
	} else if result.Confidence > 1 {
		result.Confidence = 1
	}
	return result, nil
}

// CacheSize reports the number of cached classifications.
func (c *Categorizer) CacheSize() int {
	return c.cache.size()
}

// ClearCache drops all cached classifications.
func (c *Categorizer) ClearCache() {
	c.cache.clear()
}
