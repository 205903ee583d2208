package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardwise/cardwise/internal/common"
	"github.com/cardwise/cardwise/internal/model"
)

// stubTier is a scripted tier that counts its invocations.
type stubTier struct {
	name   string
	result model.ClassificationResult
	err    error
	calls  int
}

func (s *stubTier) Name() string { return s.name }

func (s *stubTier) Classify(_ context.Context, _ string) (model.ClassificationResult, error) {
	s.calls++
	if s.err != nil {
		return model.ClassificationResult{}, s.err
	}
	return s.result, nil
}

func confident(category model.Category, source model.Source, confidence float64) model.ClassificationResult {
	return model.ClassificationResult{Category: category, Source: source, Confidence: confidence}
}

func zeroSignal(source model.Source) model.ClassificationResult {
	return model.ClassificationResult{Category: model.CategoryOther, Source: source, Confidence: 0}
}

func query(t *testing.T, description string) model.PurchaseQuery {
	t.Helper()
	q, err := model.NewPurchaseQuery(description, 10, time.Now())
	require.NoError(t, err)
	return q
}

func newTestCategorizer(keyword, semantic, llm Tier) *Categorizer {
	return NewCategorizer(keyword, semantic, llm, CategorizerConfig{}, nil)
}

func TestCategorizeKeywordWins(t *testing.T) {
	keyword := &stubTier{name: "keyword", result: confident(model.CategoryDining, model.SourceKeyword, 0.95)}
	semantic := &stubTier{name: "semantic", result: confident(model.CategoryGas, model.SourceSemantic, 0.9)}
	llm := &stubTier{name: "llm", result: confident(model.CategoryOther, model.SourceLLM, 0.6)}

	c := newTestCategorizer(keyword, semantic, llm)
	result, err := c.Categorize(context.Background(), query(t, "starbucks"), Options{})

	require.NoError(t, err)
	assert.Equal(t, model.CategoryDining, result.Category)
	assert.Equal(t, model.SourceKeyword, result.Source)
	assert.Equal(t, 1, keyword.calls)
	assert.Zero(t, semantic.calls, "semantic tier must not run after a keyword accept")
	assert.Zero(t, llm.calls, "llm tier must not run after a keyword accept")
}

func TestCategorizeEscalatesBelowThreshold(t *testing.T) {
	// Keyword answers with 0.65, below its 0.8 bar; semantic clears its
	// 0.85 bar and is accepted.
	keyword := &stubTier{name: "keyword", result: confident(model.CategoryDining, model.SourceKeyword, 0.65)}
	semantic := &stubTier{name: "semantic", result: confident(model.CategoryGas, model.SourceSemantic, 0.91)}
	llm := &stubTier{name: "llm", result: confident(model.CategoryOther, model.SourceLLM, 0.6)}

	c := newTestCategorizer(keyword, semantic, llm)
	result, err := c.Categorize(context.Background(), query(t, "refueling for a road trip"), Options{})

	require.NoError(t, err)
	assert.Equal(t, model.CategoryGas, result.Category)
	assert.Equal(t, model.SourceSemantic, result.Source)
	assert.Zero(t, llm.calls)
}

func TestCategorizeSemanticFailureFallsThroughToLLM(t *testing.T) {
	keyword := &stubTier{name: "keyword", result: zeroSignal(model.SourceKeyword)}
	semantic := &stubTier{name: "semantic", err: common.ErrProviderUnavailable}
	llm := &stubTier{name: "llm", result: confident(model.CategoryHealthcare, model.SourceLLM, 0.7)}

	c := newTestCategorizer(keyword, semantic, llm)
	result, err := c.Categorize(context.Background(), query(t, "copay dr smith"), Options{})

	require.NoError(t, err)
	assert.Equal(t, model.CategoryHealthcare, result.Category)
	assert.Equal(t, 1, semantic.calls)
	assert.Equal(t, 1, llm.calls)
}

func TestCategorizeTerminalFailure(t *testing.T) {
	keyword := &stubTier{name: "keyword", result: zeroSignal(model.SourceKeyword)}
	semantic := &stubTier{name: "semantic", result: zeroSignal(model.SourceSemantic)}
	llm := &stubTier{name: "llm", err: errors.New("api down")}

	c := newTestCategorizer(keyword, semantic, llm)
	_, err := c.Categorize(context.Background(), query(t, "mystery charge"), Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrClassificationUnavailable)
}

func TestCategorizeTerminalZeroSignal(t *testing.T) {
	keyword := &stubTier{name: "keyword", result: zeroSignal(model.SourceKeyword)}
	semantic := &stubTier{name: "semantic", result: zeroSignal(model.SourceSemantic)}
	llm := &stubTier{name: "llm", result: zeroSignal(model.SourceLLM)}

	c := newTestCategorizer(keyword, semantic, llm)
	_, err := c.Categorize(context.Background(), query(t, "mystery charge"), Options{})

	assert.ErrorIs(t, err, common.ErrClassificationUnavailable)
}

func TestCategorizeEmptyDescription(t *testing.T) {
	c := newTestCategorizer(&stubTier{name: "keyword"}, &stubTier{name: "semantic"}, &stubTier{name: "llm"})

	_, err := c.Categorize(context.Background(), model.PurchaseQuery{Description: "   "}, Options{})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestCategorizeCacheHit(t *testing.T) {
	keyword := &stubTier{name: "keyword", result: confident(model.CategoryDining, model.SourceKeyword, 0.95)}
	semantic := &stubTier{name: "semantic"}
	llm := &stubTier{name: "llm"}

	c := newTestCategorizer(keyword, semantic, llm)
	ctx := context.Background()

	first, err := c.Categorize(ctx, query(t, "STARBUCKS #1234"), Options{})
	require.NoError(t, err)
	assert.Equal(t, model.SourceKeyword, first.Source)

	// Different casing and spacing, same normalized key.
	second, err := c.Categorize(ctx, query(t, "starbucks   #1234"), Options{})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryDining, second.Category)
	assert.Equal(t, model.SourceCache, second.Source)
	assert.Equal(t, 1, keyword.calls, "cached result must not re-run any tier")
	assert.Equal(t, 1, c.CacheSize())
}

func TestCategorizeForceTierBypassesCache(t *testing.T) {
	keyword := &stubTier{name: "keyword", result: confident(model.CategoryDining, model.SourceKeyword, 0.95)}
	semantic := &stubTier{name: "semantic"}
	llm := &stubTier{name: "llm", result: confident(model.CategoryGrocery, model.SourceLLM, 0.8)}

	c := newTestCategorizer(keyword, semantic, llm)
	ctx := context.Background()

	_, err := c.Categorize(ctx, query(t, "trader joes"), Options{})
	require.NoError(t, err)

	forced, err := c.Categorize(ctx, query(t, "trader joes"), Options{ForceTier: "llm"})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryGrocery, forced.Category)
	assert.Equal(t, 1, llm.calls, "forced tier must run even with a warm cache")

	// The forced outcome replaced the cache entry.
	cached, err := c.Categorize(ctx, query(t, "trader joes"), Options{})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryGrocery, cached.Category)
	assert.Equal(t, model.SourceCache, cached.Source)
	assert.Equal(t, 1, keyword.calls)
}

func TestCategorizeForceTierUnknown(t *testing.T) {
	c := newTestCategorizer(&stubTier{name: "keyword"}, &stubTier{name: "semantic"}, &stubTier{name: "llm"})

	_, err := c.Categorize(context.Background(), query(t, "anything"), Options{ForceTier: "oracle"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestCategorizeForceTierFailureDoesNotFallBack(t *testing.T) {
	keyword := &stubTier{name: "keyword", result: confident(model.CategoryDining, model.SourceKeyword, 0.95)}
	semantic := &stubTier{name: "semantic", err: errors.New("index offline")}
	llm := &stubTier{name: "llm", result: confident(model.CategoryOther, model.SourceLLM, 0.6)}

	c := newTestCategorizer(keyword, semantic, llm)
	_, err := c.Categorize(context.Background(), query(t, "anything"), Options{ForceTier: "semantic"})

	require.Error(t, err)
	assert.Zero(t, llm.calls, "a forced tier's failure must not escalate")
	assert.Zero(t, c.CacheSize())
}

func TestCategorizeClampsConfidence(t *testing.T) {
	keyword := &stubTier{name: "keyword", result: confident(model.CategoryDining, model.SourceKeyword, 1.7)}

	c := newTestCategorizer(keyword, &stubTier{name: "semantic"}, &stubTier{name: "llm"})
	result, err := c.Categorize(context.Background(), query(t, "starbucks"), Options{})

	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Confidence)
}

func TestClearCache(t *testing.T) {
	keyword := &stubTier{name: "keyword", result: confident(model.CategoryDining, model.SourceKeyword, 0.95)}

	c := newTestCategorizer(keyword, &stubTier{name: "semantic"}, &stubTier{name: "llm"})
	_, err := c.Categorize(context.Background(), query(t, "starbucks"), Options{})
	require.NoError(t, err)
	require.Equal(t, 1, c.CacheSize())

	c.ClearCache()
	assert.Zero(t, c.CacheSize())
}
