package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardwise/cardwise/internal/model"
)

func TestResultCacheTTL(t *testing.T) {
	cache := newResultCache(30*time.Millisecond, 0)
	result := model.ClassificationResult{Category: model.CategoryDining, Confidence: 0.9}

	cache.set("starbucks", result)

	got, found := cache.get("starbucks")
	require.True(t, found)
	assert.Equal(t, model.CategoryDining, got.Category)

	time.Sleep(50 * time.Millisecond)

	_, found = cache.get("starbucks")
	assert.False(t, found, "entry should expire after the TTL")
}

func TestResultCacheZeroTTLNeverExpires(t *testing.T) {
	cache := newResultCache(0, 0)
	cache.set("starbucks", model.ClassificationResult{Category: model.CategoryDining})

	time.Sleep(10 * time.Millisecond)

	_, found := cache.get("starbucks")
	assert.True(t, found)
}

func TestResultCacheMaxEntriesEvictsOldest(t *testing.T) {
	cache := newResultCache(0, 3)

	for i := 0; i < 3; i++ {
		cache.set(fmt.Sprintf("key-%d", i), model.ClassificationResult{Category: model.CategoryOther})
		time.Sleep(time.Millisecond) // distinct storedAt timestamps
	}
	require.Equal(t, 3, cache.size())

	cache.set("key-3", model.ClassificationResult{Category: model.CategoryOther})

	assert.Equal(t, 3, cache.size())
	_, found := cache.get("key-0")
	assert.False(t, found, "oldest entry should be evicted")
	_, found = cache.get("key-3")
	assert.True(t, found)
}

func TestResultCacheOverwriteDoesNotEvict(t *testing.T) {
	cache := newResultCache(0, 2)
	cache.set("a", model.ClassificationResult{Category: model.CategoryDining})
	cache.set("b", model.ClassificationResult{Category: model.CategoryGas})

	// Rewriting an existing key at capacity must not push anything out.
	cache.set("a", model.ClassificationResult{Category: model.CategoryGrocery})

	assert.Equal(t, 2, cache.size())
	got, found := cache.get("a")
	require.True(t, found)
	assert.Equal(t, model.CategoryGrocery, got.Category)
	_, found = cache.get("b")
	assert.True(t, found)
}
