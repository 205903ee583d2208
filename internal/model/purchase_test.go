package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPurchaseQuery(t *testing.T) {
	t.Run("normalizes description", func(t *testing.T) {
		query, err := NewPurchaseQuery("  STARBUCKS  #1234   SEATTLE ", 5.75, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, "starbucks #1234 seattle", query.Description)
		assert.InDelta(t, 5.75, query.Amount, 1e-9)
		assert.False(t, query.Date.IsZero(), "zero date should default to now")
	})

	t.Run("empty description is rejected", func(t *testing.T) {
		_, err := NewPurchaseQuery("   ", 0, time.Now())
		assert.Error(t, err)
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		_, err := NewPurchaseQuery("coffee", -1, time.Now())
		assert.Error(t, err)
	})

	t.Run("explicit date is kept", func(t *testing.T) {
		date := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
		query, err := NewPurchaseQuery("coffee", 4, date)
		require.NoError(t, err)
		assert.Equal(t, date, query.Date)
	})
}

func TestNormalizeDescription(t *testing.T) {
	assert.Equal(t, "whole foods market", NormalizeDescription("Whole  Foods\tMarket"))
	assert.Equal(t, "", NormalizeDescription("   "))
}
