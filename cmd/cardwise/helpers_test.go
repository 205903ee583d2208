package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriorSpend(t *testing.T) {
	t.Run("valid pairs", func(t *testing.T) {
		spend, err := parsePriorSpend([]string{"gold-card=24800", "custom-cash=312.50"})
		require.NoError(t, err)
		assert.Equal(t, 24800.0, spend["gold-card"])
		assert.Equal(t, 312.50, spend["custom-cash"])
	})

	t.Run("empty input", func(t *testing.T) {
		spend, err := parsePriorSpend(nil)
		require.NoError(t, err)
		assert.Nil(t, spend)
	})

	t.Run("missing equals sign", func(t *testing.T) {
		_, err := parsePriorSpend([]string{"gold-card"})
		assert.Error(t, err)
	})

	t.Run("non-numeric amount", func(t *testing.T) {
		_, err := parsePriorSpend([]string{"gold-card=lots"})
		assert.Error(t, err)
	})
}

func TestParseDateFlag(t *testing.T) {
	t.Run("empty defaults to now", func(t *testing.T) {
		got, err := parseDateFlag("")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), got, time.Minute)
	})

	t.Run("valid date", func(t *testing.T) {
		got, err := parseDateFlag("2026-07-04")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.July, 4, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := parseDateFlag("next tuesday")
		assert.Error(t, err)
	})
}
