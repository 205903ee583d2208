package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardwise/cardwise/internal/common"
	"github.com/cardwise/cardwise/internal/model"
)

func TestAnalyzeGapsAutoMode(t *testing.T) {
	userCards := []model.Card{
		cardWithRules("flat", 0, model.RewardRule{Category: model.CategoryAll, Multiplier: 1.5}),
	}
	marketCards := []model.Card{
		cardWithRules("dining", 0, model.RewardRule{Category: model.CategoryDining, Multiplier: 4}),
		cardWithRules("gas", 0, model.RewardRule{Category: model.CategoryGas, Multiplier: 3}),
		// 0.9 short of the threshold: grocery must not be reported.
		cardWithRules("grocery", 0, model.RewardRule{Category: model.CategoryGrocery, Multiplier: 2.4}),
	}

	records, err := AnalyzeGaps(userCards, marketCards, model.GapModeAuto, "", testDate)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, model.CategoryDining, records[0].Category, "largest improvement first")
	assert.InDelta(t, 2.5, records[0].Improvement, 1e-9)
	assert.Equal(t, model.CategoryGas, records[1].Category)
	assert.InDelta(t, 1.5, records[1].Improvement, 1e-9)
}

func TestAnalyzeGapsAutoModeSortsTiesByCategory(t *testing.T) {
	marketCards := []model.Card{
		cardWithRules("dining", 0, model.RewardRule{Category: model.CategoryDining, Multiplier: 3}),
		cardWithRules("gas", 0, model.RewardRule{Category: model.CategoryGas, Multiplier: 3}),
	}

	records, err := AnalyzeGaps(nil, marketCards, model.GapModeAuto, "", testDate)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, model.CategoryDining, records[0].Category)
	assert.Equal(t, model.CategoryGas, records[1].Category)
}

func TestAnalyzeGapsCategoryModeIgnoresThreshold(t *testing.T) {
	userCards := []model.Card{
		cardWithRules("user", 0, model.RewardRule{Category: model.CategoryGrocery, Multiplier: 2}),
	}
	marketCards := []model.Card{
		cardWithRules("market", 0, model.RewardRule{Category: model.CategoryGrocery, Multiplier: 2.5}),
	}

	records, err := AnalyzeGaps(userCards, marketCards, model.GapModeCategory, model.CategoryGrocery, testDate)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.InDelta(t, 0.5, records[0].Improvement, 1e-9,
		"category mode reports sub-threshold and even negative gaps")
	assert.Equal(t, 2.0, records[0].UserBestRate)
	assert.Equal(t, 2.5, records[0].MarketBestRate)
}

func TestAnalyzeGapsCategoryModeValidatesCategory(t *testing.T) {
	_, err := AnalyzeGaps(nil, nil, model.GapModeCategory, model.Category("Crypto"), testDate)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = AnalyzeGaps(nil, nil, model.GapModeCategory, model.CategoryAll, testDate)
	assert.ErrorIs(t, err, common.ErrInvalidInput, "the wildcard is not a gap category")
}

func TestAnalyzeGapsUnknownMode(t *testing.T) {
	_, err := AnalyzeGaps(nil, nil, model.GapMode("guess"), "", testDate)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestAnalyzeGapsEmptyPortfolioDefaultsToBaseRate(t *testing.T) {
	marketCards := []model.Card{
		cardWithRules("dining", 0, model.RewardRule{Category: model.CategoryDining, Multiplier: 4}),
	}

	records, err := AnalyzeGaps(nil, marketCards, model.GapModeAuto, "", testDate)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, 1.0, records[0].UserBestRate)
	assert.InDelta(t, 3.0, records[0].Improvement, 1e-9)
}
