package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardwise/cardwise/internal/model"
)

func TestRankEmptyCandidates(t *testing.T) {
	assert.Nil(t, Rank(model.CategoryDining, 50, testDate, nil))
}

func TestRankHighestRateWins(t *testing.T) {
	gold := cardWithRules("Gold", 0,
		model.RewardRule{Category: model.CategoryDining, Multiplier: 4})
	flat := cardWithRules("Flat", 0,
		model.RewardRule{Category: model.CategoryAll, Multiplier: 2})

	recs := Rank(model.CategoryDining, 60, testDate, []Candidate{
		{Card: flat}, {Card: gold},
	})

	require.Len(t, recs, 2)
	assert.Equal(t, "Gold", recs[0].Card.Name)
	assert.Equal(t, 4.0, recs[0].Rate)
	assert.Greater(t, recs[0].Score, recs[1].Score)
}

func TestRankTieBreaksByFeeThenName(t *testing.T) {
	// Identical rules, identical scores apart from the tiebreaks.
	expensive := cardWithRules("Zeta", 95,
		model.RewardRule{Category: model.CategoryDining, Multiplier: 3})
	cheapA := cardWithRules("Beta", 0,
		model.RewardRule{Category: model.CategoryDining, Multiplier: 3})
	cheapB := cardWithRules("Alpha", 0,
		model.RewardRule{Category: model.CategoryDining, Multiplier: 3})

	recs := Rank(model.CategoryDining, 60, testDate, []Candidate{
		{Card: expensive}, {Card: cheapA}, {Card: cheapB},
	})

	require.Len(t, recs, 3)
	assert.Equal(t, "Alpha", recs[0].Card.Name, "equal fees break by name")
	assert.Equal(t, "Beta", recs[1].Card.Name)
	assert.Equal(t, "Zeta", recs[2].Card.Name, "a fee lowers the score")
}

func TestRankPortalOnlyRanksBelowEqualRate(t *testing.T) {
	portal := cardWithRules("Portal", 0,
		model.RewardRule{Category: model.CategoryTravel, Multiplier: 3, PortalOnly: true})
	direct := cardWithRules("Direct", 0,
		model.RewardRule{Category: model.CategoryTravel, Multiplier: 3})

	recs := Rank(model.CategoryTravel, 400, testDate, []Candidate{
		{Card: portal}, {Card: direct},
	})

	require.Len(t, recs, 2)
	assert.Equal(t, "Direct", recs[0].Card.Name)
	assert.Contains(t, recs[1].Reasoning, "portal")
}

func TestRankExhaustedCapLowersScore(t *testing.T) {
	capped := cardWithRules("Capped", 0,
		model.RewardRule{Category: model.CategoryGas, Multiplier: 5, Cap: floatPtr(500)})
	uncapped := cardWithRules("Uncapped", 0,
		model.RewardRule{Category: model.CategoryGas, Multiplier: 3})

	recs := Rank(model.CategoryGas, 40, testDate, []Candidate{
		{Card: capped, PriorSpend: 500}, // cap fully consumed
		{Card: uncapped},
	})

	require.Len(t, recs, 2)
	assert.Equal(t, "Uncapped", recs[0].Card.Name)
	assert.Equal(t, 1.0, recs[1].Rate, "exhausted cap drops the realized rate to base")
	assert.Contains(t, recs[1].Reasoning, "cap reached")
}

func TestRankTruncatesAlternatives(t *testing.T) {
	candidates := make([]Candidate, 0, 8)
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		candidates = append(candidates, Candidate{
			Card: cardWithRules(name, 0, model.RewardRule{Category: model.CategoryAll, Multiplier: 2}),
		})
	}

	recs := Rank(model.CategoryDining, 50, testDate, candidates)

	assert.Len(t, recs, 6, "one primary plus at most five alternatives")
}

func TestRankReasoningMentionsFee(t *testing.T) {
	card := cardWithRules("Premium", 250,
		model.RewardRule{Category: model.CategoryDining, Multiplier: 4})

	recs := Rank(model.CategoryDining, 60, testDate, []Candidate{{Card: card}})

	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Reasoning, "earns 4.00x on Dining")
	assert.Contains(t, recs[0].Reasoning, "$250 annual fee")
}
