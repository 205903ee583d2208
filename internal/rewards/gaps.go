package rewards

import (
	"sort"
	"time"

	"github.com/cardwise/cardwise/internal/common"
	"github.com/cardwise/cardwise/internal/model"
)

// gapThreshold is the minimum improvement (in multiplier units, i.e.
// percentage-point equivalents) for a category to count as a gap in auto
// mode.
const gapThreshold = 1.0

// bestRate returns the highest multiplier among the cards' currently
// active rules for the category, defaulting to the base rate when no card
// carries an applicable rule.
func bestRate(cards []model.Card, category model.Category, date time.Time) float64 {
	best := baseRate
	for _, card := range cards {
		if rule, ok := applicableRule(card, category, date); ok && rule.Multiplier > best {
			best = rule.Multiplier
		}
	}
	return best
}

// AnalyzeGaps compares the user's best per-category rate against the
// market's best rate.
//
// Auto mode scans every category in the closed set and reports only
// categories where the market beats the user by at least one full
// multiplier unit, sorted by improvement descending. Category mode
// restricts to one category and applies no threshold, so the caller can
// show "you're already optimal" when the gap is zero or negative.
func AnalyzeGaps(userCards, marketCards []model.Card, mode model.GapMode, category model.Category, date time.Time) ([]model.GapRecord, error) {
	switch mode {
	case model.GapModeAuto:
		var records []model.GapRecord
		for _, c := range model.Categories() {
			record := compareCategory(userCards, marketCards, c, date)
			if record.Improvement >= gapThreshold {
				records = append(records, record)
			}
		}
		sort.Slice(records, func(i, j int) bool {
			if records[i].Improvement != records[j].Improvement {
				return records[i].Improvement > records[j].Improvement
			}
			return records[i].Category < records[j].Category
		})
		return records, nil

	case model.GapModeCategory:
		if !category.Valid() {
			return nil, common.NewInvalidInput("category", "must be a category from the closed set")
		}
		return []model.GapRecord{compareCategory(userCards, marketCards, category, date)}, nil

	default:
		return nil, common.NewInvalidInput("mode", "must be auto or category")
	}
}

// compareCategory builds one GapRecord.
func compareCategory(userCards, marketCards []model.Card, category model.Category, date time.Time) model.GapRecord {
	userBest := bestRate(userCards, category, date)
	marketBest := bestRate(marketCards, category, date)
	return model.GapRecord{
		Category:       category,
		UserBestRate:   userBest,
		MarketBestRate: marketBest,
		Improvement:    marketBest - userBest,
	}
}
