// Package rewards computes effective reward rates under caps and time
// windows, ranks candidate cards for a purchase, and finds portfolio gaps
// against market-best rates. Everything here is pure computation over
// card data passed in by the caller; nothing is persisted.
package rewards

import (
	"time"

	"github.com/cardwise/cardwise/internal/model"
)

// baseRate is the multiplier earned when no reward rule applies, and the
// rate earned by spend above a rule's cap.
const baseRate = 1.0

// applicableRule selects the card's reward rule for a category on a date:
// an active exact-category rule wins over an active "All" wildcard rule.
// Among several matching active rules the highest multiplier is used.
func applicableRule(card model.Card, category model.Category, date time.Time) (model.RewardRule, bool) {
	var exact, wildcard *model.RewardRule
	for i := range card.Rules {
		rule := &card.Rules[i]
		if !rule.ActiveOn(date) {
			continue
		}
		switch rule.Category {
		case category:
			if exact == nil || rule.Multiplier > exact.Multiplier {
				exact = rule
			}
		case model.CategoryAll:
			if wildcard == nil || rule.Multiplier > wildcard.Multiplier {
				wildcard = rule
			}
		}
	}

	if exact != nil {
		return *exact, true
	}
	if wildcard != nil {
		return *wildcard, true
	}
	return model.RewardRule{}, false
}

// EffectiveRate computes the reward multiplier actually realized for a
// transaction of the given amount, accounting for the rule's remaining
// cap room. priorSpend is the running category spend total supplied by
// the caller; the engine does not persist spend history.
//
// When the transaction straddles the cap, the portion up to the remaining
// room earns the multiplier and the remainder earns the base rate; the
// returned rate is the weighted average. The CapStatus describes room
// after this transaction. A nil CapStatus means no rule applied at all.
func EffectiveRate(card model.Card, category model.Category, amount float64, date time.Time, priorSpend float64) (float64, *model.CapStatus) {
	rule, ok := applicableRule(card, category, date)
	if !ok {
		return baseRate, nil
	}

	if rule.Cap == nil {
		return rule.Multiplier, &model.CapStatus{}
	}

	total := *rule.Cap
	remainingBefore := total - priorSpend
	if remainingBefore < 0 {
		remainingBefore = 0
	}

	var rate float64
	var remainingAfter float64
	switch {
	case amount <= 0:
		if remainingBefore > 0 {
			rate = rule.Multiplier
		} else {
			rate = baseRate
		}
		remainingAfter = remainingBefore
	case amount <= remainingBefore:
		rate = rule.Multiplier
		remainingAfter = remainingBefore - amount
	default:
		boosted := remainingBefore * rule.Multiplier
		base := (amount - remainingBefore) * baseRate
		rate = (boosted + base) / amount
		remainingAfter = 0
	}

	return rate, &model.CapStatus{
		Remaining: &remainingAfter,
		Total:     &total,
	}
}
