package rewards

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cardwise/cardwise/internal/model"
)

// Composite score weights. The effective rate dominates; simplicity, cap
// headroom, and fee impact share the rest equally.
const (
	weightRate       = 0.4
	weightSimplicity = 0.2
	weightCapRoom    = 0.2
	weightFeeImpact  = 0.2
)

// portalSimplicity is the simplicity score for portal-only rules; booking
// through an issuer portal is extra friction, so those rules rank below
// an equal-rate rule that earns everywhere.
const portalSimplicity = 0.7

// maxAlternatives caps how many cards follow the primary recommendation.
const maxAlternatives = 5

// Candidate pairs a card with the caller-supplied running spend total for
// the category under consideration.
type Candidate struct {
	Card       model.Card
	PriorSpend float64
}

// Rank scores candidate cards for a purchase of the given amount in the
// resolved category and returns them best-first: the top entry is the
// primary recommendation, the rest are alternatives (at most 5). Ties
// break by lower annual fee, then by card name, so the ordering is
// deterministic.
func Rank(category model.Category, amount float64, date time.Time, candidates []Candidate) []model.CardRecommendation {
	if len(candidates) == 0 {
		return nil
	}

	type scored struct {
		capStatus *model.CapStatus
		card      model.Card
		rate      float64
		portal    bool
	}

	entries := make([]scored, 0, len(candidates))
	maxRate := 0.0
	for _, cand := range candidates {
		rate, capStatus := EffectiveRate(cand.Card, category, amount, date, cand.PriorSpend)
		rule, hasRule := applicableRule(cand.Card, category, date)
		entries = append(entries, scored{
			card:      cand.Card,
			rate:      rate,
			capStatus: capStatus,
			portal:    hasRule && rule.PortalOnly,
		})
		if rate > maxRate {
			maxRate = rate
		}
	}

	recs := make([]model.CardRecommendation, 0, len(entries))
	for _, e := range entries {
		normRate := 0.0
		if maxRate > 0 {
			normRate = e.rate / maxRate
		}

		simplicity := 1.0
		if e.portal {
			simplicity = portalSimplicity
		}

		capFraction := 1.0
		if e.capStatus.Capped() {
			capFraction = *e.capStatus.Remaining / *e.capStatus.Total
			if capFraction < 0 {
				capFraction = 0
			} else if capFraction > 1 {
				capFraction = 1
			}
		}

		// Multipliers are percent-equivalent, so a $100 purchase at 3x is
		// worth about $3 in rewards when weighing the annual fee.
		rewardValue := amount * e.rate / 100.0
		if rewardValue < 1 {
			rewardValue = 1
		}
		feeImpact := 1.0 / (1.0 + e.card.AnnualFee/rewardValue)

		score := weightRate*normRate +
			weightSimplicity*simplicity +
			weightCapRoom*capFraction +
			weightFeeImpact*feeImpact

		recs = append(recs, model.CardRecommendation{
			Card:      e.card,
			Score:     score,
			Rate:      e.rate,
			CapStatus: e.capStatus,
			Reasoning: buildReasoning(e.card, category, e.rate, e.capStatus, e.portal),
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		if recs[i].Card.AnnualFee != recs[j].Card.AnnualFee {
			return recs[i].Card.AnnualFee < recs[j].Card.AnnualFee
		}
		return recs[i].Card.Name < recs[j].Card.Name
	})

	if len(recs) > 1+maxAlternatives {
		recs = recs[:1+maxAlternatives]
	}
	return recs
}

// buildReasoning explains a recommendation in one line. Cap overflow is a
// warning surfaced in words, not an error.
func buildReasoning(card model.Card, category model.Category, rate float64, capStatus *model.CapStatus, portal bool) string {
	parts := []string{fmt.Sprintf("earns %.2fx on %s", rate, category)}

	switch {
	case capStatus.Exhausted():
		parts = append(parts, "spending cap reached, rate blended down toward base")
	case capStatus.Capped():
		parts = append(parts, fmt.Sprintf("$%.0f of $%.0f cap remaining", *capStatus.Remaining, *capStatus.Total))
	}

	if portal {
		parts = append(parts, "requires issuer portal")
	}
	if card.AnnualFee > 0 {
		parts = append(parts, fmt.Sprintf("$%.0f annual fee", card.AnnualFee))
	}

	return strings.Join(parts, "; ")
}
