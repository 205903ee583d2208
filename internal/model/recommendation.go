package model

// CapStatus describes remaining room under a reward rule's spending cap
// after a transaction. Nil pointers mean the rule is uncapped. It is
// derived per call, never stored.
type CapStatus struct {
	Remaining *float64
	Total     *float64
}

// Capped reports whether the rule carries a spending cap at all.
func (s *CapStatus) Capped() bool {
	return s != nil && s.Total != nil
}

// Exhausted reports whether no capped room remains.
func (s *CapStatus) Exhausted() bool {
	return s.Capped() && s.Remaining != nil && *s.Remaining <= 0
}

// CardRecommendation is one ranked candidate for a purchase.
type CardRecommendation struct {
	CapStatus *CapStatus
	Card      Card
	Reasoning string
	Score     float64
	Rate      float64
}

// GapMode selects how the portfolio gap analyzer scans categories.
type GapMode string

// Gap analysis modes.
const (
	// GapModeAuto scans every category and reports only material gaps.
	GapModeAuto GapMode = "auto"
	// GapModeCategory compares a single category with no threshold filter.
	GapModeCategory GapMode = "category"
)

// GapRecord compares the user's best rate against the market's best rate
// for one category. Produced transiently per analysis call.
type GapRecord struct {
	Category       Category
	UserBestRate   float64
	MarketBestRate float64
	Improvement    float64
}
