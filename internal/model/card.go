package model

import (
	"fmt"
	"time"
)

// RewardRule is a single earning rule on a card: a multiplier for a
// category, optionally capped and optionally limited to a date window.
type RewardRule struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Cap        *float64
	Category   Category
	Notes      string
	Multiplier float64
	PortalOnly bool
}

// Validate checks the rule's internal constraints.
func (r RewardRule) Validate() error {
	if r.Multiplier < 0 {
		return fmt.Errorf("multiplier must not be negative, got %.2f", r.Multiplier)
	}
	if r.Cap != nil && *r.Cap <= 0 {
		return fmt.Errorf("cap must be positive, got %.2f", *r.Cap)
	}
	if r.StartDate != nil && r.EndDate != nil && r.StartDate.After(*r.EndDate) {
		return fmt.Errorf("rule start date %s is after end date %s",
			r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"))
	}
	return nil
}

// ActiveOn reports whether the rule is in effect for the given date.
// Nil bounds are open: a rule with no dates is always active.
func (r RewardRule) ActiveOn(date time.Time) bool {
	if r.StartDate != nil && date.Before(*r.StartDate) {
		return false
	}
	if r.EndDate != nil && date.After(*r.EndDate) {
		return false
	}
	return true
}

// Card is a credit card with its reward rules. Cards are owned by the
// catalog; the engine only reads them.
type Card struct {
	ID        string
	Name      string
	Issuer    string
	Network   string
	Rules     []RewardRule
	AnnualFee float64
}

// Validate checks the card and all of its rules.
func (c Card) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("card name is required")
	}
	if c.AnnualFee < 0 {
		return fmt.Errorf("annual fee must not be negative, got %.2f", c.AnnualFee)
	}
	for i, rule := range c.Rules {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("invalid rule %d on card %q: %w", i, c.Name, err)
		}
	}
	return nil
}
