package model

import (
	"fmt"
	"strings"
	"time"
)

// PurchaseQuery is a normalized classification request. Construct it with
// NewPurchaseQuery; the fields are not meant to change afterward.
type PurchaseQuery struct {
	Date        time.Time
	Description string
	UserID      string
	Amount      float64
}

// NewPurchaseQuery normalizes and validates a raw purchase description.
// The description is lowercased, trimmed, and inner whitespace collapsed,
// so "  STARBUCKS  #1234 " and "starbucks #1234" share a cache key.
func NewPurchaseQuery(description string, amount float64, date time.Time) (PurchaseQuery, error) {
	normalized := NormalizeDescription(description)
	if normalized == "" {
		return PurchaseQuery{}, fmt.Errorf("purchase description must not be empty")
	}
	if amount < 0 {
		return PurchaseQuery{}, fmt.Errorf("purchase amount must not be negative, got %.2f", amount)
	}
	if date.IsZero() {
		date = time.Now()
	}
	return PurchaseQuery{
		Description: normalized,
		Amount:      amount,
		Date:        date,
	}, nil
}

// NormalizeDescription lowercases, trims, and collapses whitespace.
func NormalizeDescription(description string) string {
	return strings.Join(strings.Fields(strings.ToLower(description)), " ")
}
