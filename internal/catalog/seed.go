package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/cardwise/cardwise/internal/model"
)

func floatPtr(f float64) *float64 { return &f }

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// SeedCards returns the built-in market catalog used to bootstrap a fresh
// database. Rates and caps approximate real published card terms.
func SeedCards() []model.Card {
	return []model.Card{
		{
			ID:        "sapphire-preferred",
			Name:      "Sapphire Preferred",
			Issuer:    "Chase",
			Network:   "Visa",
			AnnualFee: 95,
			Rules: []model.RewardRule{
				{Category: model.CategoryDining, Multiplier: 3},
				{Category: model.CategoryOnline, Multiplier: 3, Notes: "online grocery and select streaming"},
				{Category: model.CategoryTravel, Multiplier: 5, PortalOnly: true, Notes: "through the issuer travel portal"},
				{Category: model.CategoryTravel, Multiplier: 2},
				{Category: model.CategoryAll, Multiplier: 1},
			},
		},
		{
			ID:        "gold-card",
			Name:      "Gold Card",
			Issuer:    "American Express",
			Network:   "Amex",
			AnnualFee: 250,
			Rules: []model.RewardRule{
				{Category: model.CategoryDining, Multiplier: 4},
				{Category: model.CategoryGrocery, Multiplier: 4, Cap: floatPtr(25000), Notes: "at U.S. supermarkets"},
				{Category: model.CategoryTravel, Multiplier: 3, Notes: "flights booked direct"},
				{Category: model.CategoryAll, Multiplier: 1},
			},
		},
		{
			ID:        "custom-cash",
			Name:      "Custom Cash",
			Issuer:    "Citi",
			Network:   "Mastercard",
			AnnualFee: 0,
			Rules: []model.RewardRule{
				{Category: model.CategoryGas, Multiplier: 5, Cap: floatPtr(500), Notes: "top eligible category each cycle"},
				{Category: model.CategoryAll, Multiplier: 1},
			},
		},
		{
			ID:        "savor",
			Name:      "Savor",
			Issuer:    "Capital One",
			Network:   "Mastercard",
			AnnualFee: 0,
			Rules: []model.RewardRule{
				{Category: model.CategoryDining, Multiplier: 3},
				{Category: model.CategoryGrocery, Multiplier: 3},
				{Category: model.CategoryEntertainment, Multiplier: 3},
				{Category: model.CategoryAll, Multiplier: 1},
			},
		},
		{
			ID:        "quarterly-5x",
			Name:      "Quarterly Rotating",
			Issuer:    "Discover",
			Network:   "Discover",
			AnnualFee: 0,
			Rules: []model.RewardRule{
				{
					Category:   model.CategoryGas,
					Multiplier: 5,
					Cap:        floatPtr(1500),
					StartDate:  datePtr(2026, time.July, 1),
					EndDate:    datePtr(2026, time.September, 30),
					Notes:      "rotating category, activation required",
				},
				{Category: model.CategoryAll, Multiplier: 1},
			},
		},
		{
			ID:        "active-cash",
			Name:      "Active Cash",
			Issuer:    "Wells Fargo",
			Network:   "Visa",
			AnnualFee: 0,
			Rules: []model.RewardRule{
				{Category: model.CategoryAll, Multiplier: 2},
			},
		},
		{
			ID:        "premier",
			Name:      "Premier",
			Issuer:    "Citi",
			Network:   "Mastercard",
			AnnualFee: 95,
			Rules: []model.RewardRule{
				{Category: model.CategoryGas, Multiplier: 3},
				{Category: model.CategoryGrocery, Multiplier: 3},
				{Category: model.CategoryDining, Multiplier: 3},
				{Category: model.CategoryTravel, Multiplier: 3},
				{Category: model.CategoryAll, Multiplier: 1},
			},
		},
	}
}

// Seed writes the built-in catalog into the store. Existing cards with
// the same ids are replaced.
func Seed(ctx context.Context, store Store) error {
	for _, card := range SeedCards() {
		if err := store.SaveCard(ctx, card); err != nil {
			return fmt.Errorf("failed to seed card %q: %w", card.ID, err)
		}
	}
	return nil
}
