// Package catalog provides read access to the card-and-reward reference
// data and to user portfolios. The engine consumes it as a read-only
// collaborator; persistence details stay behind the Store interface so
// tests can substitute the in-memory implementation.
package catalog

import (
	"context"

	"github.com/cardwise/cardwise/internal/model"
)

// Store is the capability the engine needs from the catalog.
type Store interface {
	// ListCards returns the full market catalog.
	ListCards(ctx context.Context) ([]model.Card, error)
	// GetCard fetches one card by id, or common.ErrNotFound.
	GetCard(ctx context.Context, id string) (model.Card, error)
	// SaveCard inserts or replaces a card with its reward rules.
	SaveCard(ctx context.Context, card model.Card) error
	// ListUserCards returns the cards in a user's portfolio.
	ListUserCards(ctx context.Context, userID string) ([]model.Card, error)
	// AddUserCard adds a catalog card to a user's portfolio.
	AddUserCard(ctx context.Context, userID, cardID string) error
	// Close releases underlying resources.
	Close() error
}
