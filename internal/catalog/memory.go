package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cardwise/cardwise/internal/common"
	"github.com/cardwise/cardwise/internal/model"
)

// MemoryStore is an in-memory Store used by tests and demos. It is
// dependency-injected like any other Store, never shared process-wide, so
// state cannot bleed across test cases.
type MemoryStore struct {
	cards     map[string]model.Card
	userCards map[string][]string
	mu        sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cards:     make(map[string]model.Card),
		userCards: make(map[string][]string),
	}
}

// ListCards returns all cards sorted by name for deterministic output.
func (s *MemoryStore) ListCards(_ context.Context) ([]model.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cards := make([]model.Card, 0, len(s.cards))
	for _, card := range s.cards {
		cards = append(cards, card)
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].Name < cards[j].Name })
	return cards, nil
}

// GetCard fetches one card by id.
func (s *MemoryStore) GetCard(_ context.Context, id string) (model.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	card, ok := s.cards[id]
	if !ok {
		return model.Card{}, fmt.Errorf("card %q: %w", id, common.ErrNotFound)
	}
	return card, nil
}

// SaveCard inserts or replaces a card.
func (s *MemoryStore) SaveCard(_ context.Context, card model.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[card.ID] = card
	return nil
}

// ListUserCards returns the user's portfolio.
func (s *MemoryStore) ListUserCards(ctx context.Context, userID string) ([]model.Card, error) {
	s.mu.RLock()
	ids := append([]string(nil), s.userCards[userID]...)
	s.mu.RUnlock()

	cards := make([]model.Card, 0, len(ids))
	for _, id := range ids {
		card, err := s.GetCard(ctx, id)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// AddUserCard adds a catalog card to the user's portfolio.
func (s *MemoryStore) AddUserCard(_ context.Context, userID, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards[cardID]; !ok {
		return fmt.Errorf("card %q: %w", cardID, common.ErrNotFound)
	}
	for _, existing := range s.userCards[userID] {
		if existing == cardID {
			return nil
		}
	}
	s.userCards[userID] = append(s.userCards[userID], cardID)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
