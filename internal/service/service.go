// Package service wires the categorization engine, the rewards math, and
// the catalog into the two operations exposed to callers: categorize-and-
// recommend, and portfolio gap analysis.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cardwise/cardwise/internal/catalog"
	"github.com/cardwise/cardwise/internal/engine"
	"github.com/cardwise/cardwise/internal/model"
	"github.com/cardwise/cardwise/internal/rewards"
)

// Categorizer is the classification capability the service needs.
type Categorizer interface {
	Categorize(ctx context.Context, query model.PurchaseQuery, opts engine.Options) (model.ClassificationResult, error)
}

// Recommendation is a classification plus the ranked card choices for it.
type Recommendation struct {
	Classification model.ClassificationResult
	Primary        *model.CardRecommendation
	Alternatives   []model.CardRecommendation
}

// RecommendOptions adjusts a RecommendCard call.
type RecommendOptions struct {
	// PriorSpend is the caller-supplied running spend per card id in the
	// resolved category's cap window. Missing cards default to zero.
	PriorSpend map[string]float64
	// ForceTier bypasses the cache and runs exactly the named tier.
	ForceTier string
}

// Service exposes the engine to the surrounding application.
type Service struct {
	categorizer Categorizer
	store       catalog.Store
	logger      *slog.Logger
}

// New creates a Service.
func New(categorizer Categorizer, store catalog.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		categorizer: categorizer,
		store:       store,
		logger:      logger,
	}
}

// Categorize resolves a spending category for the query.
func (s *Service) Categorize(ctx context.Context, query model.PurchaseQuery, opts engine.Options) (model.ClassificationResult, error) {
	return s.categorizer.Categorize(ctx, query, opts)
}

// RecommendCard categorizes the purchase and ranks candidate cards for
// the resolved category. When the query names a user with a non-empty
// portfolio, candidates are the portfolio; otherwise the whole market.
func (s *Service) RecommendCard(ctx context.Context, query model.PurchaseQuery, opts RecommendOptions) (Recommendation, error) {
	result, err := s.categorizer.Categorize(ctx, query, engine.Options{ForceTier: opts.ForceTier})
	if err != nil {
		return Recommendation{}, err
	}

	cards, err := s.candidateCards(ctx, query.UserID)
	if err != nil {
		return Recommendation{}, err
	}

	candidates := make([]rewards.Candidate, 0, len(cards))
	for _, card := range cards {
		candidates = append(candidates, rewards.Candidate{
			Card:       card,
			PriorSpend: opts.PriorSpend[card.ID],
		})
	}

	date := query.Date
	if date.IsZero() {
		date = time.Now()
	}

	ranked := rewards.Rank(result.Category, query.Amount, date, candidates)

	rec := Recommendation{Classification: result}
	if len(ranked) > 0 {
		rec.Primary = &ranked[0]
		rec.Alternatives = ranked[1:]
	}

	s.logger.Info("purchase recommendation computed",
		"description", query.Description,
		"category", result.Category,
		"candidates", len(candidates))

	return rec, nil
}

// AnalyzePortfolioGaps compares the user's portfolio against the market.
func (s *Service) AnalyzePortfolioGaps(ctx context.Context, userID string, mode model.GapMode, category model.Category) ([]model.GapRecord, error) {
	userCards, err := s.store.ListUserCards(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user portfolio: %w", err)
	}

	marketCards, err := s.store.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load market catalog: %w", err)
	}

	return rewards.AnalyzeGaps(userCards, marketCards, mode, category, time.Now())
}

// candidateCards picks the ranking candidates for a query.
func (s *Service) candidateCards(ctx context.Context, userID string) ([]model.Card, error) {
	if userID != "" {
		cards, err := s.store.ListUserCards(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load user portfolio: %w", err)
		}
		if len(cards) > 0 {
			return cards, nil
		}
	}

	cards, err := s.store.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load market catalog: %w", err)
	}
	return cards, nil
}
