package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/cardwise/cardwise/internal/common"
	"github.com/cardwise/cardwise/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (creating if needed) the catalog database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath must not be empty")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ListCards returns the full market catalog ordered by card name.
func (s *SQLiteStore) ListCards(ctx context.Context) ([]model.Card, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, issuer, network, annual_fee FROM cards ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cards []model.Card
	for rows.Next() {
		var card model.Card
		if err := rows.Scan(&card.ID, &card.Name, &card.Issuer, &card.Network, &card.AnnualFee); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}

	for i := range cards {
		rules, err := s.rulesForCard(ctx, cards[i].ID)
		if err != nil {
			return nil, err
		}
		cards[i].Rules = rules
	}
	return cards, nil
}

// GetCard fetches one card and its rules by id.
func (s *SQLiteStore) GetCard(ctx context.Context, id string) (model.Card, error) {
	var card model.Card
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, issuer, network, annual_fee FROM cards WHERE id = ?`, id).
		Scan(&card.ID, &card.Name, &card.Issuer, &card.Network, &card.AnnualFee)
	if err == sql.ErrNoRows {
		return model.Card{}, fmt.Errorf("card %q: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return model.Card{}, fmt.Errorf("failed to query card: %w", err)
	}

	rules, err := s.rulesForCard(ctx, card.ID)
	if err != nil {
		return model.Card{}, err
	}
	card.Rules = rules
	return card, nil
}

// SaveCard inserts or replaces a card with its reward rules in one
// transaction.
func (s *SQLiteStore) SaveCard(ctx context.Context, card model.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}
	if card.ID == "" {
		return fmt.Errorf("card id must not be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO cards (id, name, issuer, network, annual_fee)
		 VALUES (?, ?, ?, ?, ?)`,
		card.ID, card.Name, card.Issuer, card.Network, card.AnnualFee)
	if err != nil {
		return fmt.Errorf("failed to save card: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM reward_rules WHERE card_id = ?`, card.ID); err != nil {
		return fmt.Errorf("failed to clear old rules: %w", err)
	}

	for _, rule := range card.Rules {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO reward_rules
			 (card_id, category, multiplier, cap, portal_only, start_date, end_date, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			card.ID, string(rule.Category), rule.Multiplier, rule.Cap,
			rule.PortalOnly, formatDate(rule.StartDate), formatDate(rule.EndDate), rule.Notes)
		if err != nil {
			return fmt.Errorf("failed to save rule for card %q: %w", card.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// ListUserCards returns the user's portfolio ordered by card name.
func (s *SQLiteStore) ListUserCards(ctx context.Context, userID string) ([]model.Card, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.name, c.issuer, c.network, c.annual_fee
		 FROM cards c
		 JOIN user_cards uc ON uc.card_id = c.id
		 WHERE uc.user_id = ?
		 ORDER BY c.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cards []model.Card
	for rows.Next() {
		var card model.Card
		if err := rows.Scan(&card.ID, &card.Name, &card.Issuer, &card.Network, &card.AnnualFee); err != nil {
			return nil, fmt.Errorf("failed to scan user card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user cards: %w", err)
	}

	for i := range cards {
		rules, err := s.rulesForCard(ctx, cards[i].ID)
		if err != nil {
			return nil, err
		}
		cards[i].Rules = rules
	}
	return cards, nil
}

// AddUserCard adds a catalog card to a user's portfolio. Adding the same
// card twice is a no-op.
func (s *SQLiteStore) AddUserCard(ctx context.Context, userID, cardID string) error {
	if _, err := s.GetCard(ctx, cardID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_cards (user_id, card_id, added_at) VALUES (?, ?, ?)`,
		userID, cardID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to add user card: %w", err)
	}
	return nil
}

// rulesForCard loads reward rules in insertion order.
func (s *SQLiteStore) rulesForCard(ctx context.Context, cardID string) ([]model.RewardRule, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, multiplier, cap, portal_only, start_date, end_date, notes
		 FROM reward_rules WHERE card_id = ? ORDER BY id`, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.RewardRule
	for rows.Next() {
		var rule model.RewardRule
		var category string
		var start, end sql.NullString
		if err := rows.Scan(&category, &rule.Multiplier, &rule.Cap, &rule.PortalOnly, &start, &end, &rule.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rule.Category = model.Category(category)
		rule.StartDate = parseDate(start)
		rule.EndDate = parseDate(end)
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rules: %w", err)
	}
	return rules, nil
}

func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format("2006-01-02")
}

func parseDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s.String)
	if err != nil {
		return nil
	}
	return &t
}
