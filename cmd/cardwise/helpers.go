package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cardwise/cardwise/internal/catalog"
	"github.com/cardwise/cardwise/internal/embedding"
	"github.com/cardwise/cardwise/internal/engine"
	"github.com/cardwise/cardwise/internal/keyword"
	"github.com/cardwise/cardwise/internal/llm"
	"github.com/cardwise/cardwise/internal/semantic"
	"github.com/cardwise/cardwise/internal/service"
	"github.com/cardwise/cardwise/internal/vector"
)

// expandPath expands $HOME and ~ in configured paths.
func expandPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	path = strings.ReplaceAll(path, "$HOME", home)
	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(home, path[2:])
	}
	return path
}

// openCatalog opens the catalog database and runs migrations.
func openCatalog(ctx context.Context) (*catalog.SQLiteStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/cardwise/catalog.db"
	}
	dbPath = expandPath(dbPath)

	store, err := catalog.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// buildEmbedding constructs the embedding provider from config.
func buildEmbedding() (embedding.Provider, error) {
	return embedding.NewOpenAIProvider(embedding.Config{
		APIKey:  viper.GetString("embedding.api_key"),
		BaseURL: viper.GetString("embedding.base_url"),
		Model:   viper.GetString("embedding.model"),
	})
}

// buildIndex connects to the configured vector index.
func buildIndex(logger *slog.Logger) (*vector.QdrantIndex, error) {
	host := viper.GetString("qdrant.host")
	if host == "" {
		host = "localhost"
	}
	port := viper.GetInt("qdrant.port")
	if port == 0 {
		port = 6334
	}
	return vector.NewQdrantIndex(host, port, viper.GetString("qdrant.collection"), logger)
}

// buildService assembles the full three-tier engine plus the catalog.
// The returned cleanup closes everything the service holds open.
func buildService(ctx context.Context, logger *slog.Logger) (*service.Service, func(), error) {
	store, err := openCatalog(ctx)
	if err != nil {
		return nil, nil, err
	}

	keywordTier := keyword.NewMatcher()

	provider, err := buildEmbedding()
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to build embedding provider: %w", err)
	}

	index, err := buildIndex(logger)
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to connect to vector index: %w", err)
	}

	semanticTier := semantic.NewMatcher(provider, index, logger)

	llmTier, err := llm.NewClassifier(llm.Config{
		Provider:    viper.GetString("llm.provider"),
		APIKey:      viper.GetString("llm.api_key"),
		BaseURL:     viper.GetString("llm.base_url"),
		Model:       viper.GetString("llm.model"),
		MaxRetries:  viper.GetInt("llm.max_retries"),
		RateLimit:   viper.GetInt("llm.rate_limit"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
	}, logger)
	if err != nil {
		_ = index.Close()
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to build LLM classifier: %w", err)
	}

	categorizer := engine.NewCategorizer(keywordTier, semanticTier, llmTier, engine.CategorizerConfig{
		CacheTTL:        viper.GetDuration("cache.ttl"),
		CacheMaxEntries: viper.GetInt("cache.max_entries"),
		TierTimeout:     viper.GetDuration("tiers.timeout"),
	}, logger)

	svc := service.New(categorizer, store, logger)

	cleanup := func() {
		_ = llmTier.Close()
		_ = index.Close()
		_ = store.Close()
	}
	return svc, cleanup, nil
}

// parseDateFlag parses an optional YYYY-MM-DD flag, defaulting to now.
func parseDateFlag(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", raw, err)
	}
	return t, nil
}
