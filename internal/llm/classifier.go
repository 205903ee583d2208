package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cardwise/cardwise/internal/common"
	"github.com/cardwise/cardwise/internal/model"
)

// defaultConfidence is assigned when the provider omits a confidence
// score. A fixed conservative value is honest about what we know; a
// fabricated precise number would not be.
const defaultConfidence = 0.6

// Classifier is the terminal classification tier. It constrains the model
// to the closed category set and coerces anything outside it to Other.
type Classifier struct {
	client      Client
	logger      *slog.Logger
	rateLimiter *rateLimiter
	retryOpts   common.RetryOptions
}

// NewClassifier creates an LLM-backed classifier from config.
func NewClassifier(cfg Config, logger *slog.Logger) (*Classifier, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	retryOpts := common.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Classifier{
		client:      client,
		logger:      logger,
		retryOpts:   retryOpts,
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}, nil
}

// NewClassifierWithClient creates a classifier over an existing client.
// Used by tests to substitute a fake provider.
func NewClassifierWithClient(client Client, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		client:      client,
		logger:      logger,
		retryOpts:   common.RetryOptions{MaxAttempts: 1},
		rateLimiter: newRateLimiter(0),
	}
}

// Name identifies this tier in results and logs.
func (c *Classifier) Name() string {
	return string(model.SourceLLM)
}

// Classify sends the description to the LLM with a closed-set prompt and
// parses the structured response. An out-of-set label coerces to Other;
// a missing confidence gets the conservative default.
func (c *Classifier) Classify(ctx context.Context, description string) (model.ClassificationResult, error) {
	if err := c.rateLimiter.wait(ctx); err != nil {
		return model.ClassificationResult{}, fmt.Errorf("rate limit error: %w", err)
	}

	prompt := buildPrompt(description)

	var parsed parsedClassification
	err := common.WithRetry(ctx, func() error {
		response, err := c.client.Complete(ctx, systemPrompt, prompt)
		if err != nil {
			c.logger.Warn("LLM classification attempt failed",
				"error", err,
				"description", description)
			return &common.RetryableError{Err: err, Retryable: true}
		}

		parsed, err = parseClassification(response)
		if err != nil {
			c.logger.Warn("unparseable LLM response",
				"error", err,
				"description", description)
			return &common.RetryableError{Err: err, Retryable: true}
		}
		return nil
	}, c.retryOpts)
	if err != nil {
		return model.ClassificationResult{}, fmt.Errorf("LLM classification failed: %w", err)
	}

	category, inSet := model.ParseCategory(parsed.Category)
	if !inSet {
		c.logger.Warn("LLM returned out-of-set label, coercing to Other",
			"label", parsed.Category,
			"description", description)
	}

	confidence := parsed.Confidence
	if !parsed.HasConfidence {
		confidence = defaultConfidence
	}

	reasoning := parsed.Reasoning
	if reasoning == "" {
		reasoning = fmt.Sprintf("LLM classified as %s", category)
	}

	c.logger.Info("description classified by LLM",
		"description", description,
		"category", category,
		"confidence", confidence)

	return model.ClassificationResult{
		Category:   category,
		Confidence: confidence,
		Source:     model.SourceLLM,
		Reasoning:  reasoning,
		RawDetails: map[string]any{
			"label": parsed.Category,
		},
	}, nil
}

// Close stops background goroutines.
func (c *Classifier) Close() error {
	if c.rateLimiter != nil {
		c.rateLimiter.Close()
	}
	return nil
}

const systemPrompt = "You are a purchase categorizer. Respond only in the exact format requested, using only the listed categories."

// buildPrompt creates the closed-set classification prompt.
func buildPrompt(description string) string {
	names := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		names = append(names, string(c))
	}

	return fmt.Sprintf(`Classify this purchase description into exactly one of the listed spending categories.

Purchase description: %s

Categories (choose exactly one, verbatim):
%s

Respond in this exact format:
CATEGORY: <one category from the list>
CONFIDENCE: <0.0-1.0>
REASONING: <one short sentence>

Do not invent categories. If nothing fits, use Other.`,
		description,
		"- "+strings.Join(names, "\n- "))
}
