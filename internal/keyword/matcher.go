// Package keyword implements the cheapest classification tier: an ordered
// table of merchant and category patterns matched against normalized
// purchase descriptions. It is a pure function over its pattern table and
// never calls out to a provider.
package keyword

import (
	"context"
	"fmt"
	"regexp"

	"github.com/cardwise/cardwise/internal/model"
)

// Matcher evaluates descriptions against an ordered pattern table.
type Matcher struct {
	patterns []Pattern
	compiled []*regexp.Regexp
}

// NewMatcher creates a matcher over the built-in pattern table.
func NewMatcher() *Matcher {
	return NewMatcherWithPatterns(defaultPatterns())
}

// NewMatcherWithPatterns creates a matcher over a caller-supplied table.
// Patterns that fail to compile are dropped; the table is static data, so
// a bad entry is a programmer error caught by the package tests.
func NewMatcherWithPatterns(patterns []Pattern) *Matcher {
	m := &Matcher{
		patterns: patterns,
		compiled: make([]*regexp.Regexp, len(patterns)),
	}
	for i, p := range patterns {
		if re, err := regexp.Compile(p.Regex); err == nil {
			m.compiled[i] = re
		}
	}
	return m
}

// Name identifies this tier in results and logs.
func (m *Matcher) Name() string {
	return string(model.SourceKeyword)
}

// Classify matches a normalized description against the pattern table.
// The highest-weight match wins; equal weights break by declaration order,
// which makes the result deterministic rather than first-found-during-
// iteration. No match yields the zero-signal result (Other, confidence 0).
func (m *Matcher) Classify(_ context.Context, description string) (model.ClassificationResult, error) {
	normalized := model.NormalizeDescription(description)

	best := -1
	for i, p := range m.patterns {
		re := m.compiled[i]
		if re == nil || !re.MatchString(normalized) {
			continue
		}
		// Strictly greater keeps the earlier-declared pattern on ties.
		if best == -1 || p.Weight > m.patterns[best].Weight {
			best = i
		}
	}

	if best == -1 {
		return model.ClassificationResult{
			Category:   model.CategoryOther,
			Confidence: 0,
			Source:     model.SourceKeyword,
			Reasoning:  "no merchant or keyword pattern matched",
		}, nil
	}

	matched := m.patterns[best]
	return model.ClassificationResult{
		Category:   matched.Category,
		Confidence: matched.Confidence,
		Source:     model.SourceKeyword,
		Reasoning:  fmt.Sprintf("matched pattern %q", matched.Name),
		RawDetails: map[string]any{
			"pattern": matched.Name,
			"weight":  matched.Weight,
		},
	}, nil
}
