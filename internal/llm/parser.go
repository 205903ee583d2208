package llm

import (
	"fmt"
	"strconv"
	"strings"
)

// parsedClassification is the structured content of an LLM response before
// closed-set validation.
type parsedClassification struct {
	Category   string
	Reasoning  string
	Confidence float64
	// HasConfidence distinguishes "the model said 0" from "the model said
	// nothing"; the latter gets the conservative default.
	HasConfidence bool
}

// parseClassification extracts CATEGORY / CONFIDENCE / REASONING lines
// from a structured text response. Models wander from the requested
// format in predictable ways (markdown fences, percent signs), so the
// parser recovers where it safely can.
func parseClassification(content string) (parsedClassification, error) {
	content = cleanMarkdownWrapper(content)

	var parsed parsedClassification
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "CATEGORY:"):
			parsed.Category = strings.TrimSpace(strings.TrimPrefix(line, "CATEGORY:"))
		case strings.HasPrefix(line, "CONFIDENCE:"):
			raw := strings.TrimSpace(strings.TrimPrefix(line, "CONFIDENCE:"))
			if score, ok := parseScore(raw); ok {
				parsed.Confidence = score
				parsed.HasConfidence = true
			}
		case strings.HasPrefix(line, "REASONING:"):
			parsed.Reasoning = strings.TrimSpace(strings.TrimPrefix(line, "REASONING:"))
		}
	}

	if parsed.Category == "" {
		return parsedClassification{}, fmt.Errorf("no category found in response")
	}

	return parsed, nil
}

// parseScore converts a score string to a float in [0,1], tolerating
// percentages and stray characters.
func parseScore(raw string) (float64, bool) {
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		if strings.HasSuffix(raw, "%") {
			percent, perr := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(raw, "%")), 64)
			if perr != nil {
				return 0, false
			}
			score = percent / 100.0
		} else {
			clean := strings.Map(func(r rune) rune {
				if (r >= '0' && r <= '9') || r == '.' {
					return r
				}
				return -1
			}, raw)
			score, err = strconv.ParseFloat(clean, 64)
			if err != nil {
				return 0, false
			}
		}
	}

	if score < 0 {
		score = 0
	} else if score > 1 {
		score = 1
	}
	return score, true
}

// cleanMarkdownWrapper strips a surrounding code fence if present.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return content
	}

	// Drop the opening fence (possibly with a language tag) and a
	// trailing fence if one exists.
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
