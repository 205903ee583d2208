package model

// Source indicates which tier produced a classification.
type Source string

// Classification sources.
const (
	SourceKeyword  Source = "keyword"
	SourceSemantic Source = "semantic"
	SourceLLM      Source = "llm"
	SourceCache    Source = "cache"
)

// ClassificationResult is the outcome of categorizing a purchase description.
type ClassificationResult struct {
	RawDetails map[string]any
	Category   Category
	Source     Source
	Reasoning  string
	Confidence float64
}

// ZeroSignal reports whether the result carries no usable signal: the tier
// could not classify and returned Other with confidence 0. A zero-signal
// result is never accepted; it always falls through to the next tier.
func (r ClassificationResult) ZeroSignal() bool {
	return r.Confidence == 0 && r.Category == CategoryOther
}
