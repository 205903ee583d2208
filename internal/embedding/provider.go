// Package embedding converts text to vectors for similarity search.
package embedding

import "context"

// Provider turns a piece of text into an embedding vector.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
