// Package vector abstracts the similarity-search index used by the
// semantic classification tier.
package vector

import (
	"context"
	"errors"
)

// Index errors. The semantic tier treats any index failure as "no match",
// but distinguished kinds let callers retry collection setup separately.
var (
	// ErrUnauthorized indicates the index rejected the caller's credentials.
	ErrUnauthorized = errors.New("vector index unauthorized")
	// ErrCollectionNotFound indicates the labeled collection has not been
	// seeded yet; the fix is to run index seeding, not to retry the query.
	ErrCollectionNotFound = errors.New("vector collection not found")
	// ErrUnavailable indicates the index could not be reached.
	ErrUnavailable = errors.New("vector index unavailable")
)

// Match is a single similarity-search hit: a labeled training example and
// its cosine-similarity score against the query vector.
type Match struct {
	Label string
	Score float64
}

// Point is a labeled training example for upsert.
type Point struct {
	Label       string
	Description string
	ID          uint64
	Vector      []float32
}

// Index is the contract a similarity-search provider must satisfy.
// Upsert and EnsureCollection are used only during offline training-set
// population, outside the runtime classification path.
type Index interface {
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)
	Upsert(ctx context.Context, points []Point) error
	EnsureCollection(ctx context.Context) error
}
