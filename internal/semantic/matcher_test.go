package semantic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardwise/cardwise/internal/model"
	"github.com/cardwise/cardwise/internal/vector"
)

// fakeProvider returns a fixed vector or error.
type fakeProvider struct {
	vec   []float32
	err   error
	calls int
}

func (f *fakeProvider) Embed(_ context.Context, _ string) ([]float32, error) {
	f.calls++
	return f.vec, f.err
}

// fakeIndex serves scripted matches and records upserts.
type fakeIndex struct {
	matches  []vector.Match
	queryErr error
	upserted []vector.Point
	ensured  bool
}

func (f *fakeIndex) Query(_ context.Context, _ []float32, _ int) ([]vector.Match, error) {
	return f.matches, f.queryErr
}

func (f *fakeIndex) Upsert(_ context.Context, points []vector.Point) error {
	f.upserted = append(f.upserted, points...)
	return nil
}

func (f *fakeIndex) EnsureCollection(_ context.Context) error {
	f.ensured = true
	return nil
}

func TestMatcherClassify(t *testing.T) {
	provider := &fakeProvider{vec: []float32{0.1, 0.2}}
	index := &fakeIndex{matches: []vector.Match{{Label: "Gas", Score: 0.91}}}
	matcher := NewMatcher(provider, index, nil)

	result, err := matcher.Classify(context.Background(), "refueling my car for a road trip")
	require.NoError(t, err)

	assert.Equal(t, model.CategoryGas, result.Category)
	assert.InDelta(t, 0.91, result.Confidence, 1e-9)
	assert.Equal(t, model.SourceSemantic, result.Source)
}

func TestMatcherEmptyIndexIsZeroSignal(t *testing.T) {
	matcher := NewMatcher(&fakeProvider{vec: []float32{0.1}}, &fakeIndex{}, nil)

	result, err := matcher.Classify(context.Background(), "anything")
	require.NoError(t, err)

	assert.True(t, result.ZeroSignal(), "an empty index means no signal, not an error")
}

func TestMatcherProviderErrorPropagates(t *testing.T) {
	matcher := NewMatcher(&fakeProvider{err: errors.New("embeddings down")}, &fakeIndex{}, nil)

	_, err := matcher.Classify(context.Background(), "anything")
	assert.Error(t, err)
}

func TestMatcherIndexErrorPropagates(t *testing.T) {
	index := &fakeIndex{queryErr: vector.ErrUnavailable}
	matcher := NewMatcher(&fakeProvider{vec: []float32{0.1}}, index, nil)

	_, err := matcher.Classify(context.Background(), "anything")
	assert.ErrorIs(t, err, vector.ErrUnavailable)
}

func TestMatcherUnknownLabelCoercesToOther(t *testing.T) {
	index := &fakeIndex{matches: []vector.Match{{Label: "Gifts", Score: 0.88}}}
	matcher := NewMatcher(&fakeProvider{vec: []float32{0.1}}, index, nil)

	result, err := matcher.Classify(context.Background(), "birthday present")
	require.NoError(t, err)

	assert.Equal(t, model.CategoryOther, result.Category)
	assert.Equal(t, "Gifts", result.RawDetails["label"])
}

func TestMatcherClampsScore(t *testing.T) {
	index := &fakeIndex{matches: []vector.Match{{Label: "Dining", Score: 1.3}}}
	matcher := NewMatcher(&fakeProvider{vec: []float32{0.1}}, index, nil)

	result, err := matcher.Classify(context.Background(), "anything")
	require.NoError(t, err)

	assert.Equal(t, 1.0, result.Confidence)
}

func TestTrainerSeed(t *testing.T) {
	provider := &fakeProvider{vec: []float32{0.5}}
	index := &fakeIndex{}
	trainer := NewTrainer(provider, index, nil)

	var progress []int
	trainer.Progress = func(done, total int) {
		progress = append(progress, done)
		assert.Equal(t, len(TrainingExamples()), total)
	}

	err := trainer.Seed(context.Background(), TrainingExamples())
	require.NoError(t, err)

	assert.True(t, index.ensured)
	assert.Len(t, index.upserted, len(TrainingExamples()))
	assert.Equal(t, len(TrainingExamples()), provider.calls)
	assert.Equal(t, len(TrainingExamples()), len(progress))

	// Every indexed label must come from the closed category set.
	for _, point := range index.upserted {
		_, ok := model.ParseCategory(point.Label)
		assert.True(t, ok, "label %q is outside the closed set", point.Label)
	}
}

func TestTrainerSeedStopsOnEmbedError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("quota exceeded")}
	index := &fakeIndex{}
	trainer := NewTrainer(provider, index, nil)

	err := trainer.Seed(context.Background(), TrainingExamples()[:3])
	require.Error(t, err)
	assert.Empty(t, index.upserted)
}
