package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prospectry/salescrm/internal/model"
	appErr "github.com/prospectry/salescrm/internal/pkg/errors"
)

type fakeEmbedder struct {
	vector []float32
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	return f.vector, nil
}

type fakeSolutionSource struct {
	items []model.SolutionVector
}

func (f *fakeSolutionSource) ListCandidates(ctx context.Context, category string, keywords []string) ([]model.SolutionVector, error) {
	return f.items, nil
}

type fakeInteractionSource struct {
	items []model.InteractionVector
}

func (f *fakeInteractionSource) ListCandidates(ctx context.Context, prospectID int64, interactionType string, keywords []string) ([]model.InteractionVector, error) {
	return f.items, nil
}

func newTestSearch(solutions []model.SolutionVector, interactions []model.InteractionVector, query []float32) *SearchService {
	return NewSearchService(
		&fakeEmbedder{vector: query},
		&fakeSolutionSource{items: solutions},
		&fakeInteractionSource{items: interactions},
		SearchServiceConfig{DefaultLimit: 5, DefaultThreshold: 0.5},
	)
}

func TestCosineDistance(t *testing.T) {
	require.InDelta(t, 0.0, cosineDistance([]float32{1, 0}, []float32{1, 0}), 1e-9)
	require.InDelta(t, 1.0, cosineDistance([]float32{1, 0}, []float32{0, 1}), 1e-9)
	require.InDelta(t, 2.0, cosineDistance([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	// zero magnitude pins to the maximum rather than dividing by zero
	require.Equal(t, 2.0, cosineDistance([]float32{0, 0}, []float32{1, 0}))
	require.Equal(t, 2.0, cosineDistance([]float32{1, 0}, []float32{0, 0}))
}

func TestSearchOrderedAscending(t *testing.T) {
	svc := newTestSearch([]model.SolutionVector{
		{ID: 1, SolutionID: 10, Embedding: []float32{0, 1}},     // distance 1
		{ID: 2, SolutionID: 20, Embedding: []float32{1, 0}},     // distance 0
		{ID: 3, SolutionID: 30, Embedding: []float32{1, 1}},     // ~0.29
		{ID: 4, SolutionID: 40, Embedding: []float32{-0.1, -1}}, // >1
	}, nil, []float32{1, 0})

	results, err := svc.SearchText(context.Background(), "q", model.CollectionSolutions, 10, 2.0)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i := 1; i < len(results); i++ {
		require.GreaterOrEqual(t, results[i].Distance, results[i-1].Distance)
	}
	require.Equal(t, int64(2), results[0].VectorID)
	require.Equal(t, int64(20), results[0].ParentID)
}

func TestSearchStableTies(t *testing.T) {
	svc := newTestSearch([]model.SolutionVector{
		{ID: 1, SolutionID: 10, Embedding: []float32{1, 0}},
		{ID: 2, SolutionID: 20, Embedding: []float32{2, 0}}, // same direction, same distance
		{ID: 3, SolutionID: 30, Embedding: []float32{3, 0}},
	}, nil, []float32{1, 0})

	results, err := svc.SearchText(context.Background(), "q", model.CollectionSolutions, 10, 1.0)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, int64(1), results[0].VectorID)
	require.Equal(t, int64(2), results[1].VectorID)
	require.Equal(t, int64(3), results[2].VectorID)
}

func TestSearchTopKAndThreshold(t *testing.T) {
	vectors := []model.SolutionVector{
		{ID: 1, SolutionID: 10, Embedding: []float32{1, 0}},
		{ID: 2, SolutionID: 20, Embedding: []float32{1, 0.5}},
		{ID: 3, SolutionID: 30, Embedding: []float32{0, 1}},
		{ID: 4, SolutionID: 40, Embedding: []float32{-1, 0}},
	}
	svc := newTestSearch(vectors, nil, []float32{1, 0})

	results, err := svc.SearchText(context.Background(), "q", model.CollectionSolutions, 2, 2.5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// threshold is strict: distance exactly 1.0 is dropped at threshold 1.0
	results, err = svc.SearchText(context.Background(), "q", model.CollectionSolutions, 10, 1.0)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// threshold monotonicity
	loose, err := svc.SearchText(context.Background(), "q", model.CollectionSolutions, 10, 2.5)
	require.NoError(t, err)
	tight, err := svc.SearchText(context.Background(), "q", model.CollectionSolutions, 10, 0.1)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(loose), len(tight))
}

func TestSearchDegenerateInputs(t *testing.T) {
	svc := newTestSearch([]model.SolutionVector{
		{ID: 1, SolutionID: 10, Embedding: []float32{1, 0}},
	}, nil, []float32{1, 0})

	results, err := svc.SearchText(context.Background(), "q", model.CollectionSolutions, 0, 1.0)
	require.NoError(t, err)
	require.Empty(t, results)

	results, err = svc.SearchText(context.Background(), "q", model.CollectionSolutions, -3, 1.0)
	require.NoError(t, err)
	require.Empty(t, results)

	results, err = svc.SearchText(context.Background(), "q", model.CollectionSolutions, 5, 0)
	require.NoError(t, err)
	require.Empty(t, results)

	results, err = svc.SearchText(context.Background(), "q", model.CollectionSolutions, 5, -0.5)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestSearchUnknownCollection(t *testing.T) {
	svc := newTestSearch(nil, nil, []float32{1, 0})
	_, err := svc.SearchText(context.Background(), "q", model.Collection("bogus"), 5, 1.0)
	require.ErrorIs(t, err, appErr.ErrInvalid)
}

func TestSearchEmptyCollection(t *testing.T) {
	svc := newTestSearch(nil, nil, []float32{1, 0})
	results, err := svc.SearchText(context.Background(), "q", model.CollectionSolutions, 5, 2.0)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestSearchInteractionsRanksByDistance(t *testing.T) {
	svc := newTestSearch(nil, []model.InteractionVector{
		{ID: 1, InteractionID: 100, Embedding: []float32{0, 1}},
		{ID: 2, InteractionID: 200, Embedding: []float32{1, 0.1}},
	}, []float32{1, 0})

	results, err := svc.SearchInteractions(context.Background(), "q", 7, "email", nil, 5, 1.5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, int64(200), results[0].ParentID)
}

func TestSearchZeroVectorNeverMatches(t *testing.T) {
	svc := newTestSearch([]model.SolutionVector{
		{ID: 1, SolutionID: 10, Embedding: []float32{0, 0}},
	}, nil, []float32{1, 0})

	results, err := svc.SearchText(context.Background(), "q", model.CollectionSolutions, 5, 1.99)
	require.NoError(t, err)
	require.Empty(t, results)
}
