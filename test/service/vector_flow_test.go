package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prospectry/salescrm/internal/model"
	"github.com/prospectry/salescrm/internal/pkg/timeutil"
	"github.com/prospectry/salescrm/internal/repo"
	"github.com/prospectry/salescrm/internal/service"
	"github.com/prospectry/salescrm/test/testutil"
)

// stubEmbedder hashes text into a deterministic 384-dim direction so that
// identical text embeds identically and different text usually differs.
type stubEmbedder struct{}

func (stubEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	out := make([]float32, 384)
	var h uint32 = 2166136261
	for i := 0; i < len(text); i++ {
		h ^= uint32(text[i])
		h *= 16777619
	}
	for i := range out {
		h ^= uint32(i)
		h *= 16777619
		out[i] = float32(h%1000)/1000 + 0.001
	}
	return out, nil
}

func (stubEmbedder) EmbeddingModelName() string { return "stub" }

func (stubEmbedder) EmbeddingDimension() int { return 384 }

var _ service.EmbedClient = stubEmbedder{}

func TestSolutionVectorSyncAndSearch(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	now := timeutil.NowUnix()

	solutions := repo.NewSolutionRepo(db)
	solutionVecs := repo.NewSolutionVectorRepo(db)
	interactionVecs := repo.NewInteractionVectorRepo(db)

	vectorService := service.NewVectorService(stubEmbedder{}, solutionVecs, interactionVecs,
		service.VectorServiceConfig{ChunkSize: 250, ChunkOverlap: 50})
	searchService := service.NewSearchService(vectorService, solutionVecs, interactionVecs,
		service.SearchServiceConfig{DefaultLimit: 5, DefaultThreshold: 0.5})

	category := fmt.Sprintf("flow-%d", timeutil.NowMilli())
	solution, err := solutions.Upsert(ctx, &model.Solution{
		Name:        fmt.Sprintf("flow-solution-%d", timeutil.NowMilli()),
		Category:    category,
		Description: "managed kubernetes with autoscaling",
		Ctime:       now, Mtime: now,
	})
	require.NoError(t, err)

	written, err := vectorService.SyncSolutionVectors(ctx, solution)
	require.NoError(t, err)
	require.Equal(t, 1, written)

	// the exact source text embeds to the same vector, so distance is zero
	query := solution.Name + "\n" + solution.Description
	results, err := searchService.SearchSolutions(ctx, query, category, nil, 5, 0.5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, solution.ID, results[0].ParentID)
	require.InDelta(t, 0.0, results[0].Distance, 1e-6)

	// re-sync replaces rows instead of accumulating them
	written, err = vectorService.SyncSolutionVectors(ctx, solution)
	require.NoError(t, err)
	require.Equal(t, 1, written)
	candidates, err := solutionVecs.ListCandidates(ctx, category, nil)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	_, err = solutionVecs.DeleteByParent(ctx, solution.ID)
	require.NoError(t, err)
	require.NoError(t, solutions.Delete(ctx, solution.ID))
}
