package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/prospectry/salescrm/internal/pkg/errors"
)

type countingEmbedder struct {
	dim   int
	calls atomic.Int64
}

func (f *countingEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	f.calls.Add(1)
	out := make([]float32, f.dim)
	for i := range out {
		out[i] = float32(len(text)%7) + float32(i)
	}
	return out, nil
}

func (f *countingEmbedder) EmbeddingModelName() string { return "test-embed" }

func (f *countingEmbedder) EmbeddingDimension() int { return f.dim }

var _ EmbedClient = (*countingEmbedder)(nil)

func newTestVectors(embed EmbedClient) *VectorService {
	return NewVectorService(embed, nil, nil, VectorServiceConfig{
		ChunkSize:    10,
		ChunkOverlap: 2,
		CacheSize:    64,
		CacheTTLSec:  60,
	})
}

func TestChunkAndEmbedAlignment(t *testing.T) {
	embed := &countingEmbedder{dim: 4}
	svc := newTestVectors(embed)

	parts := make([]string, 25)
	for i := range parts {
		parts[i] = fmt.Sprintf("tok%d", i)
	}
	chunks, embeddings, err := svc.ChunkAndEmbed(context.Background(), strings.Join(parts, " "))
	require.NoError(t, err)
	require.Equal(t, len(chunks), len(embeddings))
	require.Greater(t, len(chunks), 1)
	for _, emb := range embeddings {
		require.Len(t, emb, 4)
	}
}

func TestChunkAndEmbedEmptyText(t *testing.T) {
	svc := newTestVectors(&countingEmbedder{dim: 4})
	chunks, embeddings, err := svc.ChunkAndEmbed(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, []string{""}, chunks)
	require.Len(t, embeddings, 1)
}

func TestEmbedCacheAvoidsRepeatCalls(t *testing.T) {
	embed := &countingEmbedder{dim: 4}
	svc := newTestVectors(embed)

	first, err := svc.EmbedQuery(context.Background(), "same query")
	require.NoError(t, err)
	require.EqualValues(t, 1, embed.calls.Load())

	second, err := svc.EmbedQuery(context.Background(), "same query")
	require.NoError(t, err)
	require.EqualValues(t, 1, embed.calls.Load())
	require.Equal(t, first, second)

	// document task type embeds separately from query task type
	_, _, err = svc.ChunkAndEmbed(context.Background(), "same query")
	require.NoError(t, err)
	require.EqualValues(t, 2, embed.calls.Load())
}

func TestDimensionValidation(t *testing.T) {
	svc := newTestVectors(&countingEmbedder{dim: 4})

	_, err := svc.CreateSolutionVector(context.Background(), 1, []float32{1, 2})
	require.ErrorIs(t, err, appErr.ErrInvalid)

	_, err = svc.UpdateInteractionVector(context.Background(), 1, make([]float32, 5))
	require.ErrorIs(t, err, appErr.ErrInvalid)
}
