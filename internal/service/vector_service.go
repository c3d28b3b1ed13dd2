package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/prospectry/salescrm/internal/ai"
	"github.com/prospectry/salescrm/internal/model"
	appErr "github.com/prospectry/salescrm/internal/pkg/errors"
	"github.com/prospectry/salescrm/internal/repo"
)

const (
	taskTypeDocument = "RETRIEVAL_DOCUMENT"
	taskTypeQuery    = "RETRIEVAL_QUERY"
)

// EmbedClient is the slice of ai.Manager the vector layer needs.
type EmbedClient interface {
	Embed(ctx context.Context, text string, taskType string) ([]float32, error)
	EmbeddingModelName() string
	EmbeddingDimension() int
}

type VectorServiceConfig struct {
	ChunkSize    int
	ChunkOverlap int
	CacheSize    int
	CacheTTLSec  int
}

// VectorService owns the chunk -> embed -> store pipeline for both vector
// collections. Embeddings are cached per chunk so re-syncing unchanged text
// does not hit the provider again.
type VectorService struct {
	embed        EmbedClient
	solutions    *repo.SolutionVectorRepo
	interactions *repo.InteractionVectorRepo
	chunker      *ai.Chunker
	cache        *lru.LRU[string, []float32]
}

func NewVectorService(embed EmbedClient, solutions *repo.SolutionVectorRepo,
	interactions *repo.InteractionVectorRepo, cfg VectorServiceConfig) *VectorService {
	size := cfg.CacheSize
	if size <= 0 {
		size = 1024
	}
	ttl := time.Duration(cfg.CacheTTLSec) * time.Second
	return &VectorService{
		embed:        embed,
		solutions:    solutions,
		interactions: interactions,
		chunker:      ai.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap),
		cache:        lru.NewLRU[string, []float32](size, nil, ttl),
	}
}

func (s *VectorService) cacheKey(taskType string, text string) string {
	sum := sha256.Sum256([]byte(s.embed.EmbeddingModelName() + ":" + taskType + ":" + text))
	return hex.EncodeToString(sum[:])
}

func (s *VectorService) embedOne(ctx context.Context, text string, taskType string) ([]float32, error) {
	key := s.cacheKey(taskType, text)
	if emb, ok := s.cache.Get(key); ok {
		return emb, nil
	}
	emb, err := s.embed.Embed(ctx, text, taskType)
	if err != nil {
		return nil, err
	}
	if dim := s.embed.EmbeddingDimension(); dim > 0 && len(emb) != dim {
		return nil, fmt.Errorf("%w: embedding has %d dims, want %d", appErr.ErrInvalid, len(emb), dim)
	}
	s.cache.Add(key, emb)
	return emb, nil
}

// EmbedQuery embeds a single search query without chunking.
func (s *VectorService) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	return s.embedOne(ctx, query, taskTypeQuery)
}

// ChunkAndEmbed splits text into overlapping word chunks and embeds each one.
// The returned slices are index-aligned and preserve chunk order.
func (s *VectorService) ChunkAndEmbed(ctx context.Context, text string) ([]string, [][]float32, error) {
	chunks := s.chunker.Chunk(text)
	embeddings := make([][]float32, 0, len(chunks))
	for _, chunk := range chunks {
		emb, err := s.embedOne(ctx, chunk, taskTypeDocument)
		if err != nil {
			return nil, nil, err
		}
		embeddings = append(embeddings, emb)
	}
	return chunks, embeddings, nil
}

func (s *VectorService) checkDim(embedding []float32) error {
	dim := s.embed.EmbeddingDimension()
	if dim > 0 && len(embedding) != dim {
		return fmt.Errorf("%w: embedding has %d dims, want %d", appErr.ErrInvalid, len(embedding), dim)
	}
	return nil
}

func (s *VectorService) CreateSolutionVector(ctx context.Context, solutionID int64, embedding []float32) (*model.SolutionVector, error) {
	if err := s.checkDim(embedding); err != nil {
		return nil, err
	}
	return s.solutions.Create(ctx, solutionID, embedding)
}

func (s *VectorService) GetSolutionVector(ctx context.Context, id int64) (*model.SolutionVector, error) {
	return s.solutions.GetByID(ctx, id)
}

func (s *VectorService) UpdateSolutionVector(ctx context.Context, id int64, embedding []float32) (*model.SolutionVector, error) {
	if err := s.checkDim(embedding); err != nil {
		return nil, err
	}
	return s.solutions.UpdateEmbedding(ctx, id, embedding)
}

func (s *VectorService) DeleteSolutionVector(ctx context.Context, id int64) (bool, error) {
	return s.solutions.Delete(ctx, id)
}

func (s *VectorService) CreateInteractionVector(ctx context.Context, interactionID int64, embedding []float32) (*model.InteractionVector, error) {
	if err := s.checkDim(embedding); err != nil {
		return nil, err
	}
	return s.interactions.Create(ctx, interactionID, embedding)
}

func (s *VectorService) GetInteractionVector(ctx context.Context, id int64) (*model.InteractionVector, error) {
	return s.interactions.GetByID(ctx, id)
}

func (s *VectorService) UpdateInteractionVector(ctx context.Context, id int64, embedding []float32) (*model.InteractionVector, error) {
	if err := s.checkDim(embedding); err != nil {
		return nil, err
	}
	return s.interactions.UpdateEmbedding(ctx, id, embedding)
}

func (s *VectorService) DeleteInteractionVector(ctx context.Context, id int64) (bool, error) {
	return s.interactions.Delete(ctx, id)
}

// SyncSolutionVectors rebuilds every vector row for one solution from its
// current name and description. Returns the number of chunk rows written.
func (s *VectorService) SyncSolutionVectors(ctx context.Context, item *model.Solution) (int, error) {
	chunks, embeddings, err := s.ChunkAndEmbed(ctx, item.Name+"\n"+item.Description)
	if err != nil {
		return 0, err
	}
	removed, err := s.solutions.DeleteByParent(ctx, item.ID)
	if err != nil {
		return 0, err
	}
	for i := range chunks {
		if _, err := s.solutions.Create(ctx, item.ID, embeddings[i]); err != nil {
			return 0, err
		}
	}
	logutil.GetLogger(ctx).Debug("synced solution vectors",
		zap.Int64("solution_id", item.ID),
		zap.Int64("removed", removed),
		zap.Int("written", len(chunks)))
	return len(chunks), nil
}

// SyncInteractionVectors does the same for one interaction, from its subject
// and content.
func (s *VectorService) SyncInteractionVectors(ctx context.Context, item *model.Interaction) (int, error) {
	chunks, embeddings, err := s.ChunkAndEmbed(ctx, item.Subject+"\n"+item.Content)
	if err != nil {
		return 0, err
	}
	removed, err := s.interactions.DeleteByParent(ctx, item.ID)
	if err != nil {
		return 0, err
	}
	for i := range chunks {
		if _, err := s.interactions.Create(ctx, item.ID, embeddings[i]); err != nil {
			return 0, err
		}
	}
	logutil.GetLogger(ctx).Debug("synced interaction vectors",
		zap.Int64("interaction_id", item.ID),
		zap.Int64("removed", removed),
		zap.Int("written", len(chunks)))
	return len(chunks), nil
}
