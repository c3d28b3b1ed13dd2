package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/prospectry/salescrm/internal/model"
	appErr "github.com/prospectry/salescrm/internal/pkg/errors"
)

// maxCosineDistance is returned when either vector has zero magnitude, where
// cosine distance is undefined. It sits above every real distance so such
// candidates never pass a threshold.
const maxCosineDistance = 2.0

type queryEmbedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
}

type solutionVectorSource interface {
	ListCandidates(ctx context.Context, category string, keywords []string) ([]model.SolutionVector, error)
}

type interactionVectorSource interface {
	ListCandidates(ctx context.Context, prospectID int64, interactionType string, keywords []string) ([]model.InteractionVector, error)
}

type SearchServiceConfig struct {
	DefaultLimit     int
	DefaultThreshold float64
}

// SearchService ranks stored vectors against an embedded query by cosine
// distance. Candidate retrieval is delegated to the vector repos; ranking and
// thresholding happen here.
type SearchService struct {
	embed        queryEmbedder
	solutions    solutionVectorSource
	interactions interactionVectorSource
	cfg          SearchServiceConfig
}

func NewSearchService(embed queryEmbedder, solutions solutionVectorSource,
	interactions interactionVectorSource, cfg SearchServiceConfig) *SearchService {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 5
	}
	if cfg.DefaultThreshold <= 0 {
		cfg.DefaultThreshold = 0.5
	}
	return &SearchService{
		embed:        embed,
		solutions:    solutions,
		interactions: interactions,
		cfg:          cfg,
	}
}

func (s *SearchService) DefaultLimit() int {
	return s.cfg.DefaultLimit
}

func (s *SearchService) DefaultThreshold() float64 {
	return s.cfg.DefaultThreshold
}

func cosineDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return maxCosineDistance
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}

// rank sorts candidates by ascending distance (stable, so ties keep retrieval
// order), keeps the first k, then drops entries at or beyond the threshold.
func rank(results []model.SearchResult, k int, threshold float64) []model.SearchResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if len(results) > k {
		results = results[:k]
	}
	kept := results[:0]
	for _, item := range results {
		if item.Distance < threshold {
			kept = append(kept, item)
		}
	}
	return kept
}

// SearchText searches one raw collection with no relational filters.
func (s *SearchService) SearchText(ctx context.Context, query string, collection model.Collection, k int, threshold float64) ([]model.SearchResult, error) {
	switch collection {
	case model.CollectionSolutions:
		return s.SearchSolutions(ctx, query, "", nil, k, threshold)
	case model.CollectionInteractions:
		return s.SearchInteractions(ctx, query, 0, "", nil, k, threshold)
	default:
		return nil, fmt.Errorf("%w: unknown collection %q", appErr.ErrInvalid, collection)
	}
}

func (s *SearchService) SearchSolutions(ctx context.Context, query string, category string, keywords []string, k int, threshold float64) ([]model.SearchResult, error) {
	if k <= 0 || threshold <= 0 {
		return []model.SearchResult{}, nil
	}
	queryEmb, err := s.embed.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	candidates, err := s.solutions.ListCandidates(ctx, category, keywords)
	if err != nil {
		return nil, err
	}
	results := make([]model.SearchResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, model.SearchResult{
			VectorID: c.ID,
			ParentID: c.SolutionID,
			Distance: cosineDistance(c.Embedding, queryEmb),
		})
	}
	results = rank(results, k, threshold)
	logutil.GetLogger(ctx).Debug("solution search",
		zap.String("category", category),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(results)))
	return results, nil
}

func (s *SearchService) SearchInteractions(ctx context.Context, query string, prospectID int64, interactionType string, keywords []string, k int, threshold float64) ([]model.SearchResult, error) {
	if k <= 0 || threshold <= 0 {
		return []model.SearchResult{}, nil
	}
	queryEmb, err := s.embed.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	candidates, err := s.interactions.ListCandidates(ctx, prospectID, interactionType, keywords)
	if err != nil {
		return nil, err
	}
	results := make([]model.SearchResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, model.SearchResult{
			VectorID: c.ID,
			ParentID: c.InteractionID,
			Distance: cosineDistance(c.Embedding, queryEmb),
		})
	}
	results = rank(results, k, threshold)
	logutil.GetLogger(ctx).Debug("interaction search",
		zap.Int64("prospect_id", prospectID),
		zap.String("interaction_type", interactionType),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(results)))
	return results, nil
}
