package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/prospectry/salescrm/internal/repo"
	"github.com/prospectry/salescrm/internal/service"
)

// VectorSyncJob embeds solutions and interactions that have no vector rows
// yet, a bounded batch at a time. It backstops the inline sync on writes, so
// a transient provider outage self-heals on the next tick.
type VectorSyncJob struct {
	solutions    *repo.SolutionRepo
	interactions *repo.InteractionRepo
	vectors      *service.VectorService
	batch        int
}

func NewVectorSyncJob(solutions *repo.SolutionRepo, interactions *repo.InteractionRepo,
	vectors *service.VectorService, batch int) *VectorSyncJob {
	if batch <= 0 {
		batch = 20
	}
	return &VectorSyncJob{
		solutions:    solutions,
		interactions: interactions,
		vectors:      vectors,
		batch:        batch,
	}
}

func (j *VectorSyncJob) Name() string {
	return "vector_sync"
}

func (j *VectorSyncJob) Run(ctx context.Context) error {
	if j.vectors == nil {
		return nil
	}
	logger := logutil.GetLogger(ctx)

	stale, err := j.solutions.ListMissingVectors(ctx, j.batch)
	if err != nil {
		return err
	}
	for i := range stale {
		if _, err := j.vectors.SyncSolutionVectors(ctx, &stale[i]); err != nil {
			logger.Error("solution vector sync failed",
				zap.Int64("solution_id", stale[i].ID), zap.Error(err))
		}
	}

	pending, err := j.interactions.ListMissingVectors(ctx, j.batch)
	if err != nil {
		return err
	}
	for i := range pending {
		if _, err := j.vectors.SyncInteractionVectors(ctx, &pending[i]); err != nil {
			logger.Error("interaction vector sync failed",
				zap.Int64("interaction_id", pending[i].ID), zap.Error(err))
		}
	}
	return nil
}
