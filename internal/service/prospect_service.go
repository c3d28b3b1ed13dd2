package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/prospectry/salescrm/internal/model"
	"github.com/prospectry/salescrm/internal/pkg/timeutil"
	"github.com/prospectry/salescrm/internal/repo"
)

// ProspectService manages the buy-side entities: prospects, their
// interactions, events and research notes. Recording an interaction bumps the
// prospect's last-contacted time and embeds the interaction text.
type ProspectService struct {
	prospects    *repo.ProspectRepo
	interactions *repo.InteractionRepo
	events       *repo.EventRepo
	research     *repo.ResearchRepo
	vectors      *VectorService
}

func NewProspectService(prospects *repo.ProspectRepo, interactions *repo.InteractionRepo,
	events *repo.EventRepo, research *repo.ResearchRepo, vectors *VectorService) *ProspectService {
	return &ProspectService{
		prospects:    prospects,
		interactions: interactions,
		events:       events,
		research:     research,
		vectors:      vectors,
	}
}

func (s *ProspectService) UpsertProspect(ctx context.Context, item *model.Prospect) (*model.Prospect, error) {
	now := timeutil.NowUnix()
	if item.Ctime == 0 {
		item.Ctime = now
	}
	item.Mtime = now
	if item.Status == "" {
		item.Status = model.ProspectStatusNew
	}
	return s.prospects.Upsert(ctx, item)
}

func (s *ProspectService) GetProspect(ctx context.Context, id int64) (*model.Prospect, error) {
	return s.prospects.GetByID(ctx, id)
}

func (s *ProspectService) FindProspectsByName(ctx context.Context, name string, limit int) ([]model.Prospect, error) {
	return s.prospects.GetByName(ctx, name, limit)
}

func (s *ProspectService) ListProspects(ctx context.Context) ([]model.Prospect, error) {
	return s.prospects.List(ctx)
}

func (s *ProspectService) UpdateProspectStatus(ctx context.Context, id int64, status string) error {
	return s.prospects.UpdateStatus(ctx, id, status, timeutil.NowUnix())
}

func (s *ProspectService) DeleteProspect(ctx context.Context, id int64) error {
	return s.prospects.Delete(ctx, id)
}

// RecordInteraction stores the interaction, marks the prospect contacted and
// embeds the subject+content for search. Embedding failure is logged, not
// returned; the sync job picks up interactions left without vectors.
func (s *ProspectService) RecordInteraction(ctx context.Context, item *model.Interaction) (*model.Interaction, error) {
	now := timeutil.NowUnix()
	if item.Ctime == 0 {
		item.Ctime = now
	}
	item.Mtime = now
	if item.InteractionDate == 0 {
		item.InteractionDate = now
	}
	saved, err := s.interactions.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	if err := s.prospects.TouchLastContacted(ctx, saved.ProspectID, saved.InteractionDate); err != nil {
		logutil.GetLogger(ctx).Error("touch last contacted failed",
			zap.Int64("prospect_id", saved.ProspectID), zap.Error(err))
	}
	if s.vectors != nil {
		if _, err := s.vectors.SyncInteractionVectors(ctx, saved); err != nil {
			logutil.GetLogger(ctx).Error("interaction vector sync failed",
				zap.Int64("interaction_id", saved.ID), zap.Error(err))
		}
	}
	return saved, nil
}

func (s *ProspectService) GetInteraction(ctx context.Context, id int64) (*model.Interaction, error) {
	return s.interactions.GetByID(ctx, id)
}

func (s *ProspectService) ListInteractions(ctx context.Context, prospectID int64, limit int) ([]model.Interaction, error) {
	if prospectID != 0 {
		return s.interactions.ListByProspect(ctx, prospectID, limit)
	}
	return s.interactions.List(ctx)
}

func (s *ProspectService) DeleteInteraction(ctx context.Context, id int64) error {
	return s.interactions.Delete(ctx, id)
}

func (s *ProspectService) CreateEvent(ctx context.Context, item *model.Event) (*model.Event, error) {
	now := timeutil.NowUnix()
	if item.Ctime == 0 {
		item.Ctime = now
	}
	item.Mtime = now
	return s.events.Create(ctx, item)
}

func (s *ProspectService) GetEvent(ctx context.Context, id int64) (*model.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *ProspectService) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.events.List(ctx)
}

func (s *ProspectService) DeleteEvent(ctx context.Context, id int64) error {
	return s.events.Delete(ctx, id)
}

// AddResearch stores a research note and moves a still-new prospect to the
// researched status.
func (s *ProspectService) AddResearch(ctx context.Context, item *model.ProspectResearch) (*model.ProspectResearch, error) {
	now := timeutil.NowUnix()
	if item.Ctime == 0 {
		item.Ctime = now
	}
	item.Mtime = now
	saved, err := s.research.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	prospect, err := s.prospects.GetByID(ctx, saved.ProspectID)
	if err == nil && prospect.Status == model.ProspectStatusNew {
		if err := s.prospects.UpdateStatus(ctx, prospect.ID, model.ProspectStatusResearched, now); err != nil {
			logutil.GetLogger(ctx).Error("prospect status update failed",
				zap.Int64("prospect_id", prospect.ID), zap.Error(err))
		}
	}
	return saved, nil
}

func (s *ProspectService) GetResearch(ctx context.Context, id int64) (*model.ProspectResearch, error) {
	return s.research.GetByID(ctx, id)
}

func (s *ProspectService) ListResearch(ctx context.Context, prospectID int64) ([]model.ProspectResearch, error) {
	return s.research.ListByProspect(ctx, prospectID)
}

func (s *ProspectService) DeleteResearch(ctx context.Context, id int64) error {
	return s.research.Delete(ctx, id)
}
