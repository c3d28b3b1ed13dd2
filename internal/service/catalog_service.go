package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/prospectry/salescrm/internal/model"
	"github.com/prospectry/salescrm/internal/pkg/timeutil"
	"github.com/prospectry/salescrm/internal/repo"
)

// CatalogService manages the sell-side entities: industries, companies,
// solutions and the industry<->solution links. Writing a solution re-embeds
// its vector rows so search stays in step with the text.
type CatalogService struct {
	industries *repo.IndustryRepo
	companies  *repo.CompanyRepo
	solutions  *repo.SolutionRepo
	vectors    *VectorService
}

func NewCatalogService(industries *repo.IndustryRepo, companies *repo.CompanyRepo,
	solutions *repo.SolutionRepo, vectors *VectorService) *CatalogService {
	return &CatalogService{
		industries: industries,
		companies:  companies,
		solutions:  solutions,
		vectors:    vectors,
	}
}

func (s *CatalogService) UpsertIndustry(ctx context.Context, item *model.Industry) (*model.Industry, error) {
	now := timeutil.NowUnix()
	if item.Ctime == 0 {
		item.Ctime = now
	}
	item.Mtime = now
	return s.industries.Upsert(ctx, item)
}

func (s *CatalogService) GetIndustry(ctx context.Context, id int64) (*model.Industry, error) {
	return s.industries.GetByID(ctx, id)
}

func (s *CatalogService) ListIndustries(ctx context.Context) ([]model.Industry, error) {
	return s.industries.List(ctx)
}

func (s *CatalogService) DeleteIndustry(ctx context.Context, id int64) error {
	return s.industries.Delete(ctx, id)
}

func (s *CatalogService) LinkSolution(ctx context.Context, industryID, solutionID int64) error {
	return s.industries.LinkSolution(ctx, industryID, solutionID, timeutil.NowUnix())
}

func (s *CatalogService) UnlinkSolution(ctx context.Context, industryID, solutionID int64) error {
	return s.industries.UnlinkSolution(ctx, industryID, solutionID)
}

func (s *CatalogService) ListIndustrySolutions(ctx context.Context, industryID int64) ([]model.Solution, error) {
	ids, err := s.industries.ListSolutionIDs(ctx, industryID)
	if err != nil {
		return nil, err
	}
	items := make([]model.Solution, 0, len(ids))
	for _, id := range ids {
		item, err := s.solutions.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

func (s *CatalogService) UpsertCompany(ctx context.Context, item *model.Company) (*model.Company, error) {
	now := timeutil.NowUnix()
	if item.Ctime == 0 {
		item.Ctime = now
	}
	item.Mtime = now
	return s.companies.Upsert(ctx, item)
}

func (s *CatalogService) GetCompany(ctx context.Context, id int64) (*model.Company, error) {
	return s.companies.GetByID(ctx, id)
}

func (s *CatalogService) GetCompanyByName(ctx context.Context, name string) (*model.Company, error) {
	return s.companies.GetByName(ctx, name)
}

func (s *CatalogService) ListCompanies(ctx context.Context) ([]model.Company, error) {
	return s.companies.List(ctx)
}

func (s *CatalogService) DeleteCompany(ctx context.Context, id int64) error {
	return s.companies.Delete(ctx, id)
}

// UpsertSolution writes the row and refreshes its vector rows. A failed
// refresh does not roll back the write; the sync job will retry parents that
// end up without vectors.
func (s *CatalogService) UpsertSolution(ctx context.Context, item *model.Solution) (*model.Solution, error) {
	now := timeutil.NowUnix()
	if item.Ctime == 0 {
		item.Ctime = now
	}
	item.Mtime = now
	saved, err := s.solutions.Upsert(ctx, item)
	if err != nil {
		return nil, err
	}
	if s.vectors != nil {
		if _, err := s.vectors.SyncSolutionVectors(ctx, saved); err != nil {
			logutil.GetLogger(ctx).Error("solution vector sync failed",
				zap.Int64("solution_id", saved.ID), zap.Error(err))
		}
	}
	return saved, nil
}

func (s *CatalogService) GetSolution(ctx context.Context, id int64) (*model.Solution, error) {
	return s.solutions.GetByID(ctx, id)
}

func (s *CatalogService) GetSolutionByName(ctx context.Context, name string) (*model.Solution, error) {
	return s.solutions.GetByName(ctx, name)
}

func (s *CatalogService) ListSolutions(ctx context.Context, category string) ([]model.Solution, error) {
	if category != "" {
		return s.solutions.ListByCategory(ctx, category)
	}
	return s.solutions.List(ctx)
}

// DeleteSolution removes the row; vector rows go with it via the FK cascade.
func (s *CatalogService) DeleteSolution(ctx context.Context, id int64) error {
	return s.solutions.Delete(ctx, id)
}
