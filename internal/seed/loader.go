package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/prospectry/salescrm/internal/filestore"
	"github.com/prospectry/salescrm/internal/model"
	"github.com/prospectry/salescrm/internal/service"
)

// Data is the seed document layout. References between sections go by name,
// not id, so the same file loads cleanly into an empty or half-seeded
// database.
type Data struct {
	Industries []industryRow `json:"industries"`
	Companies  []companyRow  `json:"companies"`
	Prospects  []prospectRow `json:"prospects"`
	Solutions  []solutionRow `json:"solutions"`
	Links      []linkRow     `json:"industry_solutions"`
}

type industryRow struct {
	Name string `json:"name"`
}

type companyRow struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Size     string `json:"size"`
	Website  string `json:"website"`
}

type prospectRow struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	LinkedinURL string `json:"linkedin_url"`
	Location    string `json:"location"`
	Company     string `json:"company"`
	Status      string `json:"status"`
}

type solutionRow struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	UseCases     []string `json:"use_cases"`
	Keywords     []string `json:"keywords"`
	PricingModel string   `json:"pricing_model"`
}

type linkRow struct {
	Industry string `json:"industry"`
	Solution string `json:"solution"`
}

type Summary struct {
	Industries int `json:"industries"`
	Companies  int `json:"companies"`
	Prospects  int `json:"prospects"`
	Solutions  int `json:"solutions"`
	Links      int `json:"links"`
}

type Loader struct {
	store     filestore.Store
	catalog   *service.CatalogService
	prospects *service.ProspectService
}

func NewLoader(store filestore.Store, catalog *service.CatalogService, prospects *service.ProspectService) *Loader {
	return &Loader{store: store, catalog: catalog, prospects: prospects}
}

// Load reads one seed document and upserts its rows in dependency order:
// industries, companies, solutions, prospects, links. Re-running with the
// same file is a no-op apart from refreshed mtimes and vectors.
func (l *Loader) Load(ctx context.Context, key string) (*Summary, error) {
	reader, err := l.store.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer reader.Close()

	var data Data
	if err := json.NewDecoder(reader).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	logger := logutil.GetLogger(ctx).With(zap.String("seed", key))
	summary := &Summary{}
	industryIDs := make(map[string]int64)
	companyIDs := make(map[string]int64)
	solutionIDs := make(map[string]int64)

	for _, row := range data.Industries {
		if row.Name == "" {
			continue
		}
		item, err := l.catalog.UpsertIndustry(ctx, &model.Industry{Name: row.Name})
		if err != nil {
			return nil, fmt.Errorf("seed industry %q: %w", row.Name, err)
		}
		industryIDs[row.Name] = item.ID
		summary.Industries++
	}

	for _, row := range data.Companies {
		if row.Name == "" {
			continue
		}
		item, err := l.catalog.UpsertCompany(ctx, &model.Company{
			Name:       row.Name,
			IndustryID: industryIDs[row.Industry],
			Size:       row.Size,
			Website:    row.Website,
		})
		if err != nil {
			return nil, fmt.Errorf("seed company %q: %w", row.Name, err)
		}
		companyIDs[row.Name] = item.ID
		summary.Companies++
	}

	for _, row := range data.Solutions {
		if row.Name == "" {
			continue
		}
		item, err := l.catalog.UpsertSolution(ctx, &model.Solution{
			Name:         row.Name,
			Category:     row.Category,
			Description:  row.Description,
			UseCases:     row.UseCases,
			Keywords:     row.Keywords,
			PricingModel: row.PricingModel,
		})
		if err != nil {
			return nil, fmt.Errorf("seed solution %q: %w", row.Name, err)
		}
		solutionIDs[row.Name] = item.ID
		summary.Solutions++
	}

	for _, row := range data.Prospects {
		if row.Email == "" {
			continue
		}
		_, err := l.prospects.UpsertProspect(ctx, &model.Prospect{
			FullName:    row.FullName,
			Email:       row.Email,
			LinkedinURL: row.LinkedinURL,
			Location:    row.Location,
			CompanyID:   companyIDs[row.Company],
			IsActive:    true,
			Status:      row.Status,
		})
		if err != nil {
			return nil, fmt.Errorf("seed prospect %q: %w", row.Email, err)
		}
		summary.Prospects++
	}

	for _, row := range data.Links {
		industryID, ok := industryIDs[row.Industry]
		if !ok {
			logger.Warn("seed link skipped: unknown industry", zap.String("industry", row.Industry))
			continue
		}
		solutionID, ok := solutionIDs[row.Solution]
		if !ok {
			logger.Warn("seed link skipped: unknown solution", zap.String("solution", row.Solution))
			continue
		}
		if err := l.catalog.LinkSolution(ctx, industryID, solutionID); err != nil {
			return nil, fmt.Errorf("seed link %s->%s: %w", row.Industry, row.Solution, err)
		}
		summary.Links++
	}

	logger.Info("seed load complete",
		zap.Int("industries", summary.Industries),
		zap.Int("companies", summary.Companies),
		zap.Int("solutions", summary.Solutions),
		zap.Int("prospects", summary.Prospects),
		zap.Int("links", summary.Links))
	return summary, nil
}
