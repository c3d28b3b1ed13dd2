package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/prospectry/salescrm/internal/ai"
	"github.com/prospectry/salescrm/internal/config"
	"github.com/prospectry/salescrm/internal/db"
	"github.com/prospectry/salescrm/internal/filestore"
	"github.com/prospectry/salescrm/internal/handler"
	"github.com/prospectry/salescrm/internal/job"
	"github.com/prospectry/salescrm/internal/middleware"
	"github.com/prospectry/salescrm/internal/repo"
	"github.com/prospectry/salescrm/internal/schedule"
	"github.com/prospectry/salescrm/internal/seed"
	"github.com/prospectry/salescrm/internal/service"
)

type app struct {
	cfg *config.Config
	db  *sql.DB

	industries   *repo.IndustryRepo
	companies    *repo.CompanyRepo
	prospects    *repo.ProspectRepo
	solutions    *repo.SolutionRepo
	interactions *repo.InteractionRepo

	vectorService   *service.VectorService
	searchService   *service.SearchService
	catalogService  *service.CatalogService
	prospectService *service.ProspectService
	outreachService *service.OutreachService
}

func buildApp(configPath string) (*app, error) {
	if configPath == "" {
		return nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

	database, err := db.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.ApplyMigrations(database); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	providerArgs := cfg.AI.Data
	if providerArgs == nil {
		providerArgs = cfg.AI
	}
	aiProvider, err := ai.NewProvider(cfg.AI.Provider, providerArgs)
	if err != nil {
		return nil, fmt.Errorf("init ai provider: %w", err)
	}
	embedder := ai.NewEmbedder(aiProvider, cfg.AI.EmbedModel, cfg.AI.EmbedDim)
	if len(cfg.AI.Fallbacks) > 0 {
		entries := []ai.EmbedderEntry{{Name: cfg.AI.Provider, Embedder: embedder}}
		for _, fb := range cfg.AI.Fallbacks {
			fbProvider, err := ai.NewProvider(fb.Provider, fb.Data)
			if err != nil {
				return nil, fmt.Errorf("init fallback provider %s: %w", fb.Provider, err)
			}
			dim := fb.EmbedDim
			if dim == 0 {
				dim = cfg.AI.EmbedDim
			}
			if dim != cfg.AI.EmbedDim {
				return nil, fmt.Errorf("fallback provider %s embed_dim %d != %d", fb.Provider, dim, cfg.AI.EmbedDim)
			}
			entries = append(entries, ai.EmbedderEntry{
				Name:     fb.Provider,
				Embedder: ai.NewEmbedder(fbProvider, fb.EmbedModel, dim),
			})
		}
		embedder = ai.NewGroupEmbedder(entries)
	}
	manager := ai.NewManager(
		ai.NewGenerator(aiProvider, cfg.AI.Model),
		embedder,
		ai.ManagerConfig{Timeout: cfg.AI.Timeout, MaxInputChars: cfg.AI.MaxInputChars},
	)

	industryRepo := repo.NewIndustryRepo(database)
	companyRepo := repo.NewCompanyRepo(database)
	prospectRepo := repo.NewProspectRepo(database)
	solutionRepo := repo.NewSolutionRepo(database)
	interactionRepo := repo.NewInteractionRepo(database)
	eventRepo := repo.NewEventRepo(database)
	researchRepo := repo.NewResearchRepo(database)
	outreachRepo := repo.NewOutreachRepo(database)
	usageRepo := repo.NewLLMUsageRepo(database)
	solutionVecRepo := repo.NewSolutionVectorRepo(database)
	interactionVecRepo := repo.NewInteractionVectorRepo(database)

	vectorService := service.NewVectorService(manager, solutionVecRepo, interactionVecRepo,
		service.VectorServiceConfig{
			ChunkSize:    cfg.Vector.ChunkSize,
			ChunkOverlap: cfg.Vector.ChunkOverlap,
			CacheSize:    cfg.Vector.CacheSize,
			CacheTTLSec:  cfg.Vector.CacheTTL,
		})
	searchService := service.NewSearchService(vectorService, solutionVecRepo, interactionVecRepo,
		service.SearchServiceConfig{
			DefaultLimit:     cfg.Vector.DefaultLimit,
			DefaultThreshold: cfg.Vector.DefaultThreshold,
		})
	catalogService := service.NewCatalogService(industryRepo, companyRepo, solutionRepo, vectorService)
	prospectService := service.NewProspectService(prospectRepo, interactionRepo, eventRepo, researchRepo, vectorService)
	outreachService := service.NewOutreachService(manager, outreachRepo, usageRepo,
		prospectRepo, interactionRepo, researchRepo)

	return &app{
		cfg:             cfg,
		db:              database,
		industries:      industryRepo,
		companies:       companyRepo,
		prospects:       prospectRepo,
		solutions:       solutionRepo,
		interactions:    interactionRepo,
		vectorService:   vectorService,
		searchService:   searchService,
		catalogService:  catalogService,
		prospectService: prospectService,
		outreachService: outreachService,
	}, nil
}

func main() {
	var configPath string
	var seedFile string

	rootCmd := &cobra.Command{
		Use:   "salescrm",
		Short: "sales crm backend",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the api server",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(configPath)
			if err != nil {
				return err
			}
			defer application.db.Close()
			return runServer(application)
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "load seed data from the configured seed store",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(configPath)
			if err != nil {
				return err
			}
			defer application.db.Close()
			store, err := filestore.New(application.cfg.SeedStore)
			if err != nil {
				return fmt.Errorf("init seed store: %w", err)
			}
			loader := seed.NewLoader(store, application.catalogService, application.prospectService)
			summary, err := loader.Load(cmd.Context(), seedFile)
			if err != nil {
				return err
			}
			logutil.GetLogger(cmd.Context()).Info("seed finished",
				zap.Int("industries", summary.Industries),
				zap.Int("companies", summary.Companies),
				zap.Int("solutions", summary.Solutions),
				zap.Int("prospects", summary.Prospects),
				zap.Int("links", summary.Links))
			return nil
		},
	}
	seedCmd.Flags().StringVar(&seedFile, "file", "seed.json", "seed file key in the seed store")

	reindexCmd := &cobra.Command{
		Use:   "reindex",
		Short: "rebuild every vector row from current entity text",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(configPath)
			if err != nil {
				return err
			}
			defer application.db.Close()
			return reindexAll(cmd.Context(), application)
		},
	}

	rootCmd.AddCommand(runCmd, seedCmd, reindexCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func reindexAll(ctx context.Context, application *app) error {
	logger := logutil.GetLogger(ctx)

	solutions, err := application.solutions.List(ctx)
	if err != nil {
		return err
	}
	var solutionChunks int
	for i := range solutions {
		count, err := application.vectorService.SyncSolutionVectors(ctx, &solutions[i])
		if err != nil {
			return fmt.Errorf("reindex solution %d: %w", solutions[i].ID, err)
		}
		solutionChunks += count
	}

	interactions, err := application.interactions.List(ctx)
	if err != nil {
		return err
	}
	var interactionChunks int
	for i := range interactions {
		count, err := application.vectorService.SyncInteractionVectors(ctx, &interactions[i])
		if err != nil {
			return fmt.Errorf("reindex interaction %d: %w", interactions[i].ID, err)
		}
		interactionChunks += count
	}

	logger.Info("reindex complete",
		zap.Int("solutions", len(solutions)),
		zap.Int("solution_chunks", solutionChunks),
		zap.Int("interactions", len(interactions)),
		zap.Int("interaction_chunks", interactionChunks))
	return nil
}

func runServer(application *app) error {
	cfg := application.cfg
	logutil.GetLogger(context.Background()).Info("starting server",
		zap.Int("port", cfg.Port),
		zap.String("ai_provider", cfg.AI.Provider))

	deps := handler.RouterDeps{
		Catalog:  handler.NewCatalogHandler(application.catalogService),
		Prospect: handler.NewProspectHandler(application.prospectService),
		Search:   handler.NewSearchHandler(application.searchService),
		Vector:   handler.NewVectorHandler(application.vectorService),
		Outreach: handler.NewOutreachHandler(application.outreachService),

		DraftWindow: time.Duration(cfg.Jobs.DraftRateLimitMs) * time.Millisecond,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if cfg.Jobs.VectorSyncSpec != "" {
		syncJob := job.NewVectorSyncJob(application.solutions, application.interactions,
			application.vectorService, cfg.Jobs.VectorSyncBatch)
		if err := scheduler.AddJob(syncJob, cfg.Jobs.VectorSyncSpec); err != nil {
			return fmt.Errorf("schedule vector sync: %w", err)
		}
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(ctx).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
