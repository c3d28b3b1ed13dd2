package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prospectry/salescrm/internal/middleware"
)

type RouterDeps struct {
	Catalog  *CatalogHandler
	Prospect *ProspectHandler
	Search   *SearchHandler
	Vector   *VectorHandler
	Outreach *OutreachHandler

	// DraftWindow throttles the generator-backed draft route per ip.
	DraftWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/industries", deps.Catalog.UpsertIndustry)
	api.GET("/industries", deps.Catalog.ListIndustries)
	api.GET("/industries/:id", deps.Catalog.GetIndustry)
	api.DELETE("/industries/:id", deps.Catalog.DeleteIndustry)
	api.POST("/industries/:id/solutions", deps.Catalog.LinkSolution)
	api.GET("/industries/:id/solutions", deps.Catalog.ListIndustrySolutions)
	api.DELETE("/industries/:id/solutions/:solution_id", deps.Catalog.UnlinkSolution)

	api.POST("/companies", deps.Catalog.UpsertCompany)
	api.GET("/companies", deps.Catalog.ListCompanies)
	api.GET("/companies/:id", deps.Catalog.GetCompany)
	api.DELETE("/companies/:id", deps.Catalog.DeleteCompany)

	api.POST("/solutions", deps.Catalog.UpsertSolution)
	api.GET("/solutions", deps.Catalog.ListSolutions)
	api.GET("/solutions/:id", deps.Catalog.GetSolution)
	api.DELETE("/solutions/:id", deps.Catalog.DeleteSolution)

	api.POST("/prospects", deps.Prospect.Upsert)
	api.GET("/prospects", deps.Prospect.List)
	api.GET("/prospects/:id", deps.Prospect.Get)
	api.PUT("/prospects/:id/status", deps.Prospect.UpdateStatus)
	api.DELETE("/prospects/:id", deps.Prospect.Delete)
	api.POST("/prospects/research", deps.Prospect.AddResearch)
	api.GET("/prospects/:id/research", deps.Prospect.ListResearch)

	api.POST("/interactions", deps.Prospect.RecordInteraction)
	api.GET("/interactions", deps.Prospect.ListInteractions)
	api.GET("/interactions/:id", deps.Prospect.GetInteraction)
	api.DELETE("/interactions/:id", deps.Prospect.DeleteInteraction)

	api.POST("/events", deps.Prospect.CreateEvent)
	api.GET("/events", deps.Prospect.ListEvents)
	api.GET("/events/:id", deps.Prospect.GetEvent)
	api.DELETE("/events/:id", deps.Prospect.DeleteEvent)

	api.POST("/search", deps.Search.Search)
	api.POST("/search/solutions", deps.Search.SearchSolutions)
	api.POST("/search/interactions", deps.Search.SearchInteractions)

	api.POST("/vectors/solutions", deps.Vector.CreateSolutionVector)
	api.GET("/vectors/solutions/:id", deps.Vector.GetSolutionVector)
	api.PUT("/vectors/solutions/:id", deps.Vector.UpdateSolutionVector)
	api.DELETE("/vectors/solutions/:id", deps.Vector.DeleteSolutionVector)
	api.POST("/vectors/interactions", deps.Vector.CreateInteractionVector)
	api.GET("/vectors/interactions/:id", deps.Vector.GetInteractionVector)
	api.PUT("/vectors/interactions/:id", deps.Vector.UpdateInteractionVector)
	api.DELETE("/vectors/interactions/:id", deps.Vector.DeleteInteractionVector)

	api.POST("/outreach/drafts", middleware.RateLimit(deps.DraftWindow), deps.Outreach.Draft)
	api.GET("/outreach/drafts", deps.Outreach.List)
	api.GET("/outreach/drafts/:id", deps.Outreach.Get)
	api.GET("/outreach/drafts/:id/preview", deps.Outreach.Preview)
	api.PUT("/outreach/drafts/:id/status", deps.Outreach.UpdateStatus)
	api.DELETE("/outreach/drafts/:id", deps.Outreach.Delete)
	api.GET("/outreach/usage", deps.Outreach.ListUsage)
}
