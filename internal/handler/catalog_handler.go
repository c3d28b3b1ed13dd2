package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/prospectry/salescrm/internal/model"
	"github.com/prospectry/salescrm/internal/pkg/response"
	"github.com/prospectry/salescrm/internal/service"
)

type CatalogHandler struct {
	catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type industryRequest struct {
	Name string `json:"name"`
}

func (h *CatalogHandler) UpsertIndustry(c *gin.Context) {
	var req industryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	if req.Name == "" {
		badRequest(c, "name required")
		return
	}
	item, err := h.catalog.UpsertIndustry(c.Request.Context(), &model.Industry{Name: req.Name})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *CatalogHandler) GetIndustry(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := h.catalog.GetIndustry(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *CatalogHandler) ListIndustries(c *gin.Context) {
	items, err := h.catalog.ListIndustries(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

func (h *CatalogHandler) DeleteIndustry(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteIndustry(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

type linkRequest struct {
	SolutionID int64 `json:"solution_id"`
}

func (h *CatalogHandler) LinkSolution(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SolutionID <= 0 {
		badRequest(c, "solution_id required")
		return
	}
	if err := h.catalog.LinkSolution(c.Request.Context(), id, req.SolutionID); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *CatalogHandler) UnlinkSolution(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	solutionID, ok := paramID(c, "solution_id")
	if !ok {
		return
	}
	if err := h.catalog.UnlinkSolution(c.Request.Context(), id, solutionID); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *CatalogHandler) ListIndustrySolutions(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	items, err := h.catalog.ListIndustrySolutions(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

type companyRequest struct {
	Name       string `json:"name"`
	IndustryID int64  `json:"industry_id"`
	Size       string `json:"size"`
	Website    string `json:"website"`
}

func (h *CatalogHandler) UpsertCompany(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	if req.Name == "" {
		badRequest(c, "name required")
		return
	}
	item, err := h.catalog.UpsertCompany(c.Request.Context(), &model.Company{
		Name:       req.Name,
		IndustryID: req.IndustryID,
		Size:       req.Size,
		Website:    req.Website,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *CatalogHandler) GetCompany(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := h.catalog.GetCompany(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *CatalogHandler) ListCompanies(c *gin.Context) {
	if name := c.Query("name"); name != "" {
		item, err := h.catalog.GetCompanyByName(c.Request.Context(), name)
		if err != nil {
			handleError(c, err)
			return
		}
		response.Success(c, []interface{}{item})
		return
	}
	items, err := h.catalog.ListCompanies(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

func (h *CatalogHandler) DeleteCompany(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteCompany(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

type solutionRequest struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	UseCases     []string `json:"use_cases"`
	Keywords     []string `json:"keywords"`
	PricingModel string   `json:"pricing_model"`
}

func (h *CatalogHandler) UpsertSolution(c *gin.Context) {
	var req solutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	if req.Name == "" {
		badRequest(c, "name required")
		return
	}
	item, err := h.catalog.UpsertSolution(c.Request.Context(), &model.Solution{
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		UseCases:     req.UseCases,
		Keywords:     req.Keywords,
		PricingModel: req.PricingModel,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *CatalogHandler) GetSolution(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := h.catalog.GetSolution(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *CatalogHandler) ListSolutions(c *gin.Context) {
	if name := c.Query("name"); name != "" {
		item, err := h.catalog.GetSolutionByName(c.Request.Context(), name)
		if err != nil {
			handleError(c, err)
			return
		}
		response.Success(c, []interface{}{item})
		return
	}
	items, err := h.catalog.ListSolutions(c.Request.Context(), c.Query("category"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

func (h *CatalogHandler) DeleteSolution(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteSolution(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
