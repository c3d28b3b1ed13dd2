package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/prospectry/salescrm/internal/model"
	"github.com/prospectry/salescrm/internal/pkg/response"
	"github.com/prospectry/salescrm/internal/service"
)

type SearchHandler struct {
	search *service.SearchService
}

func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

type searchRequest struct {
	Query      string   `json:"query"`
	Collection string   `json:"collection"`
	Limit      *int     `json:"limit"`
	Threshold  *float64 `json:"threshold"`

	// solution filters
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`

	// interaction filters
	ProspectID      int64  `json:"prospect_id"`
	InteractionType string `json:"interaction_type"`
}

func (h *SearchHandler) limits(req *searchRequest) (int, float64) {
	k := h.search.DefaultLimit()
	if req.Limit != nil {
		k = *req.Limit
	}
	threshold := h.search.DefaultThreshold()
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	return k, threshold
}

func (h *SearchHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	if req.Query == "" || req.Collection == "" {
		badRequest(c, "query and collection required")
		return
	}
	k, threshold := h.limits(&req)
	results, err := h.search.SearchText(c.Request.Context(), req.Query, model.Collection(req.Collection), k, threshold)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, results)
}

func (h *SearchHandler) SearchSolutions(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	if req.Query == "" {
		badRequest(c, "query required")
		return
	}
	k, threshold := h.limits(&req)
	results, err := h.search.SearchSolutions(c.Request.Context(), req.Query, req.Category, req.Keywords, k, threshold)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, results)
}

func (h *SearchHandler) SearchInteractions(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	if req.Query == "" || req.ProspectID <= 0 {
		badRequest(c, "query and prospect_id required")
		return
	}
	k, threshold := h.limits(&req)
	results, err := h.search.SearchInteractions(c.Request.Context(), req.Query,
		req.ProspectID, req.InteractionType, req.Keywords, k, threshold)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, results)
}
