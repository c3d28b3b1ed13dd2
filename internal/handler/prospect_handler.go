package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/prospectry/salescrm/internal/model"
	"github.com/prospectry/salescrm/internal/pkg/response"
	"github.com/prospectry/salescrm/internal/service"
)

type ProspectHandler struct {
	prospects *service.ProspectService
}

func NewProspectHandler(prospects *service.ProspectService) *ProspectHandler {
	return &ProspectHandler{prospects: prospects}
}

type prospectRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	LinkedinURL string `json:"linkedin_url"`
	Location    string `json:"location"`
	CompanyID   int64  `json:"company_id"`
	Status      string `json:"status"`
}

func (h *ProspectHandler) Upsert(c *gin.Context) {
	var req prospectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	if req.FullName == "" || req.Email == "" {
		badRequest(c, "full_name and email required")
		return
	}
	item, err := h.prospects.UpsertProspect(c.Request.Context(), &model.Prospect{
		FullName:    req.FullName,
		Email:       req.Email,
		LinkedinURL: req.LinkedinURL,
		Location:    req.Location,
		CompanyID:   req.CompanyID,
		IsActive:    true,
		Status:      req.Status,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *ProspectHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := h.prospects.GetProspect(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *ProspectHandler) List(c *gin.Context) {
	if name := c.Query("name"); name != "" {
		items, err := h.prospects.FindProspectsByName(c.Request.Context(), name, queryInt(c, "limit", 0))
		if err != nil {
			handleError(c, err)
			return
		}
		response.Success(c, items)
		return
	}
	items, err := h.prospects.ListProspects(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

type prospectStatusRequest struct {
	Status string `json:"status"`
}

func (h *ProspectHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req prospectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		badRequest(c, "status required")
		return
	}
	if err := h.prospects.UpdateProspectStatus(c.Request.Context(), id, req.Status); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *ProspectHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.prospects.DeleteProspect(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

type interactionRequest struct {
	ProspectID      int64  `json:"prospect_id"`
	EventID         int64  `json:"event_id"`
	InteractionType string `json:"interaction_type"`
	InteractionDate int64  `json:"interaction_date"`
	Subject         string `json:"subject"`
	Content         string `json:"content"`
	Sentiment       string `json:"sentiment"`
	Outcome         string `json:"outcome"`
}

func (h *ProspectHandler) RecordInteraction(c *gin.Context) {
	var req interactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	if req.ProspectID <= 0 || req.InteractionType == "" {
		badRequest(c, "prospect_id and interaction_type required")
		return
	}
	item, err := h.prospects.RecordInteraction(c.Request.Context(), &model.Interaction{
		ProspectID:      req.ProspectID,
		EventID:         req.EventID,
		InteractionType: req.InteractionType,
		InteractionDate: req.InteractionDate,
		Subject:         req.Subject,
		Content:         req.Content,
		Sentiment:       req.Sentiment,
		Outcome:         req.Outcome,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *ProspectHandler) GetInteraction(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := h.prospects.GetInteraction(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *ProspectHandler) ListInteractions(c *gin.Context) {
	items, err := h.prospects.ListInteractions(c.Request.Context(),
		queryInt64(c, "prospect_id"), queryInt(c, "limit", 0))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

func (h *ProspectHandler) DeleteInteraction(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.prospects.DeleteInteraction(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

type eventRequest struct {
	EventType         string   `json:"event_type"`
	EventDate         int64    `json:"event_date"`
	Description       string   `json:"description"`
	Location          string   `json:"location"`
	TargetIndustries  []string `json:"target_industries"`
	TargetRoles       []string `json:"target_roles"`
	SolutionsFeatured []string `json:"solutions_featured"`
	Status            string   `json:"status"`
}

func (h *ProspectHandler) CreateEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	if req.EventType == "" {
		badRequest(c, "event_type required")
		return
	}
	item, err := h.prospects.CreateEvent(c.Request.Context(), &model.Event{
		EventType:         req.EventType,
		EventDate:         req.EventDate,
		Description:       req.Description,
		Location:          req.Location,
		TargetIndustries:  req.TargetIndustries,
		TargetRoles:       req.TargetRoles,
		SolutionsFeatured: req.SolutionsFeatured,
		Status:            req.Status,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *ProspectHandler) GetEvent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := h.prospects.GetEvent(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *ProspectHandler) ListEvents(c *gin.Context) {
	items, err := h.prospects.ListEvents(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

func (h *ProspectHandler) DeleteEvent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.prospects.DeleteEvent(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

type researchRequest struct {
	ProspectID           int64    `json:"prospect_id"`
	ResearchSummary      string   `json:"research_summary"`
	KeyInsights          []string `json:"key_insights"`
	RecommendedSolutions []string `json:"recommended_solutions"`
	ConfidenceScore      float64  `json:"confidence_score"`
}

func (h *ProspectHandler) AddResearch(c *gin.Context) {
	var req researchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	if req.ProspectID <= 0 || req.ResearchSummary == "" {
		badRequest(c, "prospect_id and research_summary required")
		return
	}
	item, err := h.prospects.AddResearch(c.Request.Context(), &model.ProspectResearch{
		ProspectID:           req.ProspectID,
		ResearchSummary:      req.ResearchSummary,
		KeyInsights:          req.KeyInsights,
		RecommendedSolutions: req.RecommendedSolutions,
		ConfidenceScore:      req.ConfidenceScore,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *ProspectHandler) ListResearch(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	items, err := h.prospects.ListResearch(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}
