package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prospectry/salescrm/internal/pkg/response"
	"github.com/prospectry/salescrm/internal/service"
)

type OutreachHandler struct {
	outreach *service.OutreachService
}

func NewOutreachHandler(outreach *service.OutreachService) *OutreachHandler {
	return &OutreachHandler{outreach: outreach}
}

type draftRequest struct {
	ProspectID int64  `json:"prospect_id"`
	EventID    int64  `json:"event_id"`
	DraftType  string `json:"draft_type"`
}

func (h *OutreachHandler) Draft(c *gin.Context) {
	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	if req.ProspectID <= 0 {
		badRequest(c, "prospect_id required")
		return
	}
	if req.DraftType == "" {
		req.DraftType = "email"
	}
	item, err := h.outreach.Draft(c.Request.Context(), req.ProspectID, req.EventID, req.DraftType)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *OutreachHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := h.outreach.GetDraft(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *OutreachHandler) List(c *gin.Context) {
	prospectID := queryInt64(c, "prospect_id")
	if prospectID <= 0 {
		badRequest(c, "prospect_id required")
		return
	}
	items, err := h.outreach.ListDrafts(c.Request.Context(), prospectID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

type draftStatusRequest struct {
	Status string `json:"status"`
}

func (h *OutreachHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req draftStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		badRequest(c, "status required")
		return
	}
	if err := h.outreach.UpdateDraftStatus(c.Request.Context(), id, req.Status); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *OutreachHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.outreach.DeleteDraft(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

// Preview returns rendered HTML rather than the JSON envelope so the result
// can be dropped straight into an iframe.
func (h *OutreachHandler) Preview(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	html, err := h.outreach.PreviewDraft(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *OutreachHandler) ListUsage(c *gin.Context) {
	items, err := h.outreach.ListUsage(c.Request.Context(), queryInt(c, "limit", 50))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}
