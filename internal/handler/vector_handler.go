package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/prospectry/salescrm/internal/pkg/response"
	"github.com/prospectry/salescrm/internal/service"
)

// VectorHandler exposes raw vector-row CRUD, mostly for tooling and
// debugging; normal writes go through the sync paths.
type VectorHandler struct {
	vectors *service.VectorService
}

func NewVectorHandler(vectors *service.VectorService) *VectorHandler {
	return &VectorHandler{vectors: vectors}
}

type vectorCreateRequest struct {
	ParentID  int64     `json:"parent_id"`
	Embedding []float32 `json:"embedding"`
}

type vectorUpdateRequest struct {
	Embedding []float32 `json:"embedding"`
}

func (h *VectorHandler) CreateSolutionVector(c *gin.Context) {
	var req vectorCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	if req.ParentID <= 0 || len(req.Embedding) == 0 {
		badRequest(c, "parent_id and embedding required")
		return
	}
	item, err := h.vectors.CreateSolutionVector(c.Request.Context(), req.ParentID, req.Embedding)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *VectorHandler) GetSolutionVector(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := h.vectors.GetSolutionVector(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *VectorHandler) UpdateSolutionVector(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req vectorUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Embedding) == 0 {
		badRequest(c, "embedding required")
		return
	}
	item, err := h.vectors.UpdateSolutionVector(c.Request.Context(), id, req.Embedding)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *VectorHandler) DeleteSolutionVector(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.vectors.DeleteSolutionVector(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": deleted})
}

func (h *VectorHandler) CreateInteractionVector(c *gin.Context) {
	var req vectorCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	if req.ParentID <= 0 || len(req.Embedding) == 0 {
		badRequest(c, "parent_id and embedding required")
		return
	}
	item, err := h.vectors.CreateInteractionVector(c.Request.Context(), req.ParentID, req.Embedding)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *VectorHandler) GetInteractionVector(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := h.vectors.GetInteractionVector(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *VectorHandler) UpdateInteractionVector(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req vectorUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Embedding) == 0 {
		badRequest(c, "embedding required")
		return
	}
	item, err := h.vectors.UpdateInteractionVector(c.Request.Context(), id, req.Embedding)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *VectorHandler) DeleteInteractionVector(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.vectors.DeleteInteractionVector(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": deleted})
}
