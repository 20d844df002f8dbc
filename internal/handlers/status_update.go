package handlers

import (
	"github.com/dimitrije/portal-api/internal/services"
	"github.com/dimitrije/portal-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type StatusUpdateHandler struct {
	updateService StatusUpdateServiceInterface
}

func NewStatusUpdateHandler(updateService StatusUpdateServiceInterface) *StatusUpdateHandler {
	return &StatusUpdateHandler{updateService: updateService}
}

// List returns the updates newest first, optionally only those of one type.
func (h *StatusUpdateHandler) List(c *drift.Context) {
	updates, err := h.updateService.List(c.Request.Context(), c.QueryParam("type_filter"))
	if err != nil {
		c.InternalServerError("failed to list updates")
		return
	}

	c.JSON(200, dto.UpdateListResponse{
		Updates: updates,
		Total:   len(updates),
	})
}

func (h *StatusUpdateHandler) Get(c *drift.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	update, err := h.updateService.GetByID(c.Request.Context(), id)
	if err != nil {
		failed(c, err, "Update not found", "failed to get update")
		return
	}

	c.JSON(200, update)
}

func (h *StatusUpdateHandler) Create(c *drift.Context) {
	var req dto.CreateUpdateRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Type == "" || req.Title == "" || req.Content == "" || req.AuthorEmail == "" {
		c.BadRequest("type, title, content and author_email are required")
		return
	}

	update, err := h.updateService.Create(c.Request.Context(), services.NewStatusUpdate{
		Type:        req.Type,
		Title:       req.Title,
		Content:     req.Content,
		Priority:    req.Priority,
		AuthorEmail: req.AuthorEmail,
	})
	if err != nil {
		c.InternalServerError("failed to create update")
		return
	}

	id, _ := update.ID()
	c.JSON(201, dto.UpdateCreatedResponse{
		ID:        id,
		Created:   true,
		Timestamp: update.String("created_at"),
	})
}

func (h *StatusUpdateHandler) Acknowledge(c *drift.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	email := c.QueryParam("user_email")
	if email == "" {
		c.BadRequest("user_email is required")
		return
	}

	user, already, err := h.updateService.Acknowledge(c.Request.Context(), id, email)
	if err != nil {
		failed(c, err, "Update not found", "failed to acknowledge update")
		return
	}

	resp := dto.AcknowledgeResponse{UpdateID: id, Acknowledged: true}
	if already {
		resp.Message = "Already acknowledged"
	} else {
		resp.User = user
	}
	c.JSON(200, resp)
}

func (h *StatusUpdateHandler) Delete(c *drift.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.updateService.Delete(c.Request.Context(), id); err != nil {
		failed(c, err, "Update not found", "failed to delete update")
		return
	}

	c.JSON(200, dto.DeletedResponse{ID: id, Deleted: true})
}
