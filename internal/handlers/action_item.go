package handlers

import (
	"strconv"

	"github.com/dimitrije/portal-api/internal/document"
	"github.com/dimitrije/portal-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type ActionItemHandler struct {
	actionItemService ActionItemServiceInterface
}

func NewActionItemHandler(actionItemService ActionItemServiceInterface) *ActionItemHandler {
	return &ActionItemHandler{actionItemService: actionItemService}
}

// List applies at most one filter: status, then responsible_party, then
// meeting_id.
func (h *ActionItemHandler) List(c *drift.Context) {
	ctx := c.Request.Context()

	var (
		items []document.Record
		err   error
	)
	status := c.QueryParam("status")
	party := c.QueryParam("responsible_party")
	meeting := c.QueryParam("meeting_id")

	switch {
	case status != "":
		items, err = h.actionItemService.ListByStatus(ctx, status)
	case party != "":
		items, err = h.actionItemService.ListByResponsibleParty(ctx, party)
	case meeting != "":
		meetingID, perr := strconv.ParseInt(meeting, 10, 64)
		if perr != nil {
			c.BadRequest("invalid meeting_id")
			return
		}
		items, err = h.actionItemService.ListByMeeting(ctx, meetingID)
	default:
		items, err = h.actionItemService.List(ctx)
	}
	if err != nil {
		c.InternalServerError("failed to list action items")
		return
	}

	c.JSON(200, dto.ActionItemListResponse{
		ActionItems: items,
		Total:       len(items),
	})
}

func (h *ActionItemHandler) Get(c *drift.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.actionItemService.GetByID(c.Request.Context(), id)
	if err != nil {
		failed(c, err, "Action item not found", "failed to get action item")
		return
	}

	c.JSON(200, item)
}

func (h *ActionItemHandler) Create(c *drift.Context) {
	var req dto.CreateActionItemRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Title == "" || req.ResponsibleParty == "" {
		c.BadRequest("title and responsible_party are required")
		return
	}

	item, err := h.actionItemService.Create(c.Request.Context(), req.Fields())
	if err != nil {
		c.InternalServerError("failed to create action item")
		return
	}

	id, _ := item.ID()
	c.JSON(201, dto.ActionItemCreatedResponse{
		ID:         id,
		Created:    true,
		ActionItem: item,
	})
}

func (h *ActionItemHandler) Update(c *drift.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateActionItemRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if key := req.BlankKey(); key != "" {
		c.BadRequest(key + " cannot be empty")
		return
	}

	item, err := h.actionItemService.Update(c.Request.Context(), id, req.Fields())
	if err != nil {
		failed(c, err, "Action item not found", "failed to update action item")
		return
	}

	c.JSON(200, dto.ActionItemUpdatedResponse{
		ID:         id,
		Updated:    true,
		ActionItem: item,
	})
}

func (h *ActionItemHandler) Delete(c *drift.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.actionItemService.Delete(c.Request.Context(), id); err != nil {
		failed(c, err, "Action item not found", "failed to delete action item")
		return
	}

	c.JSON(200, dto.DeletedResponse{ID: id, Deleted: true})
}
