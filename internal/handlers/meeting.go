package handlers

import (
	"github.com/dimitrije/portal-api/internal/document"
	"github.com/dimitrije/portal-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type MeetingHandler struct {
	meetingService MeetingServiceInterface
}

func NewMeetingHandler(meetingService MeetingServiceInterface) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService}
}

func (h *MeetingHandler) List(c *drift.Context) {
	ctx := c.Request.Context()

	var (
		meetings []document.Record
		err      error
	)
	if date := c.QueryParam("meeting_date"); date != "" {
		meetings, err = h.meetingService.ListByDate(ctx, date)
	} else {
		meetings, err = h.meetingService.List(ctx)
	}
	if err != nil {
		c.InternalServerError("failed to list meetings")
		return
	}

	c.JSON(200, dto.MeetingListResponse{
		Meetings: meetings,
		Total:    len(meetings),
	})
}

func (h *MeetingHandler) Get(c *drift.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	meeting, err := h.meetingService.GetByID(c.Request.Context(), id)
	if err != nil {
		failed(c, err, "Meeting not found", "failed to get meeting")
		return
	}

	c.JSON(200, meeting)
}

func (h *MeetingHandler) Create(c *drift.Context) {
	var req dto.CreateMeetingRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Title == "" || req.MeetingDate == "" {
		c.BadRequest("title and meeting_date are required")
		return
	}

	meeting, err := h.meetingService.Create(c.Request.Context(), req.Fields())
	if err != nil {
		c.InternalServerError("failed to create meeting")
		return
	}

	id, _ := meeting.ID()
	c.JSON(201, dto.MeetingCreatedResponse{
		ID:      id,
		Created: true,
		Meeting: meeting,
	})
}

func (h *MeetingHandler) Update(c *drift.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMeetingRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if key := req.BlankKey(); key != "" {
		c.BadRequest(key + " cannot be empty")
		return
	}

	meeting, err := h.meetingService.Update(c.Request.Context(), id, req.Fields())
	if err != nil {
		failed(c, err, "Meeting not found", "failed to update meeting")
		return
	}

	c.JSON(200, dto.MeetingUpdatedResponse{
		ID:      id,
		Updated: true,
		Meeting: meeting,
	})
}

func (h *MeetingHandler) Delete(c *drift.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.meetingService.Delete(c.Request.Context(), id); err != nil {
		failed(c, err, "Meeting not found", "failed to delete meeting")
		return
	}

	c.JSON(200, dto.DeletedResponse{ID: id, Deleted: true})
}
