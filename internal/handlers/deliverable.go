package handlers

import (
	"errors"
	"io"
	"strconv"

	"github.com/dimitrije/portal-api/internal/services"
	"github.com/dimitrije/portal-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

// MaxEvidenceSize caps a single evidence upload.
const MaxEvidenceSize = 25 << 20

type DeliverableHandler struct {
	deliverableService DeliverableServiceInterface
}

func NewDeliverableHandler(deliverableService DeliverableServiceInterface) *DeliverableHandler {
	return &DeliverableHandler{deliverableService: deliverableService}
}

func (h *DeliverableHandler) List(c *drift.Context) {
	deliverables, err := h.deliverableService.List(c.Request.Context())
	if err != nil {
		c.InternalServerError("failed to list deliverables")
		return
	}

	c.JSON(200, services.GroupByMonth(deliverables))
}

func (h *DeliverableHandler) ListByMonth(c *drift.Context) {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 4 {
		c.BadRequest("Phase must be 1, 2, 3, or 4")
		return
	}

	deliverables, err := h.deliverableService.ListByMonth(c.Request.Context(), month)
	if err != nil {
		c.InternalServerError("failed to list deliverables")
		return
	}

	c.JSON(200, dto.DeliverablesByMonthResponse{
		Month:        month,
		Deliverables: deliverables,
	})
}

func (h *DeliverableHandler) Get(c *drift.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	deliverable, err := h.deliverableService.GetByID(c.Request.Context(), id)
	if err != nil {
		failed(c, err, "Deliverable not found", "failed to get deliverable")
		return
	}

	c.JSON(200, deliverable)
}

func (h *DeliverableHandler) Update(c *drift.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDeliverableRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Status == "" || req.CompletionPercentage == nil {
		c.BadRequest("status and completion_percentage are required")
		return
	}

	updated, err := h.deliverableService.UpdateStatus(c.Request.Context(), id, req.Status, *req.CompletionPercentage)
	if err != nil {
		failed(c, err, "Deliverable not found", "failed to update deliverable")
		return
	}

	c.JSON(200, dto.DeliverableUpdatedResponse{
		ID:        id,
		Updated:   true,
		UpdatedAt: updated.String("updated_at"),
	})
}

// UploadEvidence stores the raw request body as an evidence file. The file
// name comes from the filename query parameter.
func (h *DeliverableHandler) UploadEvidence(c *drift.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	filename := c.QueryParam("filename")
	if filename == "" {
		c.BadRequest("filename is required")
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, MaxEvidenceSize+1))
	if err != nil {
		c.BadRequest("failed to read request body")
		return
	}
	if len(data) == 0 {
		c.BadRequest("evidence file is empty")
		return
	}
	if len(data) > MaxEvidenceSize {
		c.JSON(413, map[string]string{"error": "evidence file is too large"})
		return
	}

	key, updated, err := h.deliverableService.AttachEvidence(c.Request.Context(), id, filename, c.GetHeader("Content-Type"), data)
	if err != nil {
		if errors.Is(err, services.ErrEvidenceDisabled) {
			c.JSON(503, map[string]string{"error": "evidence uploads are not configured"})
			return
		}
		failed(c, err, "Deliverable not found", "failed to store evidence")
		return
	}

	c.JSON(201, dto.EvidenceResponse{
		DeliverableID: id,
		Key:           key,
		Evidence:      updated.Strings("evidence"),
	})
}
