package handlers

import (
	"fmt"

	"github.com/dimitrije/portal-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type SampleProjectHandler struct {
	projectService SampleProjectServiceInterface
}

func NewSampleProjectHandler(projectService SampleProjectServiceInterface) *SampleProjectHandler {
	return &SampleProjectHandler{projectService: projectService}
}

func (h *SampleProjectHandler) List(c *drift.Context) {
	projects, err := h.projectService.List(c.Request.Context(), c.QueryParam("delivery_method"))
	if err != nil {
		c.InternalServerError("failed to list sample projects")
		return
	}

	c.JSON(200, dto.SampleProjectListResponse{
		Projects: projects,
		Total:    len(projects),
	})
}

func (h *SampleProjectHandler) Stats(c *drift.Context) {
	stats, err := h.projectService.Stats(c.Request.Context())
	if err != nil {
		c.InternalServerError("failed to compute sample project statistics")
		return
	}

	c.JSON(200, stats)
}

func (h *SampleProjectHandler) Get(c *drift.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(c.Request.Context(), id)
	if err != nil {
		failed(c, err, fmt.Sprintf("Project ID %d not found", id), "failed to get sample project")
		return
	}

	c.JSON(200, project)
}
