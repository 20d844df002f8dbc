package handlers

import (
	"github.com/m1z23r/drift/pkg/drift"
)

type DashboardHandler struct {
	dashboardService DashboardServiceInterface
}

func NewDashboardHandler(dashboardService DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Summary(c *drift.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		c.InternalServerError("failed to build dashboard")
		return
	}

	c.JSON(200, summary)
}

func (h *DashboardHandler) Overview(c *drift.Context) {
	overview, err := h.dashboardService.Overview(c.Request.Context())
	if err != nil {
		c.InternalServerError("failed to build project overview")
		return
	}

	c.JSON(200, overview)
}
