package handlers

import (
	"fmt"

	"github.com/dimitrije/portal-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type MetricHandler struct {
	metricService MetricServiceInterface
}

func NewMetricHandler(metricService MetricServiceInterface) *MetricHandler {
	return &MetricHandler{metricService: metricService}
}

// List returns the metrics keyed by the camelCase form of their names.
func (h *MetricHandler) List(c *drift.Context) {
	metrics, err := h.metricService.Summaries(c.Request.Context())
	if err != nil {
		c.InternalServerError("failed to list metrics")
		return
	}

	c.JSON(200, metrics)
}

// History has no time series behind it yet and always answers empty.
func (h *MetricHandler) History(c *drift.Context) {
	c.JSON(200, dto.MetricHistoryResponse{
		Metric:   c.Param("name"),
		Data:     []any{},
		Timeline: []any{},
	})
}

func (h *MetricHandler) Learning(c *drift.Context) {
	c.JSON(200, dto.LearningMetricsResponse{
		ModelPerformance: dto.ModelPerformance{
			ParsingAccuracy: []float64{},
			TakeoffAccuracy: []float64{},
			ProcessingSpeed: []float64{},
			ConfidenceScore: []float64{},
		},
		EstimatorActivity: map[string]any{},
	})
}

func (h *MetricHandler) Record(c *drift.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.RecordMetricRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Value == nil {
		c.BadRequest("value is required")
		return
	}

	updated, err := h.metricService.RecordValue(c.Request.Context(), id, *req.Value, req.Notes)
	if err != nil {
		failed(c, err, fmt.Sprintf("Metric ID %d not found", id), "failed to record metric")
		return
	}

	c.JSON(200, dto.MetricRecordedResponse{
		Recorded:  true,
		MetricID:  id,
		Value:     updated.Float("current"),
		Timestamp: updated.String("updated_at"),
	})
}
