package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/dimitrije/portal-api/internal/document"
	"github.com/dimitrije/portal-api/internal/models"
)

type MetricService struct {
	collection
}

func NewMetricService(docs *document.Adapter) *MetricService {
	return &MetricService{collection: collection{docs: docs}}
}

func (s *MetricService) List(ctx context.Context) ([]document.Record, error) {
	return s.list(ctx)
}

// Summaries returns every metric keyed by MetricKey.
func (s *MetricService) Summaries(ctx context.Context) (map[string]models.Metric, error) {
	records, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.Metric, len(records))
	for _, r := range records {
		m := MetricFromRecord(r)
		out[MetricKey(m.Name, m.ID)] = m
	}
	return out, nil
}

func (s *MetricService) GetByID(ctx context.Context, id int64) (document.Record, error) {
	return s.get(ctx, id)
}

// RecordValue sets a metric's current value. Empty notes leave the
// existing notes in place.
func (s *MetricService) RecordValue(ctx context.Context, id int64, value float64, notes string) (document.Record, error) {
	fields := map[string]any{"current": value}
	if notes != "" {
		fields["notes"] = notes
	}
	return s.update(ctx, id, fields)
}

func MetricFromRecord(r document.Record) models.Metric {
	id, _ := r.ID()
	m := models.Metric{
		ID:          id,
		Name:        r.String("name"),
		Current:     r.Float("current"),
		Target:      r.Float("target"),
		Unit:        r.String("unit"),
		Description: r.String("notes"),
	}
	if updated := r.String(document.FieldUpdatedAt); updated != "" {
		m.UpdatedAt = &updated
	}
	return m
}

// MetricKey turns a display name like "Drawing Parsing Accuracy" into
// "drawingParsingAccuracy". Unnamed metrics are keyed by their id.
func MetricKey(name string, id int64) string {
	key := strings.NewReplacer(" ", "", "-", "").Replace(name)
	if key == "" {
		return strconv.FormatInt(id, 10)
	}
	return strings.ToLower(key[:1]) + key[1:]
}
