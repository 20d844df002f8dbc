package services

import (
	"context"
	"math"

	"github.com/dimitrije/portal-api/internal/document"
	"github.com/dimitrije/portal-api/internal/models"
)

type SampleProjectService struct {
	collection
}

func NewSampleProjectService(docs *document.Adapter) *SampleProjectService {
	return &SampleProjectService{collection: collection{docs: docs}}
}

// List returns every sample project, or only those delivered by method
// (DATA, DESIGN_BUILD, PLAN_SPEC_BID) when it is set.
func (s *SampleProjectService) List(ctx context.Context, deliveryMethod string) ([]document.Record, error) {
	if deliveryMethod != "" {
		return s.docs.QueryByIndex(ctx, "DeliveryMethodIndex", "delivery_method", deliveryMethod)
	}
	return s.list(ctx)
}

func (s *SampleProjectService) GetByID(ctx context.Context, id int64) (document.Record, error) {
	return s.get(ctx, id)
}

func (s *SampleProjectService) Stats(ctx context.Context) (*models.SampleProjectStats, error) {
	projects, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	return ProjectStats(projects), nil
}

func ProjectStats(projects []document.Record) *models.SampleProjectStats {
	stats := &models.SampleProjectStats{
		TotalProjects:   len(projects),
		DeliveryMethods: map[string]int{},
	}
	for _, p := range projects {
		stats.TotalSizeMB += p.Float("size_mb")

		if counts, ok := p["document_counts"].(map[string]any); ok {
			for k := range counts {
				stats.TotalDocuments += document.Record(counts).Float(k)
			}
		}

		method := p.String("delivery_method")
		if method == "" {
			method = "UNKNOWN"
		}
		stats.DeliveryMethods[method]++
	}
	stats.TotalSizeGB = math.Round(stats.TotalSizeMB/1024*100) / 100
	return stats
}
