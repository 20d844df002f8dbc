package services

import (
	"context"
	"fmt"
	"path"
	"strconv"

	"github.com/dimitrije/portal-api/internal/document"
	"github.com/google/uuid"
)

const deliverableMonths = 4

type DeliverableService struct {
	collection
	evidence *EvidenceStore
}

func NewDeliverableService(docs *document.Adapter, evidence *EvidenceStore) *DeliverableService {
	return &DeliverableService{
		collection: collection{docs: docs},
		evidence:   evidence,
	}
}

func (s *DeliverableService) List(ctx context.Context) ([]document.Record, error) {
	return s.list(ctx)
}

// ListByMonth returns the deliverables of one project phase.
func (s *DeliverableService) ListByMonth(ctx context.Context, month int) ([]document.Record, error) {
	return s.docs.ScanWhere(ctx, "phase_id", month)
}

func (s *DeliverableService) GetByID(ctx context.Context, id int64) (document.Record, error) {
	return s.get(ctx, id)
}

func (s *DeliverableService) UpdateStatus(ctx context.Context, id int64, status string, completion float64) (document.Record, error) {
	return s.update(ctx, id, map[string]any{
		"status":                status,
		"completion_percentage": completion,
	})
}

// AttachEvidence stores an uploaded file and records its object key on the
// deliverable. It returns the key and the updated deliverable.
func (s *DeliverableService) AttachEvidence(ctx context.Context, id int64, filename, contentType string, data []byte) (string, document.Record, error) {
	if !s.evidence.Enabled() {
		return "", nil, ErrEvidenceDisabled
	}

	if _, err := s.get(ctx, id); err != nil {
		return "", nil, err
	}

	key := fmt.Sprintf("deliverables/%d/%s-%s", id, uuid.NewString(), path.Base(filename))
	if err := s.evidence.Put(ctx, key, contentType, data); err != nil {
		return "", nil, err
	}

	updated, err := s.docs.Append(ctx, id, "evidence", key, false)
	if err != nil {
		return "", nil, err
	}
	return key, updated, nil
}

// GroupByMonth buckets deliverables under month1..month4 by their month
// field. Deliverables without a month count as month 1; any other month is
// left out.
func GroupByMonth(deliverables []document.Record) map[string][]document.Record {
	grouped := make(map[string][]document.Record, deliverableMonths)
	for m := 1; m <= deliverableMonths; m++ {
		grouped["month"+strconv.Itoa(m)] = []document.Record{}
	}
	for _, d := range deliverables {
		month, ok := d.Int("month")
		if !ok {
			month = 1
		}
		key := "month" + strconv.FormatInt(month, 10)
		if _, ok := grouped[key]; ok {
			grouped[key] = append(grouped[key], d)
		}
	}
	return grouped
}
