package services

import (
	"context"

	"github.com/dimitrije/portal-api/internal/document"
)

// Action item defaults
const (
	DefaultActionItemStatus   = "pending"
	DefaultActionItemPriority = "medium"
)

type ActionItemService struct {
	collection
}

func NewActionItemService(docs *document.Adapter, seq *document.Sequence) *ActionItemService {
	return &ActionItemService{collection: collection{docs: docs, seq: seq}}
}

func (s *ActionItemService) List(ctx context.Context) ([]document.Record, error) {
	return s.list(ctx)
}

func (s *ActionItemService) ListByStatus(ctx context.Context, status string) ([]document.Record, error) {
	return s.docs.QueryByIndex(ctx, "StatusIndex", "status", status)
}

func (s *ActionItemService) ListByResponsibleParty(ctx context.Context, party string) ([]document.Record, error) {
	return s.docs.QueryByIndex(ctx, "ResponsiblePartyIndex", "responsible_party", party)
}

func (s *ActionItemService) ListByMeeting(ctx context.Context, meetingID int64) ([]document.Record, error) {
	return s.docs.QueryByIndex(ctx, "MeetingIdIndex", "meeting_id", meetingID)
}

func (s *ActionItemService) GetByID(ctx context.Context, id int64) (document.Record, error) {
	return s.get(ctx, id)
}

func (s *ActionItemService) Create(ctx context.Context, fields map[string]any) (document.Record, error) {
	if status, _ := fields["status"].(string); status == "" {
		fields["status"] = DefaultActionItemStatus
	}
	if p, _ := fields["priority"].(string); p == "" {
		fields["priority"] = DefaultActionItemPriority
	}
	return s.create(ctx, fields)
}

func (s *ActionItemService) Update(ctx context.Context, id int64, fields map[string]any) (document.Record, error) {
	return s.update(ctx, id, fields)
}

func (s *ActionItemService) Delete(ctx context.Context, id int64) error {
	return s.delete(ctx, id)
}
