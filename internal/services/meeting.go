package services

import (
	"context"

	"github.com/dimitrije/portal-api/internal/document"
)

type MeetingService struct {
	collection
}

func NewMeetingService(docs *document.Adapter, seq *document.Sequence) *MeetingService {
	return &MeetingService{collection: collection{docs: docs, seq: seq}}
}

func (s *MeetingService) List(ctx context.Context) ([]document.Record, error) {
	return s.list(ctx)
}

func (s *MeetingService) ListByDate(ctx context.Context, date string) ([]document.Record, error) {
	return s.docs.QueryByIndex(ctx, "MeetingDateIndex", "meeting_date", date)
}

func (s *MeetingService) GetByID(ctx context.Context, id int64) (document.Record, error) {
	return s.get(ctx, id)
}

func (s *MeetingService) Create(ctx context.Context, fields map[string]any) (document.Record, error) {
	if _, ok := fields["action_item_ids"]; !ok {
		fields["action_item_ids"] = []any{}
	}
	return s.create(ctx, fields)
}

func (s *MeetingService) Update(ctx context.Context, id int64, fields map[string]any) (document.Record, error) {
	return s.update(ctx, id, fields)
}

func (s *MeetingService) Delete(ctx context.Context, id int64) error {
	return s.delete(ctx, id)
}
