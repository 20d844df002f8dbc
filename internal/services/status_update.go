package services

import (
	"context"
	"errors"

	"github.com/dimitrije/portal-api/internal/document"
)

const DefaultUpdatePriority = "NORMAL"

// NewStatusUpdate is a project update as posted by a team member.
type NewStatusUpdate struct {
	Type        string
	Title       string
	Content     string
	Priority    string
	AuthorEmail string
}

// StatusUpdateService manages the project update feed, newest first.
type StatusUpdateService struct {
	collection
}

func NewStatusUpdateService(docs *document.Adapter, seq *document.Sequence) *StatusUpdateService {
	return &StatusUpdateService{collection: collection{docs: docs, seq: seq}}
}

// List returns every update, or only those of updateType when it is set.
func (s *StatusUpdateService) List(ctx context.Context, updateType string) ([]document.Record, error) {
	if updateType != "" {
		return s.docs.QueryByIndex(ctx, "TypeIndex", "update_type", updateType)
	}
	return s.list(ctx)
}

func (s *StatusUpdateService) GetByID(ctx context.Context, id int64) (document.Record, error) {
	return s.get(ctx, id)
}

func (s *StatusUpdateService) Create(ctx context.Context, in NewStatusUpdate) (document.Record, error) {
	priority := in.Priority
	if priority == "" {
		priority = DefaultUpdatePriority
	}
	return s.create(ctx, map[string]any{
		"type":             in.Type,
		"update_type":      in.Type,
		"title":            in.Title,
		"content":          in.Content,
		"author_email":     in.AuthorEmail,
		"author":           localPart(in.AuthorEmail),
		"priority":         priority,
		"acknowledgements": []any{},
		"read_by":          []any{},
	})
}

// Acknowledge marks an update as read by the user behind email. It returns
// the user name recorded and whether they had already acknowledged it.
func (s *StatusUpdateService) Acknowledge(ctx context.Context, id int64, email string) (string, bool, error) {
	user := localPart(email)
	_, err := s.docs.Append(ctx, id, "acknowledgements", user, true)
	switch {
	case errors.Is(err, document.ErrDuplicate):
		return user, true, nil
	case err != nil:
		return "", false, err
	}
	return user, false, nil
}

func (s *StatusUpdateService) Delete(ctx context.Context, id int64) error {
	return s.delete(ctx, id)
}
