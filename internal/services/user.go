package services

import (
	"context"

	"github.com/dimitrije/portal-api/internal/document"
	"github.com/dimitrije/portal-api/internal/models"
)

type UserService struct {
	collection
}

func NewUserService(docs *document.Adapter) *UserService {
	return &UserService{collection: collection{docs: docs}}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	record, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.UserFromRecord(record), nil
}

// GetByAuth0ID finds the portal user linked to an identity provider subject.
func (s *UserService) GetByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error) {
	record, err := s.first(ctx, "Auth0IdIndex", "auth0_id", auth0ID)
	if err != nil {
		return nil, err
	}
	return models.UserFromRecord(record), nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	record, err := s.first(ctx, "EmailIndex", "email", email)
	if err != nil {
		return nil, err
	}
	return models.UserFromRecord(record), nil
}
