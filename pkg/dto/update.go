package dto

import "github.com/dimitrije/portal-api/internal/document"

type CreateUpdateRequest struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Priority    string `json:"priority"`
	AuthorEmail string `json:"author_email"`
}

type UpdateListResponse struct {
	Updates []document.Record `json:"updates"`
	Total   int               `json:"total"`
}

type UpdateCreatedResponse struct {
	ID        int64  `json:"id"`
	Created   bool   `json:"created"`
	Timestamp string `json:"timestamp"`
}

type AcknowledgeResponse struct {
	UpdateID     int64  `json:"update_id"`
	Acknowledged bool   `json:"acknowledged"`
	User         string `json:"user,omitempty"`
	Message      string `json:"message,omitempty"`
}
