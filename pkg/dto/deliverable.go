package dto

import "github.com/dimitrije/portal-api/internal/document"

type UpdateDeliverableRequest struct {
	Status               string   `json:"status"`
	CompletionPercentage *float64 `json:"completion_percentage"`
	Blockers             []string `json:"blockers,omitempty"`
	Comments             string   `json:"comments,omitempty"`
}

type DeliverablesByMonthResponse struct {
	Month        int               `json:"month"`
	Deliverables []document.Record `json:"deliverables"`
}

type DeliverableUpdatedResponse struct {
	ID        int64  `json:"id"`
	Updated   bool   `json:"updated"`
	UpdatedAt string `json:"updatedAt"`
}

type EvidenceResponse struct {
	DeliverableID int64    `json:"deliverable_id"`
	Key           string   `json:"key"`
	Evidence      []string `json:"evidence"`
}
