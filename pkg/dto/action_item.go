package dto

import "github.com/dimitrije/portal-api/internal/document"

type CreateActionItemRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	ResponsibleParty string `json:"responsible_party"`
	TargetDate       string `json:"target_date"`
	Status           string `json:"status"`
	Priority         string `json:"priority"`
	MeetingID        *int64 `json:"meeting_id"`
}

// Fields returns the record fields for a new action item. Status and
// priority are left out when empty so the service can apply its defaults.
func (r CreateActionItemRequest) Fields() map[string]any {
	fields := map[string]any{
		"title":             r.Title,
		"description":       r.Description,
		"responsible_party": r.ResponsibleParty,
		"target_date":       r.TargetDate,
	}
	if r.Status != "" {
		fields["status"] = r.Status
	}
	if r.Priority != "" {
		fields["priority"] = r.Priority
	}
	if r.MeetingID != nil && *r.MeetingID != 0 {
		fields["meeting_id"] = *r.MeetingID
	}
	return fields
}

type UpdateActionItemRequest struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	ResponsibleParty *string `json:"responsible_party"`
	TargetDate       *string `json:"target_date"`
	Status           *string `json:"status"`
	Priority         *string `json:"priority"`
	Notes            *string `json:"notes"`
}

// BlankKey names an indexed field the request would set to "".
func (r UpdateActionItemRequest) BlankKey() string {
	return blankKey(
		indexKey{"responsible_party", r.ResponsibleParty},
		indexKey{"status", r.Status},
	)
}

func (r UpdateActionItemRequest) Fields() map[string]any {
	fields := map[string]any{}
	setString(fields, "title", r.Title)
	setString(fields, "description", r.Description)
	setString(fields, "responsible_party", r.ResponsibleParty)
	setString(fields, "target_date", r.TargetDate)
	setString(fields, "status", r.Status)
	setString(fields, "priority", r.Priority)
	setString(fields, "notes", r.Notes)
	return fields
}

type ActionItemListResponse struct {
	ActionItems []document.Record `json:"action_items"`
	Total       int               `json:"total"`
}

type ActionItemCreatedResponse struct {
	ID         int64           `json:"id"`
	Created    bool            `json:"created"`
	ActionItem document.Record `json:"action_item"`
}

type ActionItemUpdatedResponse struct {
	ID         int64           `json:"id"`
	Updated    bool            `json:"updated"`
	ActionItem document.Record `json:"action_item"`
}
