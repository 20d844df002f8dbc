package dto

import "github.com/dimitrije/portal-api/internal/document"

type CreateMeetingRequest struct {
	Title         string   `json:"title"`
	MeetingDate   string   `json:"meeting_date"`
	Attendees     []string `json:"attendees"`
	Summary       string   `json:"summary"`
	Topics        []string `json:"topics"`
	ActionItemIDs []int64  `json:"action_item_ids"`
}

// Fields returns the record fields for a new meeting.
func (r CreateMeetingRequest) Fields() map[string]any {
	ids := r.ActionItemIDs
	if ids == nil {
		ids = []int64{}
	}
	return map[string]any{
		"title":           r.Title,
		"meeting_date":    r.MeetingDate,
		"attendees":       nonNil(r.Attendees),
		"summary":         r.Summary,
		"topics":          nonNil(r.Topics),
		"action_item_ids": ids,
	}
}

type UpdateMeetingRequest struct {
	Title         *string   `json:"title"`
	MeetingDate   *string   `json:"meeting_date"`
	Attendees     *[]string `json:"attendees"`
	Summary       *string   `json:"summary"`
	Topics        *[]string `json:"topics"`
	ActionItemIDs *[]int64  `json:"action_item_ids"`
	Notes         *string   `json:"notes"`
}

// BlankKey names an indexed field the request would set to "".
func (r UpdateMeetingRequest) BlankKey() string {
	return blankKey(indexKey{"meeting_date", r.MeetingDate})
}

// Fields returns only the fields present in the request.
func (r UpdateMeetingRequest) Fields() map[string]any {
	fields := map[string]any{}
	setString(fields, "title", r.Title)
	setString(fields, "meeting_date", r.MeetingDate)
	setStrings(fields, "attendees", r.Attendees)
	setString(fields, "summary", r.Summary)
	setStrings(fields, "topics", r.Topics)
	if r.ActionItemIDs != nil {
		fields["action_item_ids"] = *r.ActionItemIDs
	}
	setString(fields, "notes", r.Notes)
	return fields
}

type MeetingListResponse struct {
	Meetings []document.Record `json:"meetings"`
	Total    int               `json:"total"`
}

type MeetingCreatedResponse struct {
	ID      int64           `json:"id"`
	Created bool            `json:"created"`
	Meeting document.Record `json:"meeting"`
}

type MeetingUpdatedResponse struct {
	ID      int64           `json:"id"`
	Updated bool            `json:"updated"`
	Meeting document.Record `json:"meeting"`
}
