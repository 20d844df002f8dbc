package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/dimitrije/portal-api/internal/document"
	"github.com/dimitrije/portal-api/internal/services"
	"github.com/dimitrije/portal-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMeetingHandler_List(t *testing.T) {
	env := newTestEnv(t)
	env.meetings.On("List", mock.Anything).Return([]document.Record{rec(2, nil), rec(1, nil)}, nil)
	env.meetings.On("ListByDate", mock.Anything, "2026-01-13").Return([]document.Record{rec(2, nil)}, nil)

	resp := env.client.GET("/api/meetings", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	testutil.AssertJSON(t, resp, map[string]any{"total": float64(2)})

	resp = env.client.GET("/api/meetings?meeting_date=2026-01-13", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	testutil.AssertJSON(t, resp, map[string]any{"total": float64(1)})

	env.meetings.AssertNumberOfCalls(t, "List", 1)
	env.assertExpectations(t)
}

func TestMeetingHandler_List_Failure(t *testing.T) {
	env := newTestEnv(t)
	env.meetings.On("List", mock.Anything).Return(nil, errors.New("throttled"))

	resp := env.client.GET("/api/meetings", nil)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestMeetingHandler_Create(t *testing.T) {
	env := newTestEnv(t)
	env.meetings.On("Create", mock.Anything, mock.MatchedBy(func(f map[string]any) bool {
		ids, ok := f["action_item_ids"].([]int64)
		return f["title"] == "Kickoff" && f["meeting_date"] == "2026-01-13" && ok && len(ids) == 0
	})).Return(rec(6, map[string]any{"title": "Kickoff"}), nil)

	resp := env.client.POST("/api/meetings", map[string]any{
		"title":        "Kickoff",
		"meeting_date": "2026-01-13",
		"attendees":    []string{"Sponsor"},
		"summary":      "Scope agreed",
		"topics":       []string{"scope"},
	}, nil)

	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var body struct {
		ID      int64          `json:"id"`
		Created bool           `json:"created"`
		Meeting map[string]any `json:"meeting"`
	}
	testutil.ParseJSON(t, resp, &body)
	assert.Equal(t, int64(6), body.ID)
	assert.True(t, body.Created)
	assert.Equal(t, "Kickoff", body.Meeting["title"])
	env.assertExpectations(t)
}

func TestMeetingHandler_Create_Validation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.client.POST("/api/meetings", map[string]any{"title": "No date"}, nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	env.meetings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMeetingHandler_Update_SendsOnlyPresentFields(t *testing.T) {
	env := newTestEnv(t)
	env.meetings.On("Update", mock.Anything, int64(4), map[string]any{"notes": "follow up"}).
		Return(rec(4, map[string]any{"notes": "follow up"}), nil)

	resp := env.client.PUT("/api/meetings/4", map[string]any{"notes": "follow up"}, nil)

	require.Equal(t, http.StatusOK, resp.Code)
	testutil.AssertJSON(t, resp, map[string]any{"id": float64(4), "updated": true})
	env.assertExpectations(t)
}

func TestMeetingHandler_GetAndDelete_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.meetings.On("GetByID", mock.Anything, int64(5)).Return(nil, services.ErrNotFound)
	env.meetings.On("Delete", mock.Anything, int64(5)).Return(services.ErrNotFound)
	env.meetings.On("Update", mock.Anything, int64(5), mock.Anything).Return(nil, services.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, env.client.GET("/api/meetings/5", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.client.DELETE("/api/meetings/5", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.client.PUT("/api/meetings/5", map[string]any{"title": "x"}, nil).Code)
	env.assertExpectations(t)
}

func TestMeetingHandler_Delete(t *testing.T) {
	env := newTestEnv(t)
	env.meetings.On("Delete", mock.Anything, int64(3)).Return(nil)

	resp := env.client.DELETE("/api/meetings/3", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"id":3,"deleted":true}`, resp.Body.String())
	env.assertExpectations(t)
}

func TestMeetingHandler_Update_RejectsBlankMeetingDate(t *testing.T) {
	env := newTestEnv(t)

	resp := env.client.PUT("/api/meetings/4", map[string]any{"meeting_date": ""}, nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "meeting_date cannot be empty")
	env.meetings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
