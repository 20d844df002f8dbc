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

func TestDeliverableHandler_List_GroupsByMonth(t *testing.T) {
	env := newTestEnv(t)
	env.deliverables.On("List", mock.Anything).Return([]document.Record{
		rec(1, map[string]any{"month": int64(1)}),
		rec(2, map[string]any{"month": int64(3)}),
		rec(3, map[string]any{}),
		rec(4, map[string]any{"month": int64(7)}),
	}, nil)

	resp := env.client.GET("/api/deliverables", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	var body map[string][]map[string]any
	testutil.ParseJSON(t, resp, &body)
	assert.Len(t, body["month1"], 2)
	assert.Empty(t, body["month2"])
	assert.Len(t, body["month3"], 1)
	assert.Empty(t, body["month4"])
	assert.NotContains(t, body, "month7")
	env.assertExpectations(t)
}

func TestDeliverableHandler_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.anon.GET("/api/deliverables", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	env.deliverables.AssertNotCalled(t, "List", mock.Anything)
}

func TestDeliverableHandler_ListByMonth(t *testing.T) {
	env := newTestEnv(t)
	env.deliverables.On("ListByMonth", mock.Anything, 2).
		Return([]document.Record{rec(5, map[string]any{"phase_id": int64(2)})}, nil)

	resp := env.client.GET("/api/deliverables/month/2", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Month        int              `json:"month"`
		Deliverables []map[string]any `json:"deliverables"`
	}
	testutil.ParseJSON(t, resp, &body)
	assert.Equal(t, 2, body.Month)
	assert.Len(t, body.Deliverables, 1)
	env.assertExpectations(t)
}

func TestDeliverableHandler_ListByMonth_OutOfRange(t *testing.T) {
	env := newTestEnv(t)

	for _, month := range []string{"0", "5", "abc"} {
		t.Run(month, func(t *testing.T) {
			resp := env.client.GET("/api/deliverables/month/"+month, nil)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Contains(t, resp.Body.String(), "Phase must be 1, 2, 3, or 4")
		})
	}
	env.deliverables.AssertNotCalled(t, "ListByMonth", mock.Anything, mock.Anything)
}

func TestDeliverableHandler_Get(t *testing.T) {
	env := newTestEnv(t)
	env.deliverables.On("GetByID", mock.Anything, int64(7)).
		Return(rec(7, map[string]any{"title": "Symbol library"}), nil)
	env.deliverables.On("GetByID", mock.Anything, int64(8)).Return(nil, services.ErrNotFound)

	resp := env.client.GET("/api/deliverables/7", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	testutil.AssertJSON(t, resp, map[string]any{"id": float64(7), "title": "Symbol library"})

	resp = env.client.GET("/api/deliverables/8", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Deliverable not found")

	resp = env.client.GET("/api/deliverables/x", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	env.assertExpectations(t)
}

func TestDeliverableHandler_Update(t *testing.T) {
	env := newTestEnv(t)
	env.deliverables.On("UpdateStatus", mock.Anything, int64(3), "IN_PROGRESS", 75.0).
		Return(rec(3, map[string]any{"updated_at": "2026-01-13T10:00:00.000000"}), nil)

	resp := env.client.PUT("/api/deliverables/3", map[string]any{
		"status":                "IN_PROGRESS",
		"completion_percentage": 75,
	}, nil)

	require.Equal(t, http.StatusOK, resp.Code)
	testutil.AssertJSON(t, resp, map[string]any{
		"id":        float64(3),
		"updated":   true,
		"updatedAt": "2026-01-13T10:00:00.000000",
	})
	env.assertExpectations(t)
}

func TestDeliverableHandler_Update_Validation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.client.PUT("/api/deliverables/3", map[string]any{"status": "DONE"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = env.client.PUT("/api/deliverables/3", map[string]any{"completion_percentage": 10}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	env.deliverables.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeliverableHandler_Update_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.deliverables.On("UpdateStatus", mock.Anything, int64(99), "DONE", 100.0).Return(nil, services.ErrNotFound)

	resp := env.client.PUT("/api/deliverables/99", map[string]any{
		"status":                "DONE",
		"completion_percentage": 100,
	}, nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	env.assertExpectations(t)
}

func TestDeliverableHandler_UploadEvidence(t *testing.T) {
	env := newTestEnv(t)
	data := []byte("%PDF-1.7 test")
	env.deliverables.On("AttachEvidence", mock.Anything, int64(4), "report.pdf", "application/pdf", data).
		Return("deliverables/4/abc-report.pdf", rec(4, map[string]any{
			"evidence": []any{"deliverables/4/abc-report.pdf"},
		}), nil)

	resp := env.client.Raw(http.MethodPost, "/api/deliverables/4/evidence?filename=report.pdf", "application/pdf", data)

	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var body struct {
		DeliverableID int64    `json:"deliverable_id"`
		Key           string   `json:"key"`
		Evidence      []string `json:"evidence"`
	}
	testutil.ParseJSON(t, resp, &body)
	assert.Equal(t, int64(4), body.DeliverableID)
	assert.Equal(t, "deliverables/4/abc-report.pdf", body.Key)
	assert.Equal(t, []string{"deliverables/4/abc-report.pdf"}, body.Evidence)
	env.assertExpectations(t)
}

func TestDeliverableHandler_UploadEvidence_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.deliverables.On("AttachEvidence", mock.Anything, int64(1), "a.txt", "text/plain", mock.Anything).
		Return("", nil, services.ErrEvidenceDisabled)
	env.deliverables.On("AttachEvidence", mock.Anything, int64(2), "a.txt", "text/plain", mock.Anything).
		Return("", nil, services.ErrNotFound)
	env.deliverables.On("AttachEvidence", mock.Anything, int64(3), "a.txt", "text/plain", mock.Anything).
		Return("", nil, errors.New("s3 down"))

	tests := []struct {
		name string
		path string
		body []byte
		want int
	}{
		{"missing filename", "/api/deliverables/1/evidence", []byte("x"), http.StatusBadRequest},
		{"empty body", "/api/deliverables/1/evidence?filename=a.txt", nil, http.StatusBadRequest},
		{"uploads disabled", "/api/deliverables/1/evidence?filename=a.txt", []byte("x"), http.StatusServiceUnavailable},
		{"unknown deliverable", "/api/deliverables/2/evidence?filename=a.txt", []byte("x"), http.StatusNotFound},
		{"store failure", "/api/deliverables/3/evidence?filename=a.txt", []byte("x"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.client.Raw(http.MethodPost, tc.path, "text/plain", tc.body)
			assert.Equal(t, tc.want, resp.Code, resp.Body.String())
		})
	}
}
