package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/dimitrije/portal-api/internal/models"
	"github.com/dimitrije/portal-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardHandler_Summary(t *testing.T) {
	env := newTestEnv(t)
	env.dashboard.On("Summary", mock.Anything).Return(&models.DashboardSummary{
		ProjectHealth:        models.HealthOnTrack,
		CurrentPhase:         "MONTH_2",
		DaysRemaining:        10,
		CompletionPercentage: 55.5,
	}, nil)

	resp := env.client.GET("/api/dashboard", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	testutil.AssertJSON(t, resp, map[string]any{
		"projectHealth":        models.HealthOnTrack,
		"currentPhase":         "MONTH_2",
		"completionPercentage": 55.5,
	})
	env.assertExpectations(t)
}

func TestDashboardHandler_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.dashboard.On("Summary", mock.Anything).Return(nil, errors.New("scan failed"))
	env.dashboard.On("Overview", mock.Anything).Return(nil, errors.New("scan failed"))

	assert.Equal(t, http.StatusInternalServerError, env.client.GET("/api/dashboard", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, env.client.GET("/api/dashboard/overview", nil).Code)
}
