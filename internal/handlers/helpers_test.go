package handlers

import (
	"testing"

	"github.com/dimitrije/portal-api/internal/config"
	"github.com/dimitrije/portal-api/internal/document"
	"github.com/dimitrije/portal-api/tests/testutil"
	"github.com/dimitrije/portal-api/tests/testutil/identity"
	"github.com/stretchr/testify/require"
)

const testSubject = "auth0|client-1"

type testEnv struct {
	deliverables   *testutil.MockDeliverableService
	metrics        *testutil.MockMetricService
	meetings       *testutil.MockMeetingService
	actionItems    *testutil.MockActionItemService
	updates        *testutil.MockStatusUpdateService
	sampleProjects *testutil.MockSampleProjectService
	dashboard      *testutil.MockDashboardService
	users          *testutil.MockUserService

	provider *identity.Provider
	anon     *testutil.HTTPTestClient
	client   *testutil.HTTPTestClient
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		deliverables:   new(testutil.MockDeliverableService),
		metrics:        new(testutil.MockMetricService),
		meetings:       new(testutil.MockMeetingService),
		actionItems:    new(testutil.MockActionItemService),
		updates:        new(testutil.MockStatusUpdateService),
		sampleProjects: new(testutil.MockSampleProjectService),
		dashboard:      new(testutil.MockDashboardService),
		users:          new(testutil.MockUserService),
	}

	verifier, provider := testutil.TestJWTService(t)
	env.provider = provider

	router, err := NewRouter(&config.Config{Env: "test"}, verifier, Services{
		Deliverables:   env.deliverables,
		Metrics:        env.metrics,
		Meetings:       env.meetings,
		ActionItems:    env.actionItems,
		Updates:        env.updates,
		SampleProjects: env.sampleProjects,
		Dashboard:      env.dashboard,
		Users:          env.users,
	})
	require.NoError(t, err)

	env.anon = testutil.NewHTTPTestClient(t, router)
	env.client = env.anon.WithToken(testutil.GenerateTestToken(t, provider, testSubject))
	return env
}

func (e *testEnv) assertExpectations(t *testing.T) {
	e.deliverables.AssertExpectations(t)
	e.metrics.AssertExpectations(t)
	e.meetings.AssertExpectations(t)
	e.actionItems.AssertExpectations(t)
	e.updates.AssertExpectations(t)
	e.sampleProjects.AssertExpectations(t)
	e.dashboard.AssertExpectations(t)
	e.users.AssertExpectations(t)
}

func rec(id int64, fields map[string]any) document.Record {
	r := document.Record{"id": id}
	for k, v := range fields {
		r[k] = v
	}
	return r
}
