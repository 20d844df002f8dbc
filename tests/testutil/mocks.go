package testutil

import (
	"context"

	"github.com/dimitrije/portal-api/internal/document"
	"github.com/dimitrije/portal-api/internal/models"
	"github.com/dimitrije/portal-api/internal/services"
	"github.com/stretchr/testify/mock"
)

func record(args mock.Arguments, i int) document.Record {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(document.Record)
}

func records(args mock.Arguments, i int) []document.Record {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).([]document.Record)
}

// MockDeliverableService mocks the DeliverableService
type MockDeliverableService struct {
	mock.Mock
}

func (m *MockDeliverableService) List(ctx context.Context) ([]document.Record, error) {
	args := m.Called(ctx)
	return records(args, 0), args.Error(1)
}

func (m *MockDeliverableService) ListByMonth(ctx context.Context, month int) ([]document.Record, error) {
	args := m.Called(ctx, month)
	return records(args, 0), args.Error(1)
}

func (m *MockDeliverableService) GetByID(ctx context.Context, id int64) (document.Record, error) {
	args := m.Called(ctx, id)
	return record(args, 0), args.Error(1)
}

func (m *MockDeliverableService) UpdateStatus(ctx context.Context, id int64, status string, completion float64) (document.Record, error) {
	args := m.Called(ctx, id, status, completion)
	return record(args, 0), args.Error(1)
}

func (m *MockDeliverableService) AttachEvidence(ctx context.Context, id int64, filename, contentType string, data []byte) (string, document.Record, error) {
	args := m.Called(ctx, id, filename, contentType, data)
	return args.String(0), record(args, 1), args.Error(2)
}

// MockMetricService mocks the MetricService
type MockMetricService struct {
	mock.Mock
}

func (m *MockMetricService) Summaries(ctx context.Context) (map[string]models.Metric, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.Metric), args.Error(1)
}

func (m *MockMetricService) GetByID(ctx context.Context, id int64) (document.Record, error) {
	args := m.Called(ctx, id)
	return record(args, 0), args.Error(1)
}

func (m *MockMetricService) RecordValue(ctx context.Context, id int64, value float64, notes string) (document.Record, error) {
	args := m.Called(ctx, id, value, notes)
	return record(args, 0), args.Error(1)
}

// MockMeetingService mocks the MeetingService
type MockMeetingService struct {
	mock.Mock
}

func (m *MockMeetingService) List(ctx context.Context) ([]document.Record, error) {
	args := m.Called(ctx)
	return records(args, 0), args.Error(1)
}

func (m *MockMeetingService) ListByDate(ctx context.Context, date string) ([]document.Record, error) {
	args := m.Called(ctx, date)
	return records(args, 0), args.Error(1)
}

func (m *MockMeetingService) GetByID(ctx context.Context, id int64) (document.Record, error) {
	args := m.Called(ctx, id)
	return record(args, 0), args.Error(1)
}

func (m *MockMeetingService) Create(ctx context.Context, fields map[string]any) (document.Record, error) {
	args := m.Called(ctx, fields)
	return record(args, 0), args.Error(1)
}

func (m *MockMeetingService) Update(ctx context.Context, id int64, fields map[string]any) (document.Record, error) {
	args := m.Called(ctx, id, fields)
	return record(args, 0), args.Error(1)
}

func (m *MockMeetingService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockActionItemService mocks the ActionItemService
type MockActionItemService struct {
	mock.Mock
}

func (m *MockActionItemService) List(ctx context.Context) ([]document.Record, error) {
	args := m.Called(ctx)
	return records(args, 0), args.Error(1)
}

func (m *MockActionItemService) ListByStatus(ctx context.Context, status string) ([]document.Record, error) {
	args := m.Called(ctx, status)
	return records(args, 0), args.Error(1)
}

func (m *MockActionItemService) ListByResponsibleParty(ctx context.Context, party string) ([]document.Record, error) {
	args := m.Called(ctx, party)
	return records(args, 0), args.Error(1)
}

func (m *MockActionItemService) ListByMeeting(ctx context.Context, meetingID int64) ([]document.Record, error) {
	args := m.Called(ctx, meetingID)
	return records(args, 0), args.Error(1)
}

func (m *MockActionItemService) GetByID(ctx context.Context, id int64) (document.Record, error) {
	args := m.Called(ctx, id)
	return record(args, 0), args.Error(1)
}

func (m *MockActionItemService) Create(ctx context.Context, fields map[string]any) (document.Record, error) {
	args := m.Called(ctx, fields)
	return record(args, 0), args.Error(1)
}

func (m *MockActionItemService) Update(ctx context.Context, id int64, fields map[string]any) (document.Record, error) {
	args := m.Called(ctx, id, fields)
	return record(args, 0), args.Error(1)
}

func (m *MockActionItemService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStatusUpdateService mocks the StatusUpdateService
type MockStatusUpdateService struct {
	mock.Mock
}

func (m *MockStatusUpdateService) List(ctx context.Context, updateType string) ([]document.Record, error) {
	args := m.Called(ctx, updateType)
	return records(args, 0), args.Error(1)
}

func (m *MockStatusUpdateService) GetByID(ctx context.Context, id int64) (document.Record, error) {
	args := m.Called(ctx, id)
	return record(args, 0), args.Error(1)
}

func (m *MockStatusUpdateService) Create(ctx context.Context, in services.NewStatusUpdate) (document.Record, error) {
	args := m.Called(ctx, in)
	return record(args, 0), args.Error(1)
}

func (m *MockStatusUpdateService) Acknowledge(ctx context.Context, id int64, email string) (string, bool, error) {
	args := m.Called(ctx, id, email)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStatusUpdateService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSampleProjectService mocks the SampleProjectService
type MockSampleProjectService struct {
	mock.Mock
}

func (m *MockSampleProjectService) List(ctx context.Context, deliveryMethod string) ([]document.Record, error) {
	args := m.Called(ctx, deliveryMethod)
	return records(args, 0), args.Error(1)
}

func (m *MockSampleProjectService) GetByID(ctx context.Context, id int64) (document.Record, error) {
	args := m.Called(ctx, id)
	return record(args, 0), args.Error(1)
}

func (m *MockSampleProjectService) Stats(ctx context.Context) (*models.SampleProjectStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SampleProjectStats), args.Error(1)
}

// MockDashboardService mocks the DashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardSummary), args.Error(1)
}

func (m *MockDashboardService) Overview(ctx context.Context) (*models.ProjectOverview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectOverview), args.Error(1)
}

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error) {
	args := m.Called(ctx, auth0ID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
