package handlers

import (
	"context"

	"github.com/dimitrije/portal-api/internal/document"
	"github.com/dimitrije/portal-api/internal/models"
	"github.com/dimitrije/portal-api/internal/services"
)

// DeliverableServiceInterface defines the methods used by handlers from DeliverableService
type DeliverableServiceInterface interface {
	List(ctx context.Context) ([]document.Record, error)
	ListByMonth(ctx context.Context, month int) ([]document.Record, error)
	GetByID(ctx context.Context, id int64) (document.Record, error)
	UpdateStatus(ctx context.Context, id int64, status string, completion float64) (document.Record, error)
	AttachEvidence(ctx context.Context, id int64, filename, contentType string, data []byte) (string, document.Record, error)
}

// MetricServiceInterface defines the methods used by handlers from MetricService
type MetricServiceInterface interface {
	Summaries(ctx context.Context) (map[string]models.Metric, error)
	GetByID(ctx context.Context, id int64) (document.Record, error)
	RecordValue(ctx context.Context, id int64, value float64, notes string) (document.Record, error)
}

// MeetingServiceInterface defines the methods used by handlers from MeetingService
type MeetingServiceInterface interface {
	List(ctx context.Context) ([]document.Record, error)
	ListByDate(ctx context.Context, date string) ([]document.Record, error)
	GetByID(ctx context.Context, id int64) (document.Record, error)
	Create(ctx context.Context, fields map[string]any) (document.Record, error)
	Update(ctx context.Context, id int64, fields map[string]any) (document.Record, error)
	Delete(ctx context.Context, id int64) error
}

// ActionItemServiceInterface defines the methods used by handlers from ActionItemService
type ActionItemServiceInterface interface {
	List(ctx context.Context) ([]document.Record, error)
	ListByStatus(ctx context.Context, status string) ([]document.Record, error)
	ListByResponsibleParty(ctx context.Context, party string) ([]document.Record, error)
	ListByMeeting(ctx context.Context, meetingID int64) ([]document.Record, error)
	GetByID(ctx context.Context, id int64) (document.Record, error)
	Create(ctx context.Context, fields map[string]any) (document.Record, error)
	Update(ctx context.Context, id int64, fields map[string]any) (document.Record, error)
	Delete(ctx context.Context, id int64) error
}

// StatusUpdateServiceInterface defines the methods used by handlers from StatusUpdateService
type StatusUpdateServiceInterface interface {
	List(ctx context.Context, updateType string) ([]document.Record, error)
	GetByID(ctx context.Context, id int64) (document.Record, error)
	Create(ctx context.Context, in services.NewStatusUpdate) (document.Record, error)
	Acknowledge(ctx context.Context, id int64, email string) (string, bool, error)
	Delete(ctx context.Context, id int64) error
}

// SampleProjectServiceInterface defines the methods used by handlers from SampleProjectService
type SampleProjectServiceInterface interface {
	List(ctx context.Context, deliveryMethod string) ([]document.Record, error)
	GetByID(ctx context.Context, id int64) (document.Record, error)
	Stats(ctx context.Context) (*models.SampleProjectStats, error)
}

// DashboardServiceInterface defines the methods used by handlers from DashboardService
type DashboardServiceInterface interface {
	Summary(ctx context.Context) (*models.DashboardSummary, error)
	Overview(ctx context.Context) (*models.ProjectOverview, error)
}

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	GetByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error)
}

// Compile-time checks
var (
	_ DeliverableServiceInterface   = (*services.DeliverableService)(nil)
	_ MetricServiceInterface        = (*services.MetricService)(nil)
	_ MeetingServiceInterface       = (*services.MeetingService)(nil)
	_ ActionItemServiceInterface    = (*services.ActionItemService)(nil)
	_ StatusUpdateServiceInterface  = (*services.StatusUpdateService)(nil)
	_ SampleProjectServiceInterface = (*services.SampleProjectService)(nil)
	_ DashboardServiceInterface     = (*services.DashboardService)(nil)
	_ UserServiceInterface          = (*services.UserService)(nil)
)
