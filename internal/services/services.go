package services

import (
	"github.com/dimitrije/portal-api/internal/config"
	"github.com/dimitrije/portal-api/internal/document"
)

// Set holds every resource service, wired to one document store.
type Set struct {
	Deliverables   *DeliverableService
	Metrics        *MetricService
	Meetings       *MeetingService
	ActionItems    *ActionItemService
	Updates        *StatusUpdateService
	SampleProjects *SampleProjectService
	Dashboard      *DashboardService
	Users          *UserService
}

// NewSet builds the services over the configured tables. Records are
// listed by id except meetings (latest meeting date first) and updates
// (newest first). Creatable resources number their records from the
// counters table.
func NewSet(client document.Client, objects ObjectPutter, tables config.TableConfig, bucket string) *Set {
	deliverables := document.NewAdapter(client, tables.Deliverables)
	metrics := document.NewAdapter(client, tables.Metrics)
	meetings := document.NewAdapter(client, tables.Meetings, document.WithSort(document.NewestFirst("meeting_date")))
	actionItems := document.NewAdapter(client, tables.ActionItems)
	updates := document.NewAdapter(client, tables.Updates, document.WithSort(document.NewestFirst(document.FieldCreatedAt)))

	return &Set{
		Deliverables:   NewDeliverableService(deliverables, NewEvidenceStore(objects, bucket)),
		Metrics:        NewMetricService(metrics),
		Meetings:       NewMeetingService(meetings, document.SequenceFor(client, tables.Counters, meetings)),
		ActionItems:    NewActionItemService(actionItems, document.SequenceFor(client, tables.Counters, actionItems)),
		Updates:        NewStatusUpdateService(updates, document.SequenceFor(client, tables.Counters, updates)),
		SampleProjects: NewSampleProjectService(document.NewAdapter(client, tables.SampleProjects)),
		Dashboard:      NewDashboardService(deliverables, metrics),
		Users:          NewUserService(document.NewAdapter(client, tables.Users)),
	}
}
