package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/dimitrije/portal-api/internal/document"
	"github.com/dimitrije/portal-api/internal/models"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	tdb     *TestDB
	counter int64
}

// NewFixtures creates a new fixtures factory
func NewFixtures(tdb *TestDB) *Fixtures {
	return &Fixtures{tdb: tdb}
}

func (f *Fixtures) put(t *testing.T, table string, r document.Record) document.Record {
	t.Helper()
	f.counter++
	if _, ok := r["id"]; !ok {
		r["id"] = f.counter
	}

	created, err := document.NewAdapter(f.tdb.DB.Client, table).Create(context.Background(), r)
	if err != nil {
		t.Fatalf("failed to create %s record: %v", table, err)
	}
	return created
}

// RecordOption overrides fields of a test record
type RecordOption func(document.Record)

// With sets one field
func With(key string, value any) RecordOption {
	return func(r document.Record) {
		r[key] = value
	}
}

func apply(r document.Record, opts []RecordOption) document.Record {
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateDeliverable creates a deliverable in the given phase
func (f *Fixtures) CreateDeliverable(t *testing.T, month int, opts ...RecordOption) document.Record {
	t.Helper()
	return f.put(t, f.tdb.Config.Tables.Deliverables, apply(document.Record{
		"title":                 fmt.Sprintf("Deliverable %d", f.counter+1),
		"month":                 month,
		"phase_id":              month,
		"status":                "NOT_STARTED",
		"completion_percentage": 0,
	}, opts))
}

// CreateMetric creates a metric with a current and target value
func (f *Fixtures) CreateMetric(t *testing.T, name string, current, target float64, opts ...RecordOption) document.Record {
	t.Helper()
	return f.put(t, f.tdb.Config.Tables.Metrics, apply(document.Record{
		"name":    name,
		"current": current,
		"target":  target,
		"unit":    "%",
	}, opts))
}

// CreateSampleProject creates a sample project
func (f *Fixtures) CreateSampleProject(t *testing.T, deliveryMethod string, opts ...RecordOption) document.Record {
	t.Helper()
	return f.put(t, f.tdb.Config.Tables.SampleProjects, apply(document.Record{
		"name":            fmt.Sprintf("Project %d", f.counter+1),
		"delivery_method": deliveryMethod,
		"document_counts": map[string]any{"drawings": 10, "specs": 2},
		"size_mb":         120.5,
	}, opts))
}

// CreateUser creates a portal user linked to an identity provider subject
func (f *Fixtures) CreateUser(t *testing.T, auth0ID string, opts ...RecordOption) *models.User {
	t.Helper()
	r := f.put(t, f.tdb.Config.Tables.Users, apply(document.Record{
		"email":    fmt.Sprintf("user%d@example.com", f.counter+1),
		"name":     fmt.Sprintf("Test User %d", f.counter+1),
		"auth0_id": auth0ID,
		"role":     models.RoleClient,
	}, opts))
	return models.UserFromRecord(r)
}
