package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dimitrije/portal-api/internal/document"
	"github.com/dimitrije/portal-api/internal/models"
)

const overviewDateLayout = "2006-01-02T15:04:05"

var (
	defaultProjectStart = time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	defaultProjectEnd   = time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)
)

var dueDateLayouts = []string{
	"2006-01-02",
	document.TimestampLayout,
	overviewDateLayout,
	time.RFC3339,
}

// DashboardService derives the project summary from the deliverable and
// metric tables.
type DashboardService struct {
	deliverables *document.Adapter
	metrics      *document.Adapter
	now          func() time.Time
}

func NewDashboardService(deliverables, metrics *document.Adapter) *DashboardService {
	return &DashboardService{
		deliverables: deliverables,
		metrics:      metrics,
		now:          time.Now,
	}
}

func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	deliverables, err := s.deliverables.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	metrics, err := s.metrics.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildSummary(deliverables, metrics, s.now()), nil
}

func (s *DashboardService) Overview(ctx context.Context) (*models.ProjectOverview, error) {
	deliverables, err := s.deliverables.ScanAll(ctx)
	if err != nil {
		return nil, err
	}

	start, end := defaultProjectStart, defaultProjectEnd
	if t, ok := earliest(deliverables, "start_date"); ok {
		start = t
	}
	if t, ok := latest(deliverables, "due_date"); ok {
		end = t
	}

	return &models.ProjectOverview{
		ProjectName: "AI-Native Estimation Assistant",
		Client:      "Client Company",
		Partner:     "Partner Organization",
		StartDate:   start.Format(overviewDateLayout),
		EndDate:     end.Format(overviewDateLayout),
		Duration:    "3 Months",
		Investment:  "Per SOW agreement",
		Status:      "ACTIVE",
		Team: models.ProjectTeam{
			Partner: []string{"Technical Lead", "AI Engineer", "Full-Stack Developer", "Project Manager"},
			Client:  []string{"Project Sponsor", "Lead Estimator", "Domain Experts", "Data Support"},
		},
		SuccessCriteria: []string{
			"≥80% accuracy in parsing standard drawings",
			"≥25% reduction in time for preliminary estimates",
			"≥90% estimator engagement/satisfaction score",
			"Defined roadmap for full production deployment",
		},
	}, nil
}

// BuildSummary computes the dashboard at time now. The current phase is the
// lowest one with work in progress, falling back to the lowest phase that
// has deliverables at all.
func BuildSummary(deliverables, metrics []document.Record, now time.Time) *models.DashboardSummary {
	phases := map[int64][]document.Record{}
	var current int64
	for _, d := range deliverables {
		p := phaseOf(d)
		phases[p] = append(phases[p], d)
		if d.String("status") == "IN_PROGRESS" && (current == 0 || p < current) {
			current = p
		}
	}
	if current == 0 {
		for p := range phases {
			if current == 0 || p < current {
				current = p
			}
		}
	}
	if current == 0 {
		current = 1
	}

	var completion float64
	if inPhase := phases[current]; len(inPhase) > 0 {
		for _, d := range inPhase {
			completion += d.Float("completion_percentage")
		}
		completion = math.Round(completion/float64(len(inPhase))*100) / 100
	}

	days := 0
	if end, ok := latest(phases[current], "due_date"); ok {
		days = int(math.Floor(end.Sub(now).Hours() / 24))
	}

	byName := map[string]float64{}
	for _, m := range metrics {
		byName[m.String("name")] = m.Float("current")
	}

	return &models.DashboardSummary{
		ProjectHealth:        ProjectHealth(completion, days),
		CurrentPhase:         fmt.Sprintf("MONTH_%d", current),
		DaysRemaining:        max(0, days),
		CompletionPercentage: completion,
		Metrics: models.DashboardMetrics{
			DrawingParsingAccuracy: byName["Drawing Parsing Accuracy"],
			TimeReductionAchieved:  byName["Time Reduction"],
			EstimatorSatisfaction:  byName["Estimator Satisfaction"],
		},
		NextMilestone: nextMilestone(deliverables),
		LastUpdated:   document.FormatTimestamp(now),
	}
}

// ProjectHealth rates a phase by its completion and the days left in it.
func ProjectHealth(completion float64, daysRemaining int) string {
	switch {
	case completion < 20 && daysRemaining < 10:
		return models.HealthAtRisk
	case completion < 10 && daysRemaining < 5:
		return models.HealthDelayed
	}
	return models.HealthOnTrack
}

// nextMilestone is the open deliverable due soonest. Undated deliverables
// only count when nothing open has a due date.
func nextMilestone(deliverables []document.Record) models.Milestone {
	var next document.Record
	var nextDue time.Time
	for _, d := range deliverables {
		status := d.String("status")
		if status != "NOT_STARTED" && status != "IN_PROGRESS" {
			continue
		}
		due, dated := parseDate(d.String("due_date"))
		switch {
		case next == nil:
		case dated && (nextDue.IsZero() || due.Before(nextDue)):
		default:
			continue
		}
		next = d
		if dated {
			nextDue = due
		}
	}

	if next == nil {
		return models.Milestone{
			Name:     "No upcoming milestones",
			Status:   "NOT_STARTED",
			Blockers: []string{},
		}
	}

	name := next.String("name")
	if name == "" {
		name = next.String("title")
	}
	m := models.Milestone{
		Name:     name,
		Status:   next.String("status"),
		Blockers: next.Strings("blockers"),
	}
	if due := next.String("due_date"); due != "" {
		m.DueDate = &due
	}
	if m.Blockers == nil {
		m.Blockers = []string{}
	}
	return m
}

func phaseOf(d document.Record) int64 {
	if m, ok := d.Int("month"); ok && m > 0 {
		return m
	}
	if p, ok := d.Int("phase_id"); ok && p > 0 {
		return p
	}
	return 1
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func earliest(records []document.Record, field string) (time.Time, bool) {
	var out time.Time
	found := false
	for _, r := range records {
		if t, ok := parseDate(r.String(field)); ok && (!found || t.Before(out)) {
			out, found = t, true
		}
	}
	return out, found
}

func latest(records []document.Record, field string) (time.Time, bool) {
	var out time.Time
	found := false
	for _, r := range records {
		if t, ok := parseDate(r.String(field)); ok && (!found || t.After(out)) {
			out, found = t, true
		}
	}
	return out, found
}
