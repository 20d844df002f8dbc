package handlers

import (
	"fmt"
	"net/http"

	"github.com/dimitrije/portal-api/internal/config"
	authmw "github.com/dimitrije/portal-api/internal/middleware"
	"github.com/dimitrije/portal-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

// Services bundles what the routes need from the service layer.
type Services struct {
	Deliverables   DeliverableServiceInterface
	Metrics        MetricServiceInterface
	Meetings       MeetingServiceInterface
	ActionItems    ActionItemServiceInterface
	Updates        StatusUpdateServiceInterface
	SampleProjects SampleProjectServiceInterface
	Dashboard      DashboardServiceInterface
	Users          UserServiceInterface
}

func NewRouter(cfg *config.Config, verifier authmw.TokenVerifier, svc Services) (http.Handler, error) {
	feed, err := LoadJerryFeed()
	if err != nil {
		return nil, fmt.Errorf("failed to load jerry feed: %w", err)
	}

	deliverableHandler := NewDeliverableHandler(svc.Deliverables)
	metricHandler := NewMetricHandler(svc.Metrics)
	meetingHandler := NewMeetingHandler(svc.Meetings)
	actionItemHandler := NewActionItemHandler(svc.ActionItems)
	updateHandler := NewStatusUpdateHandler(svc.Updates)
	projectHandler := NewSampleProjectHandler(svc.SampleProjects)
	dashboardHandler := NewDashboardHandler(svc.Dashboard)
	userHandler := NewUserHandler(svc.Users)
	jerryHandler := NewJerryHandler(feed)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins(),
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", authmw.RequestIDHeader},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())
	app.Use(authmw.RequestID())

	app.Get("/", Root)

	api := app.Group("/api")
	api.Get("/health", Health)

	public := api.Group("")
	public.Use(authmw.OptionalAuth(verifier))

	public.Get("/jerry", jerryHandler.Status)
	public.Get("/jerry/metrics", jerryHandler.Metrics)
	public.Get("/jerry/roadmap", jerryHandler.Roadmap)

	protected := api.Group("")
	protected.Use(authmw.Auth(verifier))

	protected.Get("/users/me", userHandler.GetMe)

	protected.Get("/dashboard", dashboardHandler.Summary)
	protected.Get("/dashboard/overview", dashboardHandler.Overview)

	protected.Get("/deliverables", deliverableHandler.List)
	protected.Get("/deliverables/:id", deliverableHandler.Get)
	protected.Get("/deliverables/:id/:month", segment("id", "month", deliverableHandler.ListByMonth, routeNotFound))
	protected.Put("/deliverables/:id", deliverableHandler.Update)
	protected.Post("/deliverables/:id/evidence", deliverableHandler.UploadEvidence)

	protected.Get("/metrics", metricHandler.List)
	protected.Get("/metrics/learning", metricHandler.Learning)
	protected.Get("/metrics/history/:name", metricHandler.History)
	protected.Post("/metrics/:id", metricHandler.Record)

	protected.Get("/meetings", meetingHandler.List)
	protected.Post("/meetings", meetingHandler.Create)
	protected.Get("/meetings/:id", meetingHandler.Get)
	protected.Put("/meetings/:id", meetingHandler.Update)
	protected.Delete("/meetings/:id", meetingHandler.Delete)

	protected.Get("/action-items", actionItemHandler.List)
	protected.Post("/action-items", actionItemHandler.Create)
	protected.Get("/action-items/:id", actionItemHandler.Get)
	protected.Put("/action-items/:id", actionItemHandler.Update)
	protected.Delete("/action-items/:id", actionItemHandler.Delete)

	protected.Get("/updates", updateHandler.List)
	protected.Post("/updates", updateHandler.Create)
	protected.Get("/updates/:id", updateHandler.Get)
	protected.Post("/updates/:id/acknowledge", updateHandler.Acknowledge)
	protected.Delete("/updates/:id", updateHandler.Delete)

	protected.Get("/sample-projects", projectHandler.List)
	protected.Get("/sample-projects/:id", segment("id", "stats", projectHandler.Stats, projectHandler.Get))

	return app, nil
}

// segment dispatches on a wildcard that can also hold a fixed name. drift
// does not allow a static segment next to a wildcard one at the same depth,
// so /x/stats and /x/:id share the /x/:id route.
func segment(param, name string, fixed, other drift.HandlerFunc) drift.HandlerFunc {
	return func(c *drift.Context) {
		if c.Param(param) == name {
			fixed(c)
			return
		}
		other(c)
	}
}

func routeNotFound(c *drift.Context) {
	c.NotFound("Not Found")
}

// ServicesFrom exposes a service set through the handler interfaces.
func ServicesFrom(set *services.Set) Services {
	return Services{
		Deliverables:   set.Deliverables,
		Metrics:        set.Metrics,
		Meetings:       set.Meetings,
		ActionItems:    set.ActionItems,
		Updates:        set.Updates,
		SampleProjects: set.SampleProjects,
		Dashboard:      set.Dashboard,
		Users:          set.Users,
	}
}
