// Package api exposes a read-only HTTP view of the tracker for dashboards
// and tooling. Mutations stay on the CLI; records merge through version
// control, never over the wire.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/fntrack/fntrack/internal/api/handler"
	"github.com/fntrack/fntrack/internal/api/middleware"
	"github.com/fntrack/fntrack/internal/tracker"
	"github.com/fntrack/fntrack/internal/validate"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(tr *tracker.Tracker) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware chain
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.RealIP)

	systemHandler := handler.NewSystemHandler(validate.New(tr.Store()))
	epicHandler := handler.NewEpicHandler(tr)
	taskHandler := handler.NewTaskHandler(tr)

	r.Get("/v1/health", systemHandler.Health)
	r.Get("/v1/validate", systemHandler.Validate)

	r.Get("/v1/epics", epicHandler.ListEpics)
	r.Get("/v1/epics/{id}", epicHandler.GetEpic)
	r.Get("/v1/epics/{id}/tasks", epicHandler.ListTasks)

	r.Get("/v1/ready", taskHandler.ListReady)
	r.Get("/v1/tasks/{id}", taskHandler.GetTask)
	r.Get("/v1/tasks/{id}/history", taskHandler.GetHistory)

	return r
}
