package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fntrack/fntrack/internal/api/response"
	"github.com/fntrack/fntrack/internal/domain"
	"github.com/fntrack/fntrack/internal/tracker"
)

// TaskHandler serves the read-only task views.
type TaskHandler struct {
	tracker *tracker.Tracker
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tr *tracker.Tracker) *TaskHandler {
	return &TaskHandler{tracker: tr}
}

// GetTask handles GET /v1/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	detail, err := h.tracker.ShowTask(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, detail)
}

// ListReady handles GET /v1/ready. With ?epic=<id> the view narrows to one
// epic; otherwise it spans every unblocked epic.
func (h *TaskHandler) ListReady(w http.ResponseWriter, r *http.Request) {
	var (
		tasks []*domain.Task
		err   error
	)
	if epicID := r.URL.Query().Get("epic"); epicID != "" {
		tasks, err = h.tracker.Ready(epicID)
	} else {
		tasks, err = h.tracker.ReadyAll()
	}
	if err != nil {
		response.Error(w, err)
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	response.OK(w, tasks)
}

// GetHistory handles GET /v1/tasks/{id}/history.
func (h *TaskHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.tracker.History(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	if entries == nil {
		entries = []*domain.AuditEntry{}
	}
	response.OK(w, entries)
}
