package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fntrack/fntrack/internal/api/response"
	"github.com/fntrack/fntrack/internal/domain"
	"github.com/fntrack/fntrack/internal/tracker"
)

// EpicHandler serves the read-only epic views.
type EpicHandler struct {
	tracker *tracker.Tracker
}

// NewEpicHandler creates a new EpicHandler.
func NewEpicHandler(tr *tracker.Tracker) *EpicHandler {
	return &EpicHandler{tracker: tr}
}

// ListEpics handles GET /v1/epics.
func (h *EpicHandler) ListEpics(w http.ResponseWriter, r *http.Request) {
	epics, err := h.tracker.Store().ListEpics()
	if err != nil {
		response.Error(w, err)
		return
	}
	if epics == nil {
		epics = []*domain.Epic{}
	}
	response.OK(w, epics)
}

// GetEpic handles GET /v1/epics/{id}.
func (h *EpicHandler) GetEpic(w http.ResponseWriter, r *http.Request) {
	detail, err := h.tracker.ShowEpic(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, detail)
}

// ListTasks handles GET /v1/epics/{id}/tasks.
func (h *EpicHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	epic, err := h.tracker.Store().GetEpic(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	tasks, err := h.tracker.Store().ListTasks(epic.ID)
	if err != nil {
		response.Error(w, err)
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	response.OK(w, tasks)
}
