package handler

import (
	"net/http"

	"github.com/fntrack/fntrack/internal/api/response"
	"github.com/fntrack/fntrack/internal/validate"
)

// SystemHandler handles system-level operations.
type SystemHandler struct {
	validator *validate.Validator
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(v *validate.Validator) *SystemHandler {
	return &SystemHandler{validator: v}
}

// Health handles GET /v1/health.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}

// Validate handles GET /v1/validate. With ?epic=<id> the checks narrow to
// that epic and its tasks.
func (h *SystemHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var (
		result *validate.Result
		err    error
	)
	if epicID := r.URL.Query().Get("epic"); epicID != "" {
		result, err = h.validator.RunEpic(epicID)
	} else {
		result, err = h.validator.Run()
	}
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, result)
}
