package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

// refreshRequest is the optional body of POST /refresh.
type refreshRequest struct {
	MinYear int `json:"min_year"`
}

type refreshResponse struct {
	Status      string    `json:"status"`
	JobID       string    `json:"job_id"`
	MinYear     int       `json:"min_year"`
	RequestedAt time.Time `json:"requested_at"`
}

// RefreshHandler handles snapshot rebuild requests.
type RefreshHandler struct {
	deps Refresher
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps Refresher) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

// HandleRefresh handles POST /refresh requests.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request", errors.Join(ErrBadRequest, err))
		return
	}
	job, err := h.deps.Refresh(r.Context(), req.MinYear)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, refreshResponse{
		Status:      "accepted",
		JobID:       job.ID,
		MinYear:     job.MinYear,
		RequestedAt: job.RequestedAt,
	})
}
