package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/insights"
)

// InsightsHandler serves cross-bucket views.
type InsightsHandler struct {
	deps InsightsReader
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(deps InsightsReader) *InsightsHandler {
	return &InsightsHandler{deps: deps}
}

// HandleSeries handles GET /series?season=Both&top=10 requests.
func (h *InsightsHandler) HandleSeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	season := r.URL.Query().Get("season")
	if season == "" {
		season = insights.SeasonBoth
	}
	top, err := queryInt(r, "top", insights.DefaultTopCountries)
	if err != nil {
		fail(w, err)
		return
	}
	series, err := h.deps.Series(r.Context(), season, top)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

// HandleMedalsVsGDP handles GET /gdp/{year} requests.
func (h *InsightsHandler) HandleMedalsVsGDP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		fail(w, fmt.Errorf("%w: invalid year %q", ErrBadRequest, r.PathValue("year")))
		return
	}
	points, err := h.deps.MedalsVsGDP(r.Context(), year)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}
