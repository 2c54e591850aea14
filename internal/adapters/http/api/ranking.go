package api

import (
	"fmt"
	"net/http"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
)

const defaultRankingLimit = 10

// RankingHandler handles ranking requests.
type RankingHandler struct {
	deps RankingReader
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(deps RankingReader) *RankingHandler {
	return &RankingHandler{deps: deps}
}

// HandleGetRanking handles GET /ranking?key=year,season&limit=N requests.
func (h *RankingHandler) HandleGetRanking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	raw := r.URL.Query().Get("key")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: missing key", ErrBadRequest))
		return
	}
	key, err := model.ParseYearSeasonKey(raw)
	if err != nil {
		fail(w, err)
		return
	}
	n, err := queryInt(r, "limit", defaultRankingLimit)
	if err != nil {
		fail(w, err)
		return
	}
	entries, err := h.deps.TopN(r.Context(), key, n)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// RankHandler handles rank requests.
type RankHandler struct {
	deps RankingReader
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankingReader) *RankHandler {
	return &RankHandler{deps: deps}
}

// HandleGetRank handles GET /rank/{key}/{code} requests.
func (h *RankHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	key, err := pathKey(r)
	if err != nil {
		fail(w, err)
		return
	}
	entry, err := h.deps.Rank(r.Context(), key, r.PathValue("code"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
