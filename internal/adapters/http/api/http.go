// Package api serves the latest medal snapshot over HTTP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/derive"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/insights"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider
	SnapshotReader
	RankingReader
	InsightsReader
	Refresher
}

// Entry mirrors the read shape returned by ranking queries.
type Entry = types.Entry

// SnapshotReader exposes the published snapshot and its buckets.
type SnapshotReader interface {
	Latest(ctx context.Context) (*model.Snapshot, error)
	Keys(ctx context.Context) ([]model.YearSeasonKey, error)
	Bucket(ctx context.Context, key model.YearSeasonKey) (model.Bucket, error)
	Profile(ctx context.Context, key model.YearSeasonKey) (map[string]derive.Profile, error)
	Disciplines(ctx context.Context, key model.YearSeasonKey) ([]string, error)
}

// RankingReader exposes bucket rankings.
type RankingReader interface {
	TopN(ctx context.Context, key model.YearSeasonKey, n int) ([]Entry, error)
	Rank(ctx context.Context, key model.YearSeasonKey, code string) (Entry, error)
}

// InsightsReader exposes cross-bucket views.
type InsightsReader interface {
	Series(ctx context.Context, season string, top int) ([]insights.Series, error)
	MedalsVsGDP(ctx context.Context, year int) ([]model.GDPPoint, error)
}

// Refresher enqueues snapshot rebuilds.
type Refresher interface {
	Refresh(ctx context.Context, minYear int) (model.RefreshJob, error)
}

// Server wires HTTP routes for the medal API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	dataHandler     *DataHandler
	rankingHandler  *RankingHandler
	rankHandler     *RankHandler
	insightsHandler *InsightsHandler
	refreshHandler  *RefreshHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(deps),
		dataHandler:     NewDataHandler(deps),
		rankingHandler:  NewRankingHandler(deps),
		rankHandler:     NewRankHandler(deps),
		insightsHandler: NewInsightsHandler(deps),
		refreshHandler:  NewRefreshHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/data", MetricsMiddleware(s.dataHandler.HandleData, "data"))
	mux.HandleFunc("/buckets", MetricsMiddleware(s.dataHandler.HandleBuckets, "buckets"))
	mux.HandleFunc("/bucket/{key}", MetricsMiddleware(s.dataHandler.HandleBucket, "bucket"))
	mux.HandleFunc("/profile/{key}", MetricsMiddleware(s.dataHandler.HandleProfile, "profile"))
	mux.HandleFunc("/disciplines/{key}", MetricsMiddleware(s.dataHandler.HandleDisciplines, "disciplines"))
	mux.HandleFunc("/ranking", MetricsMiddleware(s.rankingHandler.HandleGetRanking, "ranking"))
	mux.HandleFunc("/rank/{key}/{code}", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
	mux.HandleFunc("/series", MetricsMiddleware(s.insightsHandler.HandleSeries, "series"))
	mux.HandleFunc("/gdp/{year}", MetricsMiddleware(s.insightsHandler.HandleMedalsVsGDP, "gdp"))
	mux.HandleFunc("/refresh", MetricsMiddleware(s.refreshHandler.HandleRefresh, "refresh"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// pathKey parses the {key} path value, "year,season".
func pathKey(r *http.Request) (model.YearSeasonKey, error) {
	return model.ParseYearSeasonKey(r.PathValue("key"))
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrBadRequest, name)
	}
	return n, nil
}
