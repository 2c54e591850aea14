// Package service wires the pipeline, the snapshot store and the refresh
// workers behind the operations used by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PolySpeedRunners/INF8808-Project/internal/adapters/mq/queue"
	"github.com/PolySpeedRunners/INF8808-Project/internal/adapters/mq/worker"
	"github.com/PolySpeedRunners/INF8808-Project/internal/adapters/repository"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/derive"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/insights"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/types"
	"github.com/PolySpeedRunners/INF8808-Project/pkg/logger"
	"github.com/PolySpeedRunners/INF8808-Project/pkg/metrics"
)

const (
	defaultWorkerCount = 1
	defaultQueueSize   = 8
)

// Builder runs the pipeline. minYear 0 means its configured default.
type Builder interface {
	Run(ctx context.Context, minYear int) (*model.Snapshot, error)
}

// refreshStatus is the outcome of the last refresh job.
type refreshStatus struct {
	JobID      string    `json:"jobId"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Service owns the latest snapshot and rebuilds it on request.
type Service struct {
	mu sync.RWMutex

	builder Builder
	store   repository.Store
	queue   *queue.InMemoryQueue
	pool    *worker.Pool

	workerCount int
	queueSize   int
	scaleKeys   []string

	started bool

	// refreshMu guards lastRefresh; workers report while Stop holds mu.
	refreshMu   sync.Mutex
	lastRefresh *refreshStatus

	logger logger.Logger
}

// New constructs a Service around a pipeline.
func New(builder Builder, opts ...Option) *Service {
	s := &Service{
		builder:     builder,
		store:       repository.NewMemoryStore(),
		workerCount: defaultWorkerCount,
		queueSize:   defaultQueueSize,
		scaleKeys:   derive.DefaultScaleKeys,
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build runs the pipeline once and publishes the snapshot.
func (s *Service) Build(ctx context.Context, minYear int) (*model.Snapshot, error) {
	snap, err := s.builder.Run(ctx, minYear)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	return snap, nil
}

// Start builds the initial snapshot and starts the refresh workers.
// ctx bounds the worker lifetime.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if err := derive.ValidateKeys(s.scaleKeys); err != nil {
		return err
	}

	s.logger.Info(ctx, "starting medal service...")
	snap, err := s.Build(ctx, 0)
	if err != nil {
		return fmt.Errorf("initial build: %w", err)
	}

	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, s.builder, s.store,
		worker.WithLogger(s.logger),
		worker.WithResultFunc(s.recordRefresh),
	)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "medal service started",
		logger.String("run_id", snap.RunID),
		logger.Int("buckets", len(snap.Data)),
		logger.Int("workers", s.workerCount),
		logger.Int("queue_size", s.queueSize),
	)
	return nil
}

// Stop closes the refresh queue and waits for the workers.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping medal service...")
	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown", logger.Error(err))
	}
	s.started = false
	s.logger.Info(ctx, "medal service stopped")
}

func (s *Service) recordRefresh(ctx context.Context, job worker.Job, _ *model.Snapshot, err error) {
	st := &refreshStatus{JobID: job.ID, Status: "success", FinishedAt: time.Now()}
	if err != nil {
		st.Status = "failed"
		st.Error = err.Error()
	}
	s.refreshMu.Lock()
	s.lastRefresh = st
	s.refreshMu.Unlock()
	metrics.UpdateQueueSize(s.queue.Len(ctx))
}

// Refresh enqueues a rebuild keeping results from minYear on. minYear 0
// keeps the pipeline default.
func (s *Service) Refresh(ctx context.Context, minYear int) (model.RefreshJob, error) {
	if minYear < 0 {
		return model.RefreshJob{}, fmt.Errorf("%w: %d", ErrInvalidMinYear, minYear)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return model.RefreshJob{}, ErrNotStarted
	}

	job := model.RefreshJob{ID: uuid.NewString(), MinYear: minYear, RequestedAt: time.Now()}
	if !s.queue.Enqueue(ctx, job) {
		return model.RefreshJob{}, ErrQueueFull
	}
	metrics.UpdateQueueSize(s.queue.Len(ctx))
	s.logger.Debug(ctx, "refresh enqueued", logger.String("job_id", job.ID), logger.Int("min_year", minYear))
	return job, nil
}

// Latest returns the published snapshot.
func (s *Service) Latest(ctx context.Context) (*model.Snapshot, error) {
	return s.store.Latest(ctx)
}

// Keys returns the bucket keys of the published snapshot in order.
func (s *Service) Keys(ctx context.Context) ([]model.YearSeasonKey, error) {
	snap, err := s.store.Latest(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Data.Keys(), nil
}

// Bucket returns one year-season bucket.
func (s *Service) Bucket(ctx context.Context, key model.YearSeasonKey) (model.Bucket, error) {
	return s.store.Bucket(ctx, key)
}

// Profile returns the min-max profiles of a bucket.
func (s *Service) Profile(ctx context.Context, key model.YearSeasonKey) (map[string]derive.Profile, error) {
	bucket, err := s.store.Bucket(ctx, key)
	if err != nil {
		return nil, err
	}
	return derive.MinMax(bucket, s.scaleKeys)
}

// Disciplines returns the sorted discipline names of a bucket.
func (s *Service) Disciplines(ctx context.Context, key model.YearSeasonKey) ([]string, error) {
	bucket, err := s.store.Bucket(ctx, key)
	if err != nil {
		return nil, err
	}
	return insights.Disciplines(bucket), nil
}

// TopN returns the first n countries of a bucket ranking.
func (s *Service) TopN(ctx context.Context, key model.YearSeasonKey, n int) ([]types.Entry, error) {
	return s.store.TopN(ctx, key, n)
}

// Rank returns the ranking entry of one country.
func (s *Service) Rank(ctx context.Context, key model.YearSeasonKey, code string) (types.Entry, error) {
	return s.store.Rank(ctx, key, code)
}

// Series returns the cumulative series of the top countries for a season.
func (s *Service) Series(ctx context.Context, season string, top int) ([]insights.Series, error) {
	if !insights.ValidSeason(season) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeason, season)
	}
	snap, err := s.store.Latest(ctx)
	if err != nil {
		return nil, err
	}
	return insights.TopCountries(insights.CumulativeSeries(snap.Data, season), top), nil
}

// MedalsVsGDP returns the medals-vs-GDP table of one year.
func (s *Service) MedalsVsGDP(ctx context.Context, year int) ([]model.GDPPoint, error) {
	snap, err := s.store.Latest(ctx)
	if err != nil {
		return nil, err
	}
	points, ok := snap.MedalsVsGDP[year]
	if !ok {
		return nil, fmt.Errorf("%w: medals vs gdp for %d", repository.ErrNotFound, year)
	}
	return points, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"countries":   s.store.Count(ctx),
	}
	if s.started {
		stats["queueLength"] = s.queue.Len(ctx)
	}
	if snap, err := s.store.Latest(ctx); err == nil {
		stats["runId"] = snap.RunID
		stats["builtAt"] = snap.BuiltAt
		stats["minYear"] = snap.MinYear
		stats["buckets"] = len(snap.Data)
	}
	s.refreshMu.Lock()
	if s.lastRefresh != nil {
		stats["lastRefresh"] = *s.lastRefresh
	}
	s.refreshMu.Unlock()
	return stats
}
