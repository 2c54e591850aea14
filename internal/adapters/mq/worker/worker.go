// Package worker runs refresh jobs: each job rebuilds a snapshot from scratch
// and publishes it.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/pkg/logger"
	"github.com/PolySpeedRunners/INF8808-Project/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerCount  = 1
	poolShutdownTimeout = 30 * time.Second
)

// Job abstracts what workers read off the queue.
type Job = model.RefreshJob

// Builder builds a snapshot keeping results from minYear on.
type Builder interface {
	Run(ctx context.Context, minYear int) (*model.Snapshot, error)
}

// Saver publishes a snapshot.
type Saver interface {
	Save(ctx context.Context, snap *model.Snapshot) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// ResultFunc observes the outcome of a job. snap is nil when err is set.
type ResultFunc func(ctx context.Context, job Job, snap *model.Snapshot, err error)

// Worker processes refresh jobs.
type Worker interface {
	// Run starts the worker loop until ctx is canceled, Shutdown is called
	// or the queue is closed and drained.
	Run(ctx context.Context)

	// Shutdown stops the worker after its current job.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue    Queue
	builder  Builder
	saver    Saver
	name     string
	onResult ResultFunc

	shutdown chan struct{}
	done     chan struct{}

	base   logger.Logger // as configured, before naming
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, builder Builder, saver Saver, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		builder:  builder,
		saver:    saver,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.base = w.logger
	w.logger = w.logger.Named(w.name)
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "refresh job failed", logger.String("job_id", job.ID), logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob builds and publishes one snapshot.
func (w *InMemoryWorker) processJob(ctx context.Context, job Job) (err error) {
	start := time.Now()
	metrics.AddWorkerActive(1)
	var snap *model.Snapshot
	defer func() {
		metrics.AddWorkerActive(-1)
		metrics.RecordWorkerJob(time.Since(start).Seconds())
		if err != nil {
			metrics.RecordWorkerError()
			snap = nil
		}
		if w.onResult != nil {
			w.onResult(ctx, job, snap, err)
		}
	}()

	w.logger.Debug(ctx, "refresh job started",
		logger.String("job_id", job.ID),
		logger.Int("min_year", job.MinYear),
		logger.Duration("waited", start.Sub(job.RequestedAt)),
	)

	snap, err = w.builder.Run(ctx, job.MinYear)
	if err != nil {
		metrics.RecordErrorByComponent("worker", "build_error")
		return fmt.Errorf("build snapshot for job %s: %w", job.ID, err)
	}
	if err = w.saver.Save(ctx, snap); err != nil {
		metrics.RecordErrorByComponent("worker", "save_error")
		return fmt.Errorf("save snapshot for job %s: %w", job.ID, err)
	}

	w.logger.Info(ctx, "snapshot refreshed",
		logger.String("job_id", job.ID),
		logger.String("run_id", snap.RunID),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates a worker pool. workerCount < 1 means a single worker, so
// that refreshes run one after another.
func NewPool(workerCount int, q Queue, builder Builder, saver Saver, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}
	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
	}
	for i := 0; i < workerCount; i++ {
		workerOpts := append(append([]Option(nil), opts...), WithName("worker-"+strconv.Itoa(i)))
		pool.workers[i] = NewInMemoryWorker(q, builder, saver, workerOpts...)
	}
	pool.logger = pool.workers[0].base.Named("worker-pool")

	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown closes the queue and waits for workers to finish their current job.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		if err := w.Shutdown(shutdownCtx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	metrics.UpdateWorkerCount(0)
	return nil
}
