package source

import (
	"context"
	"fmt"
	"time"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/pkg/logger"
	"github.com/PolySpeedRunners/INF8808-Project/pkg/metrics"
)

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithLogger sets the loader logger.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.log = l
		}
	}
}

// Loader fetches and decodes datasets through a Fetcher.
type Loader struct {
	fetcher Fetcher
	log     logger.Logger
}

// NewLoader creates a loader over fetcher.
func NewLoader(fetcher Fetcher, opts ...Option) *Loader {
	l := &Loader{fetcher: fetcher, log: logger.Discard()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Table fetches name and parses it as CSV. Any failure wraps ErrFetch.
func (l *Loader) Table(ctx context.Context, name string) (model.Table, error) {
	start := time.Now()
	rc, err := l.fetcher.Open(ctx, name)
	if err != nil {
		metrics.RecordErrorByComponent("source", "fetch")
		return model.Table{}, fmt.Errorf("%w: %s: %w", ErrFetch, name, err)
	}
	defer rc.Close()

	t, err := ReadTable(rc)
	if err != nil {
		metrics.RecordErrorByComponent("source", "parse")
		return model.Table{}, fmt.Errorf("%w: %s: %w", ErrFetch, name, err)
	}
	metrics.RecordFetchDuration(name, time.Since(start).Seconds())
	l.log.Debug(ctx, "dataset loaded",
		logger.String("dataset", name),
		logger.Int("rows", len(t.Records)),
		logger.Duration("took", time.Since(start)),
	)
	return t, nil
}

func decode[T any](ctx context.Context, l *Loader, name string, fn func(model.Table) (T, error)) (T, error) {
	var zero T
	t, err := l.Table(ctx, name)
	if err != nil {
		return zero, err
	}
	out, err := fn(t)
	if err != nil {
		return zero, fmt.Errorf("%w: %s: %w", ErrFetch, name, err)
	}
	return out, nil
}

// Results loads the athlete results dataset.
func (l *Loader) Results(ctx context.Context, name string) ([]model.RawResultRow, error) {
	return decode(ctx, l, name, Results)
}

// NOCRegions loads the NOC-to-region dataset.
func (l *Loader) NOCRegions(ctx context.Context, name string) ([]model.NOCRegion, error) {
	return decode(ctx, l, name, NOCRegions)
}

// CountryTable loads a GDP or population dataset.
func (l *Loader) CountryTable(ctx context.Context, name string) (model.Table, error) {
	return decode(ctx, l, name, CountryTable)
}

// Demography loads the demography dataset.
func (l *Loader) Demography(ctx context.Context, name string) ([]model.DemographyRow, error) {
	return decode(ctx, l, name, Demography)
}

// Genc loads the GENC mapping dataset.
func (l *Loader) Genc(ctx context.Context, name string) ([]model.GencRow, error) {
	return decode(ctx, l, name, Genc)
}

// MedalTotals loads a per-year medal totals dataset.
func (l *Loader) MedalTotals(ctx context.Context, name string) ([]model.MedalTotal, error) {
	return decode(ctx, l, name, MedalTotals)
}
