// Package aggregate groups normalized result rows into per-bucket country
// medal statistics.
package aggregate

import (
	"context"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/dedupe"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/reconcile"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/scoring"
)

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithScoring sets the medal value table.
func WithScoring(table *scoring.Table) Option {
	return func(a *Aggregator) {
		if table != nil {
			a.scoring = table
		}
	}
}

// WithDeduperFactory sets how the per-bucket dedup set is created.
func WithDeduperFactory(factory func() dedupe.Deduper) Option {
	return func(a *Aggregator) {
		if factory != nil {
			a.newDeduper = factory
		}
	}
}

// Aggregator computes CountryYearStats from normalized result rows.
type Aggregator struct {
	scoring    *scoring.Table
	newDeduper func() dedupe.Deduper
}

// New creates an Aggregator with configuration options.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		scoring: scoring.New(),
		newDeduper: func() dedupe.Deduper {
			return dedupe.NewInMemoryDeduper()
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Report counts what aggregation did with its input rows.
type Report struct {
	Rows       int
	Buckets    int
	Countries  int // entries across all buckets
	Counted    int // rows that added a medal
	Duplicates int // scoring rows already counted for their team event
	Unscored   int // rows without a scoring medal
}

// Aggregate buckets rows by year and season, then by NOC.
//
// Every NOC present in a bucket gets an entry, even without medals. A row adds
// to the counters only if its medal scores and its dedup key
// (discipline-event-NOC-medal) was not seen earlier in the same bucket, so a
// team medal shared by several athletes counts once. Country names come from
// regions, falling back to model.UnknownCountry.
func (a *Aggregator) Aggregate(ctx context.Context, rows []model.ResultRow, regions *reconcile.RegionMap) (model.Data, Report) {
	data := make(model.Data)
	seen := make(map[model.YearSeasonKey]dedupe.Deduper)
	rep := Report{Rows: len(rows)}

	for _, r := range rows {
		key := r.Key()
		bucket, ok := data[key]
		if !ok {
			bucket = make(model.Bucket)
			data[key] = bucket
			seen[key] = a.newDeduper()
		}
		stats, ok := bucket[r.NOC]
		if !ok {
			stats = model.NewCountryYearStats(regions.CountryName(r.NOC))
			bucket[r.NOC] = stats
			rep.Countries++
		}

		medal, value := a.scoring.Score(r.Medal)
		if value <= 0 {
			rep.Unscored++
			continue
		}
		if seen[key].SeenAndRecord(ctx, dedupe.Key(r.Discipline, r.Event, r.NOC, r.Medal)) {
			rep.Duplicates++
			continue
		}
		stats.AddMedal(r.Discipline, medal, value)
		rep.Counted++
	}

	rep.Buckets = len(data)
	return data, rep
}
