// Package pipeline loads every source dataset and turns them into a medal
// statistics snapshot.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/aggregate"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/derive"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/insights"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/join"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/normalize"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/reconcile"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/scoring"
	"github.com/PolySpeedRunners/INF8808-Project/pkg/logger"
	"github.com/PolySpeedRunners/INF8808-Project/pkg/metrics"
)

// Source loads decoded datasets by name.
type Source interface {
	Results(ctx context.Context, name string) ([]model.RawResultRow, error)
	NOCRegions(ctx context.Context, name string) ([]model.NOCRegion, error)
	CountryTable(ctx context.Context, name string) (model.Table, error)
	Demography(ctx context.Context, name string) ([]model.DemographyRow, error)
	Genc(ctx context.Context, name string) ([]model.GencRow, error)
	MedalTotals(ctx context.Context, name string) ([]model.MedalTotal, error)
}

// Datasets names the files a run reads.
//
// Demography is merged only when both Demography and Genc are set. The
// medals-vs-GDP table is built for each of MedalYears from
// fmt.Sprintf(MedalTotals, year).
type Datasets struct {
	Results    string
	NOCRegions string
	GDP        string
	Population string
	Demography string
	Genc       string

	MedalTotals string
	MedalYears  []int
}

// DefaultDatasets returns the file names used by the published data set.
func DefaultDatasets() Datasets {
	return Datasets{
		Results:     "results.csv",
		NOCRegions:  "noc_regions.csv",
		GDP:         "gdp_per_country.csv",
		Population:  "population_by_country.csv",
		Demography:  "demography.csv",
		Genc:        "genc_region.csv",
		MedalTotals: "medals_%d.csv",
	}
}

func (d Datasets) withDemography() bool { return d.Demography != "" && d.Genc != "" }

// Pipeline builds snapshots. A Pipeline holds no state between runs and
// is safe for concurrent use.
type Pipeline struct {
	src      Source
	datasets Datasets
	minYear  int
	marker   string
	scoring  *scoring.Table
	log      logger.Logger
	now      func() time.Time
}

// New creates a pipeline reading from src.
func New(src Source, opts ...Option) *Pipeline {
	p := &Pipeline{
		src:      src,
		datasets: DefaultDatasets(),
		minYear:  normalize.DefaultMinYear,
		marker:   normalize.DefaultOlympicMarker,
		scoring:  scoring.New(),
		log:      logger.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MinYear returns the default earliest year.
func (p *Pipeline) MinYear() int { return p.minYear }

// inputs holds every loaded dataset of one run.
type inputs struct {
	results    []model.RawResultRow
	regions    []model.NOCRegion
	gdp        model.Table
	population model.Table
	demography []model.DemographyRow
	genc       []model.GencRow
	totals     map[int][]model.MedalTotal
}

// load fetches all datasets concurrently. The first failure cancels the
// others and is returned wrapped in ErrLoad.
func (p *Pipeline) load(ctx context.Context) (*inputs, error) {
	in := &inputs{totals: make(map[int][]model.MedalTotal, len(p.datasets.MedalYears))}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		in.results, err = p.src.Results(gctx, p.datasets.Results)
		return err
	})
	g.Go(func() (err error) {
		in.regions, err = p.src.NOCRegions(gctx, p.datasets.NOCRegions)
		return err
	})
	g.Go(func() (err error) {
		in.gdp, err = p.src.CountryTable(gctx, p.datasets.GDP)
		return err
	})
	g.Go(func() (err error) {
		in.population, err = p.src.CountryTable(gctx, p.datasets.Population)
		return err
	})
	if p.datasets.withDemography() {
		g.Go(func() (err error) {
			in.demography, err = p.src.Demography(gctx, p.datasets.Demography)
			return err
		})
		g.Go(func() (err error) {
			in.genc, err = p.src.Genc(gctx, p.datasets.Genc)
			return err
		})
	}

	totals := make([][]model.MedalTotal, len(p.datasets.MedalYears))
	for i, year := range p.datasets.MedalYears {
		g.Go(func() (err error) {
			totals[i], err = p.src.MedalTotals(gctx, fmt.Sprintf(p.datasets.MedalTotals, year))
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	for i, year := range p.datasets.MedalYears {
		in.totals[year] = totals[i]
	}

	metrics.UpdateDatasetRows("results", len(in.results))
	metrics.UpdateDatasetRows("noc_regions", len(in.regions))
	metrics.UpdateDatasetRows("gdp", len(in.gdp.Records))
	metrics.UpdateDatasetRows("population", len(in.population.Records))
	metrics.UpdateDatasetRows("demography", len(in.demography))
	metrics.UpdateDatasetRows("genc", len(in.genc))
	return in, nil
}

// Run loads every dataset and builds a snapshot from scratch, keeping
// results from minYear on; minYear <= 0 selects the configured default.
//
// Loading is concurrent; the computation that follows runs on the calling
// goroutine. Any load failure aborts the run with an error wrapping
// ErrLoad and no snapshot.
func (p *Pipeline) Run(ctx context.Context, minYear int) (*model.Snapshot, error) {
	start := time.Now()
	if minYear <= 0 {
		minYear = p.minYear
	}
	runID := uuid.NewString()
	log := p.log.Named("run")
	log.Info(ctx, "pipeline run started", logger.String("run_id", runID), logger.Int("min_year", minYear))

	in, err := p.load(ctx)
	if err != nil {
		metrics.RecordPipelineRun("failed", time.Since(start).Seconds())
		log.Error(ctx, "pipeline load failed", logger.String("run_id", runID), logger.Error(err))
		return nil, err
	}

	data, err := p.build(ctx, in, minYear)
	if err != nil {
		metrics.RecordPipelineRun("failed", time.Since(start).Seconds())
		log.Error(ctx, "pipeline build failed", logger.String("run_id", runID), logger.Error(err))
		return nil, err
	}

	snap := &model.Snapshot{
		RunID:   runID,
		BuiltAt: p.now(),
		MinYear: minYear,
		Data:    data,
	}
	if len(in.totals) > 0 {
		snap.MedalsVsGDP = make(map[int][]model.GDPPoint, len(in.totals))
		for year, totals := range in.totals {
			snap.MedalsVsGDP[year] = insights.MedalsVsGDP(year, totals, in.gdp, in.population)
		}
	}

	took := time.Since(start)
	metrics.RecordPipelineRun("success", took.Seconds())
	log.Info(ctx, "pipeline run finished",
		logger.String("run_id", runID),
		logger.Int("buckets", len(data)),
		logger.Int("countries", data.Entries()),
		logger.Duration("took", took),
	)
	return snap, nil
}

// build runs the synchronous stages over loaded inputs.
func (p *Pipeline) build(ctx context.Context, in *inputs, minYear int) (model.Data, error) {
	rows, nrep := normalize.New(
		normalize.WithMinYear(minYear),
		normalize.WithOlympicMarker(p.marker),
	).Normalize(in.results)
	metrics.RecordRowsDropped("missing_field", nrep.MissingField)
	metrics.RecordRowsDropped("invalid_year", nrep.InvalidYear)
	metrics.RecordRowsDropped("non_olympic", nrep.NonOlympic)
	metrics.RecordRowsDropped("before_min_year", nrep.BeforeMinYear)
	p.log.Debug(ctx, "results normalized",
		logger.Int("input", nrep.Input),
		logger.Int("kept", nrep.Kept),
		logger.Int("dropped", nrep.Dropped()),
	)

	athletes := aggregate.AthleteCounts(in.results)
	regions := reconcile.NewRegionMap(in.regions)

	data, arep := aggregate.New(aggregate.WithScoring(p.scoring)).Aggregate(ctx, rows, regions)
	metrics.RecordMedalDuplicates(arep.Duplicates)
	p.log.Debug(ctx, "medals aggregated",
		logger.Int("buckets", arep.Buckets),
		logger.Int("countries", arep.Countries),
		logger.Int("counted", arep.Counted),
		logger.Int("duplicates", arep.Duplicates),
	)

	reconciler := reconcile.New(regions)
	gdp, gdpRep := reconciler.Reconcile(in.gdp)
	population, popRep := reconciler.Reconcile(in.population)
	recordReconcile("gdp", gdpRep)
	recordReconcile("population", popRep)

	joiner := join.New()
	for _, step := range []struct {
		table model.Table
		field join.Field
	}{
		{population, join.FieldPopulation},
		{gdp, join.FieldGDP},
		{athletes, join.FieldAthCount},
	} {
		rep, err := joiner.Join(data, step.table, step.field)
		if err != nil {
			return nil, err
		}
		metrics.RecordJoinMisses(string(step.field), rep.Missing)
	}

	if p.datasets.withDemography() {
		mrep := derive.MergeDemography(data, derive.FormatDemography(in.demography, in.genc))
		metrics.RecordDemographyMerge("merged", mrep.Merged)
		metrics.RecordDemographyMerge("zero_filled", mrep.ZeroFilled)
		metrics.RecordDemographyMerge("uncovered", mrep.Uncovered)
	}
	return data, nil
}

func recordReconcile(dataset string, rep reconcile.Report) {
	metrics.RecordCodesReconciled(dataset, "known", rep.Known)
	metrics.RecordCodesReconciled(dataset, "fixed", rep.Fixed)
	metrics.RecordCodesReconciled(dataset, "unresolved", rep.Unresolved)
}
