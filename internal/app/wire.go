package service

import (
	"github.com/PolySpeedRunners/INF8808-Project/internal/adapters/repository"
	"github.com/PolySpeedRunners/INF8808-Project/internal/adapters/source"
	"github.com/PolySpeedRunners/INF8808-Project/internal/config"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/scoring"
	"github.com/PolySpeedRunners/INF8808-Project/internal/pipeline"
	"github.com/PolySpeedRunners/INF8808-Project/pkg/logger"
)

// NewFetcher returns an HTTP fetcher when cfg names a base URL and a
// directory fetcher otherwise.
func NewFetcher(cfg *config.Config) (source.Fetcher, error) {
	if cfg.DataBaseURL != "" {
		return source.NewHTTPFetcher(cfg.DataBaseURL, source.WithTimeout(cfg.FetchTimeout()))
	}
	return source.NewDirFetcher(cfg.DataDir), nil
}

// NewPipeline builds a pipeline from configuration.
func NewPipeline(cfg *config.Config, log logger.Logger) (*pipeline.Pipeline, error) {
	fetcher, err := NewFetcher(cfg)
	if err != nil {
		return nil, err
	}
	loader := source.NewLoader(fetcher, source.WithLogger(log.Named("source")))
	datasets := pipeline.Datasets{
		Results:     cfg.ResultsFile,
		NOCRegions:  cfg.NOCRegionsFile,
		GDP:         cfg.GDPFile,
		Population:  cfg.PopulationFile,
		Demography:  cfg.DemographyFile,
		Genc:        cfg.GencFile,
		MedalTotals: cfg.MedalTotalsFile,
		MedalYears:  cfg.MedalYears,
	}
	return pipeline.New(loader,
		pipeline.WithDatasets(datasets),
		pipeline.WithMinYear(cfg.MinYear),
		pipeline.WithOlympicMarker(cfg.OlympicMarker),
		pipeline.WithScoring(scoring.New(scoring.WithValuesFromConfig(cfg.MedalValues))),
		pipeline.WithLogger(log.Named("pipeline")),
	), nil
}

// FromConfig wires a Service and its pipeline from configuration.
func FromConfig(cfg *config.Config, log logger.Logger) (*Service, error) {
	p, err := NewPipeline(cfg, log)
	if err != nil {
		return nil, err
	}
	return New(p,
		WithLogger(log.Named("service")),
		WithStore(repository.NewMemoryStore(repository.WithMaxLimit(cfg.MaxRankingLimit))),
		WithQueueSize(cfg.QueueSize),
		WithWorkerCount(cfg.WorkerCount),
		WithScaleKeys(cfg.ScaleKeys),
	), nil
}
