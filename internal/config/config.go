// Package config defines process configuration and its loading.
package config

import (
	"time"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/derive"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// DataDir is the directory holding the CSV datasets. Ignored when
	// DataBaseURL is set.
	DataDir string `koanf:"data_dir" validate:"required_without=DataBaseURL"`

	// DataBaseURL serves the CSV datasets over HTTP.
	DataBaseURL string `koanf:"data_base_url" validate:"omitempty,url"`

	// FetchTimeoutMS bounds one HTTP dataset fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms" validate:"gt=0"`

	ResultsFile     string `koanf:"results_file" validate:"required"`
	NOCRegionsFile  string `koanf:"noc_regions_file" validate:"required"`
	GDPFile         string `koanf:"gdp_file" validate:"required"`
	PopulationFile  string `koanf:"population_file" validate:"required"`
	DemographyFile  string `koanf:"demography_file"`
	GencFile        string `koanf:"genc_file"`
	MedalTotalsFile string `koanf:"medal_totals_file" validate:"required_with=MedalYears"`

	// MedalYears lists the years with a medals-vs-GDP table.
	MedalYears []int `koanf:"medal_years" validate:"dive,gt=0"`

	// MinYear drops results before this year.
	MinYear int `koanf:"min_year" validate:"gt=0"`

	// OlympicMarker identifies Olympic events in the event name.
	OlympicMarker string `koanf:"olympic_marker" validate:"required"`

	// MedalValues maps lowercase tier names to their score weight.
	MedalValues map[string]int `koanf:"medal_values" validate:"dive,keys,oneof=gold silver bronze,endkeys,gte=0"`

	// ScaleKeys are the stats keys normalized in bucket profiles.
	ScaleKeys []string `koanf:"scale_keys" validate:"min=1"`

	// QueueSize bounds pending refresh jobs.
	QueueSize int `koanf:"queue_size" validate:"gt=0"`

	// WorkerCount sets the number of refresh workers.
	WorkerCount int `koanf:"worker_count" validate:"gt=0"`

	// MaxRankingLimit caps GET /ranking?limit.
	MaxRankingLimit int `koanf:"max_ranking_limit" validate:"gt=0"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		DataDir:         "data",
		FetchTimeoutMS:  30_000,
		ResultsFile:     "results.csv",
		NOCRegionsFile:  "noc_regions.csv",
		GDPFile:         "gdp_per_country.csv",
		PopulationFile:  "population_by_country.csv",
		DemographyFile:  "demography.csv",
		GencFile:        "genc_region.csv",
		MedalTotalsFile: "medals_%d.csv",
		MinYear:         2000,
		OlympicMarker:   "(Olympic)",
		MedalValues: map[string]int{
			"gold":   3,
			"silver": 2,
			"bronze": 1,
		},
		ScaleKeys:       append([]string(nil), derive.DefaultScaleKeys...),
		QueueSize:       8,
		WorkerCount:     1,
		MaxRankingLimit: 500,
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}
