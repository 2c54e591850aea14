package pipeline

import (
	"time"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/scoring"
	"github.com/PolySpeedRunners/INF8808-Project/pkg/logger"
)

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithDatasets sets the dataset file names.
func WithDatasets(d Datasets) Option {
	return func(p *Pipeline) {
		p.datasets = d
	}
}

// WithMinYear sets the default earliest year kept.
func WithMinYear(year int) Option {
	return func(p *Pipeline) {
		if year > 0 {
			p.minYear = year
		}
	}
}

// WithOlympicMarker sets the substring identifying Olympic events.
func WithOlympicMarker(marker string) Option {
	return func(p *Pipeline) {
		if marker != "" {
			p.marker = marker
		}
	}
}

// WithScoring sets the medal value table.
func WithScoring(t *scoring.Table) Option {
	return func(p *Pipeline) {
		if t != nil {
			p.scoring = t
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithClock sets the time source used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}
