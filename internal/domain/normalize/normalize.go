// Package normalize cleans raw result rows before aggregation.
//
// Normalization is a pure filter/map: malformed rows are dropped and
// counted, never reported as errors.
package normalize

import (
	"strings"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
)

// Defaults.
const (
	DefaultMinYear       = 2000
	DefaultOlympicMarker = "(Olympic)"
)

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithMinYear drops rows whose year is below minYear.
func WithMinYear(minYear int) Option {
	return func(n *Normalizer) {
		n.minYear = minYear
	}
}

// WithOlympicMarker sets the substring an event must contain to be kept.
func WithOlympicMarker(marker string) Option {
	return func(n *Normalizer) {
		if marker != "" {
			n.marker = marker
		}
	}
}

// Normalizer filters and coerces raw result rows.
type Normalizer struct {
	minYear int
	marker  string
}

// New creates a Normalizer with configuration options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		minYear: DefaultMinYear,
		marker:  DefaultOlympicMarker,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// MinYear returns the configured year threshold.
func (n *Normalizer) MinYear() int { return n.minYear }

// Report counts what normalization kept and dropped.
type Report struct {
	Input         int
	Kept          int
	MissingField  int // discipline, type or year empty
	InvalidYear   int // year not numeric
	NonOlympic    int // event lacks the Olympic marker
	BeforeMinYear int
}

// Dropped returns the number of rows removed.
func (r Report) Dropped() int {
	return r.MissingField + r.InvalidYear + r.NonOlympic + r.BeforeMinYear
}

// Normalize returns the rows that survive cleaning, in input order.
func (n *Normalizer) Normalize(rows []model.RawResultRow) ([]model.ResultRow, Report) {
	rep := Report{Input: len(rows)}
	out := make([]model.ResultRow, 0, len(rows))

	for _, r := range rows {
		if blank(r.Discipline) || blank(r.Season) || blank(r.Year) {
			rep.MissingField++
			continue
		}
		year, ok := model.ParseLeadingInt(r.Year)
		if !ok {
			rep.InvalidYear++
			continue
		}
		if !strings.Contains(r.Event, n.marker) {
			rep.NonOlympic++
			continue
		}
		if year < n.minYear {
			rep.BeforeMinYear++
			continue
		}
		out = append(out, model.ResultRow{
			Year:       year,
			Season:     r.Season,
			Discipline: r.Discipline,
			Event:      r.Event,
			NOC:        r.NOC,
			AthleteID:  r.AthleteID,
			Medal:      r.Medal,
		})
	}

	rep.Kept = len(out)
	return out, rep
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
