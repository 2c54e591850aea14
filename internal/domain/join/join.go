// Package join attaches per-country per-year auxiliary values (GDP,
// population, athlete counts) to aggregated medal statistics.
package join

import (
	"errors"
	"fmt"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/reconcile"
)

// ErrUnknownField is returned when the target field is not an enrichment field.
var ErrUnknownField = errors.New("unknown enrichment field")

// Field names an enrichment field that a Joiner can populate.
type Field string

// Enrichment fields filled from tabular datasets.
const (
	FieldGDP        Field = "gdp"
	FieldPopulation Field = "population"
	FieldAthCount   Field = "AthCount"
)

// Validate reports whether f names a known enrichment field.
func (f Field) Validate() error {
	switch f {
	case FieldGDP, FieldPopulation, FieldAthCount:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
}

// target returns the address of the field on s.
func (f Field) target(s *model.CountryYearStats) **float64 {
	switch f {
	case FieldGDP:
		return &s.GDP
	case FieldPopulation:
		return &s.Population
	default:
		return &s.AthCount
	}
}

// Option applies a configuration option to the Joiner.
type Option func(*Joiner)

// WithCodeColumn sets the dataset column holding the country code.
func WithCodeColumn(name string) Option {
	return func(j *Joiner) {
		if name != "" {
			j.codeColumn = name
		}
	}
}

// Joiner performs left joins of a dataset onto medal data.
type Joiner struct {
	codeColumn string
}

// New creates a Joiner reading the World Bank column layout by default.
func New(opts ...Option) *Joiner {
	j := &Joiner{
		codeColumn: reconcile.DefaultCodeColumn,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Report counts the outcome of one join.
type Report struct {
	Matched int // entries that found a dataset row
	Valued  int // matched entries with a usable value
	Missing int // entries with no dataset row
}

// Join sets field on every entry of data from t.
//
// Rows are indexed by country code only. An entry is looked up by its code,
// then by its country name used as a code. The value is read from the column named after the bucket year. A
// missing row, a missing or empty cell, a non-numeric value or a zero value
// all leave the field nil. Entries are never removed and medal counters are
// never touched. When several rows share a code, the last one wins.
func (j *Joiner) Join(data model.Data, t model.Table, field Field) (Report, error) {
	var rep Report
	if err := field.Validate(); err != nil {
		return rep, err
	}

	byCode := make(map[string]model.Record, len(t.Records))
	for _, rec := range t.Records {
		if code := rec[j.codeColumn]; code != "" {
			byCode[code] = rec
		}
	}

	for key, bucket := range data {
		column := key.YearColumn()
		for code, stats := range bucket {
			dst := field.target(stats)
			rec, ok := byCode[code]
			if !ok {
				rec, ok = byCode[stats.CountryName]
			}
			if !ok {
				*dst = nil
				rep.Missing++
				continue
			}
			rep.Matched++
			*dst = value(rec[column])
			if *dst != nil {
				rep.Valued++
			}
		}
	}
	return rep, nil
}

func value(cell string) *float64 {
	v, ok := model.ParseNumber(cell)
	if !ok || v == 0 {
		return nil
	}
	return model.Float(v)
}
