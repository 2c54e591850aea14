// Package scoring defines the medal value table used to score results.
package scoring

import (
	"strings"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
)

// Default medal values.
const (
	defaultGoldValue   = 3
	defaultSilverValue = 2
	defaultBronzeValue = 1
)

// Option applies a configuration option to the Table.
type Option func(*Table)

// WithValuesFromConfig overrides tier values from a configuration map keyed by
// tier name ("gold", "Silver", ...; case-insensitive). Unknown names and
// negative values are ignored.
func WithValuesFromConfig(values map[string]int) Option {
	return func(t *Table) {
		for name, v := range values {
			m := parseTier(name)
			if m == model.MedalNone || v < 0 {
				continue
			}
			t.values[m] = v
		}
	}
}

// Table maps medal tiers to their score weight.
// A tier with value 0 does not score and is not counted.
type Table struct {
	values map[model.Medal]int
}

// New creates a Table with Gold=3, Silver=2, Bronze=1 unless overridden.
func New(opts ...Option) *Table {
	t := &Table{
		values: map[model.Medal]int{
			model.MedalGold:   defaultGoldValue,
			model.MedalSilver: defaultSilverValue,
			model.MedalBronze: defaultBronzeValue,
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Value returns the weight of a tier; MedalNone is worth 0.
func (t *Table) Value(m model.Medal) int {
	return t.values[m]
}

// Score parses a dataset medal value and returns its tier and weight.
// Values that are not exactly "Gold", "Silver" or "Bronze" score 0.
func (t *Table) Score(medal string) (model.Medal, int) {
	m := model.ParseMedal(medal)
	return m, t.Value(m)
}

// Values returns the table keyed by dataset spelling.
func (t *Table) Values() map[string]int {
	out := make(map[string]int, len(t.values))
	for m, v := range t.values {
		out[m.String()] = v
	}
	return out
}

func parseTier(name string) model.Medal {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gold":
		return model.MedalGold
	case "silver":
		return model.MedalSilver
	case "bronze":
		return model.MedalBronze
	default:
		return model.MedalNone
	}
}
