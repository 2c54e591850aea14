// Package model contains domain models passed between layers.
package model

// RawResultRow is one athlete-event-medal entry as read from the results dataset.
// All fields are kept as strings; Normalizer coerces them.
type RawResultRow struct {
	Year       string // "year" column
	Season     string // "type" column, e.g. "Summer", "Winter"
	Discipline string
	Event      string
	NOC        string
	AthleteID  string
	Medal      string // "Gold", "Silver", "Bronze" or empty
}

// ResultRow is a normalized result row with a validated integer year.
type ResultRow struct {
	Year       int
	Season     string
	Discipline string
	Event      string
	NOC        string
	AthleteID  string
	Medal      string
}

// Key returns the bucket key of the row.
func (r ResultRow) Key() YearSeasonKey {
	return YearSeasonKey{Year: r.Year, Season: r.Season}
}

// Medal is a scoring tier.
type Medal int

// Medal tiers. MedalNone covers empty and unknown values.
const (
	MedalNone Medal = iota
	MedalGold
	MedalSilver
	MedalBronze
)

// String returns the dataset spelling of the tier.
func (m Medal) String() string {
	switch m {
	case MedalGold:
		return "Gold"
	case MedalSilver:
		return "Silver"
	case MedalBronze:
		return "Bronze"
	default:
		return ""
	}
}

// ParseMedal maps an exact dataset value to a tier.
func ParseMedal(s string) Medal {
	switch s {
	case "Gold":
		return MedalGold
	case "Silver":
		return MedalSilver
	case "Bronze":
		return MedalBronze
	default:
		return MedalNone
	}
}

// NOCRegion is one row of the NOC-to-region reference dataset.
type NOCRegion struct {
	NOC    string
	Region string
}

// DemographyRow is one row of the demography dataset, one per year per GENC region.
type DemographyRow struct {
	Year    string
	GENC    string
	TFR     string
	Pop     string
	Pop1519 string
	Pop2024 string
	Deaths  string
}

// GencRow maps a GENC digraph to a country name and legacy ISO3 code.
type GencRow struct {
	CountryName string
	GENC        string
	ISO3        string
}

// MedalTotal is one row of a per-year medal totals dataset.
type MedalTotal struct {
	CountryCode string
	Country     string
	Total       int
}
