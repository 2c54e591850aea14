package model

import "sort"

// UnknownCountry is the display name used when a NOC has no region mapping.
const UnknownCountry = "Unknown"

// DisciplineStats holds medal counters for one discipline of one country.
type DisciplineStats struct {
	Score  int `json:"score"`
	Total  int `json:"total"`
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
}

// CountryYearStats is the aggregate for one country in one year-season bucket.
//
// Medal fields are set by the aggregator. Enrichment fields start nil and are
// filled by the joiner (GDP, Population, AthCount) and the demography merge
// (TFR, Percentage, Population). A nil enrichment means no source value.
type CountryYearStats struct {
	CountryName string                      `json:"countryName"`
	MedalScore  int                         `json:"medalScore"`
	TotalMedals int                         `json:"totalMedals"`
	TotalGold   int                         `json:"totalGold"`
	TotalSilver int                         `json:"totalSilver"`
	TotalBronze int                         `json:"totalBronze"`
	Disciplines map[string]*DisciplineStats `json:"disciplines"`

	GDP        *float64 `json:"gdp"`
	Population *float64 `json:"population"`
	AthCount   *float64 `json:"AthCount"`
	TFR        *float64 `json:"tfr"`
	Percentage *float64 `json:"percentage"`
}

// NewCountryYearStats returns empty stats for a country.
func NewCountryYearStats(countryName string) *CountryYearStats {
	return &CountryYearStats{
		CountryName: countryName,
		Disciplines: make(map[string]*DisciplineStats),
	}
}

// AddMedal counts one medal of the given tier and value for a discipline,
// updating the discipline and country totals together.
func (s *CountryYearStats) AddMedal(discipline string, medal Medal, value int) {
	d, ok := s.Disciplines[discipline]
	if !ok {
		d = &DisciplineStats{}
		s.Disciplines[discipline] = d
	}
	d.Total++
	d.Score += value
	s.TotalMedals++
	s.MedalScore += value

	switch medal {
	case MedalGold:
		d.Gold++
		s.TotalGold++
	case MedalSilver:
		d.Silver++
		s.TotalSilver++
	case MedalBronze:
		d.Bronze++
		s.TotalBronze++
	}
}

// Bucket maps a country code to its stats for one year-season.
type Bucket map[string]*CountryYearStats

// Codes returns the country codes of the bucket in ascending order.
func (b Bucket) Codes() []string {
	codes := make([]string, 0, len(b))
	for code := range b {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Data is the pipeline output: "year,season" -> country code -> stats.
type Data map[YearSeasonKey]Bucket

// Keys returns the bucket keys ordered by year, then season.
func (d Data) Keys() []YearSeasonKey {
	keys := make([]YearSeasonKey, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys
}

// Entries returns the total number of country entries across buckets.
func (d Data) Entries() int {
	n := 0
	for _, b := range d {
		n += len(b)
	}
	return n
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
