package model

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidYearSeason is returned when a "year,season" key cannot be parsed.
var ErrInvalidYearSeason = errors.New("invalid year-season key")

// YearSeasonKey buckets aggregated data by Olympic year and season.
// Its text form is "year,season", e.g. "2000,Summer".
type YearSeasonKey struct {
	Year   int
	Season string
}

// String formats the key as "year,season".
func (k YearSeasonKey) String() string {
	return strconv.Itoa(k.Year) + "," + k.Season
}

// YearColumn returns the column name used by per-year auxiliary datasets.
func (k YearSeasonKey) YearColumn() string {
	return strconv.Itoa(k.Year)
}

// ParseYearSeasonKey parses "year,season".
func ParseYearSeasonKey(s string) (YearSeasonKey, error) {
	yearStr, season, ok := strings.Cut(s, ",")
	if !ok {
		return YearSeasonKey{}, fmt.Errorf("%w: %q", ErrInvalidYearSeason, s)
	}
	year, err := strconv.Atoi(strings.TrimSpace(yearStr))
	if err != nil {
		return YearSeasonKey{}, fmt.Errorf("%w: %q", ErrInvalidYearSeason, s)
	}
	season = strings.TrimSpace(season)
	if season == "" {
		return YearSeasonKey{}, fmt.Errorf("%w: %q", ErrInvalidYearSeason, s)
	}
	return YearSeasonKey{Year: year, Season: season}, nil
}

// MarshalText lets YearSeasonKey be used as a JSON object key.
func (k YearSeasonKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses the "year,season" form.
func (k *YearSeasonKey) UnmarshalText(b []byte) error {
	parsed, err := ParseYearSeasonKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Less orders keys by year, then season.
func (k YearSeasonKey) Less(o YearSeasonKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Season < o.Season
}

// SortKeys sorts keys in place by year, then season.
func SortKeys(keys []YearSeasonKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
}
