package model

import "time"

// GDPPoint is one country of the medals-vs-GDP table for a year.
type GDPPoint struct {
	Rank        int     `json:"rank"`
	Year        int     `json:"year"`
	CountryCode string  `json:"countryCode"`
	Country     string  `json:"country"`
	Total       int     `json:"total"`
	GDP         float64 `json:"gdp"`
	Population  float64 `json:"population"`
}

// Snapshot is the result of one pipeline run.
type Snapshot struct {
	RunID       string             `json:"run_id"`
	BuiltAt     time.Time          `json:"built_at"`
	MinYear     int                `json:"min_year"`
	Data        Data               `json:"data"`
	MedalsVsGDP map[int][]GDPPoint `json:"medals_vs_gdp,omitempty"`
}

// RefreshJob asks for the snapshot to be rebuilt from scratch.
type RefreshJob struct {
	ID          string    `json:"id"`
	MinYear     int       `json:"min_year"` // 0 means the configured default
	RequestedAt time.Time `json:"requested_at"`
}
