// Package derive computes demography indicators and min-max profiles on top of
// aggregated medal statistics.
package derive

import (
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
)

// DemographyEntry holds the indicators of one country for one year.
type DemographyEntry struct {
	CountryName string
	ISO3        string
	GENC        string
	TFR         float64 // total fertility rate, 0 when missing
	Percentage  float64 // share of people aged 15 to 24, 0 when undefined
	Population  float64 // 0 when missing
}

// Demography indexes entries by year, then by ISO3 code.
type Demography map[int]map[string]DemographyEntry

// Lookup returns the entry of a country for a year.
func (d Demography) Lookup(year int, iso3 string) (DemographyEntry, bool) {
	e, ok := d[year][iso3]
	return e, ok
}

// FormatDemography links demography rows to ISO3 codes through the GENC
// mapping and computes the youth percentage
// (POP15_19 + POP20_24) / POP * 100.
//
// Rows with an unparsable year or an unmapped GENC code are skipped. When a
// year lists the same country twice, the first row wins.
func FormatDemography(rows []model.DemographyRow, genc []model.GencRow) Demography {
	byGENC := make(map[string]model.GencRow, len(genc))
	for _, g := range genc {
		if g.GENC == "" || g.ISO3 == "" {
			continue
		}
		byGENC[g.GENC] = g
	}

	out := make(Demography)
	for _, r := range rows {
		year, ok := model.ParseLeadingInt(r.Year)
		if !ok {
			continue
		}
		g, ok := byGENC[r.GENC]
		if !ok {
			continue
		}
		byISO, ok := out[year]
		if !ok {
			byISO = make(map[string]DemographyEntry)
			out[year] = byISO
		}
		if _, dup := byISO[g.ISO3]; dup {
			continue
		}

		e := DemographyEntry{CountryName: g.CountryName, ISO3: g.ISO3, GENC: g.GENC}
		if v, ok := model.ParseNumber(r.TFR); ok {
			e.TFR = v
		}
		pop, popOK := model.ParseLeadingInt(r.Pop)
		if popOK {
			e.Population = float64(pop)
		}
		p1519, ok1 := model.ParseLeadingInt(r.Pop1519)
		p2024, ok2 := model.ParseLeadingInt(r.Pop2024)
		if popOK && ok1 && ok2 && pop != 0 {
			e.Percentage = float64(p1519+p2024) / float64(pop) * 100
		}
		byISO[g.ISO3] = e
	}
	return out
}

// MergeReport counts the outcome of a demography merge.
type MergeReport struct {
	Merged     int // entries that found demography for their year
	ZeroFilled int // entries of a covered year with no demography row
	Uncovered  int // entries whose year has no demography at all
}

// MergeDemography copies demography indicators onto every entry of data,
// matching the bucket year and the entry's country code.
//
// A matched entry gets TFR, Percentage and Population, the latter replacing
// any value set by an earlier join. An entry of a covered year without a
// matching row gets TFR and Percentage set to 0, not nil, and keeps its
// Population. Entries of years absent from d are left untouched.
func MergeDemography(data model.Data, d Demography) MergeReport {
	var rep MergeReport
	for key, bucket := range data {
		byISO, ok := d[key.Year]
		if !ok {
			rep.Uncovered += len(bucket)
			continue
		}
		for code, stats := range bucket {
			e, ok := byISO[code]
			if !ok {
				stats.TFR = model.Float(0)
				stats.Percentage = model.Float(0)
				rep.ZeroFilled++
				continue
			}
			stats.TFR = model.Float(e.TFR)
			stats.Percentage = model.Float(e.Percentage)
			stats.Population = model.Float(e.Population)
			rep.Merged++
		}
	}
	return rep
}
