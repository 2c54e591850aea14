package source

import (
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/reconcile"
)

// Column names of the source datasets.
const (
	ColYear       = "year"
	ColSeason     = "type"
	ColDiscipline = "discipline"
	ColEvent      = "event"
	ColNOC        = "noc"
	ColAthleteID  = "athlete_id"
	ColMedal      = "medal"

	ColRegionNOC = "NOC"
	ColRegion    = "region"

	ColDemoYear    = "YEAR"
	ColDemoGeo     = "GEO_ID"
	ColDemoTFR     = "TFR"
	ColDemoPop     = "POP"
	ColDemoPop1519 = "POP15_19"
	ColDemoPop2024 = "POP20_24"
	ColDemoDeaths  = "DEATHS"

	ColGencName = "COUNTRY NAME"
	ColGencCode = "GENC DIGRAPH"
	ColGencISO3 = "LEGACY ISO 3"

	ColTotalsCode    = "country_code"
	ColTotalsCountry = "country"
	ColTotalsTotal   = "Total"
)

// Results decodes the athlete results dataset.
func Results(t model.Table) ([]model.RawResultRow, error) {
	if err := requireColumns(t, ColYear, ColSeason, ColDiscipline, ColEvent, ColNOC, ColAthleteID, ColMedal); err != nil {
		return nil, err
	}
	out := make([]model.RawResultRow, 0, len(t.Records))
	for _, r := range t.Records {
		out = append(out, model.RawResultRow{
			Year:       r[ColYear],
			Season:     r[ColSeason],
			Discipline: r[ColDiscipline],
			Event:      r[ColEvent],
			NOC:        r[ColNOC],
			AthleteID:  r[ColAthleteID],
			Medal:      r[ColMedal],
		})
	}
	return out, nil
}

// NOCRegions decodes the NOC-to-region dataset.
func NOCRegions(t model.Table) ([]model.NOCRegion, error) {
	if err := requireColumns(t, ColRegionNOC, ColRegion); err != nil {
		return nil, err
	}
	out := make([]model.NOCRegion, 0, len(t.Records))
	for _, r := range t.Records {
		out = append(out, model.NOCRegion{NOC: r[ColRegionNOC], Region: r[ColRegion]})
	}
	return out, nil
}

// CountryTable checks that a GDP or population table carries its code and
// name columns.
func CountryTable(t model.Table) (model.Table, error) {
	if err := requireColumns(t, reconcile.DefaultCodeColumn, reconcile.DefaultNameColumn); err != nil {
		return model.Table{}, err
	}
	return t, nil
}

// Demography decodes the demography dataset. DEATHS is optional.
func Demography(t model.Table) ([]model.DemographyRow, error) {
	if err := requireColumns(t, ColDemoYear, ColDemoGeo, ColDemoTFR, ColDemoPop, ColDemoPop1519, ColDemoPop2024); err != nil {
		return nil, err
	}
	out := make([]model.DemographyRow, 0, len(t.Records))
	for _, r := range t.Records {
		out = append(out, model.DemographyRow{
			Year:    r[ColDemoYear],
			GENC:    r[ColDemoGeo],
			TFR:     r[ColDemoTFR],
			Pop:     r[ColDemoPop],
			Pop1519: r[ColDemoPop1519],
			Pop2024: r[ColDemoPop2024],
			Deaths:  r[ColDemoDeaths],
		})
	}
	return out, nil
}

// Genc decodes the GENC mapping dataset.
func Genc(t model.Table) ([]model.GencRow, error) {
	if err := requireColumns(t, ColGencName, ColGencCode, ColGencISO3); err != nil {
		return nil, err
	}
	out := make([]model.GencRow, 0, len(t.Records))
	for _, r := range t.Records {
		out = append(out, model.GencRow{
			CountryName: r[ColGencName],
			GENC:        r[ColGencCode],
			ISO3:        r[ColGencISO3],
		})
	}
	return out, nil
}

// MedalTotals decodes a per-year medal totals dataset. Totals that do not
// parse read as 0.
func MedalTotals(t model.Table) ([]model.MedalTotal, error) {
	if err := requireColumns(t, ColTotalsCode, ColTotalsCountry, ColTotalsTotal); err != nil {
		return nil, err
	}
	out := make([]model.MedalTotal, 0, len(t.Records))
	for _, r := range t.Records {
		total := 0
		if v, ok := model.ParseNumber(r[ColTotalsTotal]); ok {
			total = int(v)
		}
		out = append(out, model.MedalTotal{
			CountryCode: r[ColTotalsCode],
			Country:     r[ColTotalsCountry],
			Total:       total,
		})
	}
	return out, nil
}
