package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/types"
)

// DisciplineSheet is the name of the per-discipline sheet.
const DisciplineSheet = "Disciplines"

var countryHeader = []any{
	"Rank", "Code", "Country", "Medal Score", "Total Medals", "Gold", "Silver", "Bronze",
	"GDP", "Population", "Athletes", "TFR", "Youth %",
}

var disciplineHeader = []any{"Year", "Season", "Code", "Discipline", "Score", "Total", "Gold", "Silver", "Bronze"}

// SheetName returns the sheet holding a bucket, e.g. "2000 Summer".
func SheetName(key model.YearSeasonKey) string {
	return strconv.Itoa(key.Year) + " " + key.Season
}

// XLSX writes one sheet per bucket, in ranking order, plus a sheet listing
// every discipline counter.
func XLSX(snap *model.Snapshot, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	keys := snap.Data.Keys()
	for i, key := range keys {
		name := SheetName(key)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
		if err := f.SetSheetRow(name, "A1", &countryHeader); err != nil {
			return err
		}

		bucket := snap.Data[key]
		for r, e := range types.Rank(bucket) {
			s := bucket[e.Code]
			row := []any{
				e.Rank, e.Code, e.CountryName, e.MedalScore, e.TotalMedals, e.Gold, e.Silver, e.Bronze,
				value(s.GDP), value(s.Population), value(s.AthCount), value(s.TFR), value(s.Percentage),
			}
			if err := f.SetSheetRow(name, "A"+strconv.Itoa(r+2), &row); err != nil {
				return err
			}
		}
	}

	if len(keys) == 0 {
		if err := f.SetSheetName(defaultSheet, DisciplineSheet); err != nil {
			return err
		}
	} else if _, err := f.NewSheet(DisciplineSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(DisciplineSheet, "A1", &disciplineHeader); err != nil {
		return err
	}
	line := 2
	for _, key := range keys {
		bucket := snap.Data[key]
		for _, code := range bucket.Codes() {
			s := bucket[code]
			for _, name := range sortedDisciplines(s) {
				d := s.Disciplines[name]
				row := []any{key.Year, key.Season, code, name, d.Score, d.Total, d.Gold, d.Silver, d.Bronze}
				if err := f.SetSheetRow(DisciplineSheet, "A"+strconv.Itoa(line), &row); err != nil {
					return err
				}
				line++
			}
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
