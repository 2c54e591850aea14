package aggregate

import (
	"sort"
	"strconv"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/reconcile"
)

// AthleteCounts counts distinct athletes per NOC per year over raw result
// rows, before any normalization. Rows missing the year, NOC or athlete id
// are skipped; the year is used verbatim as a column name.
//
// The result has the shape of the GDP and population datasets (a
// reconcile.DefaultCodeColumn column plus one column per year) so it can be
// attached with the same joiner. Records keep the order in which NOCs first
// appear.
func AthleteCounts(rows []model.RawResultRow) model.Table {
	athletes := make(map[string]map[string]map[string]struct{})
	var order []string
	years := make(map[string]struct{})

	for _, r := range rows {
		if r.Year == "" || r.NOC == "" || r.AthleteID == "" {
			continue
		}
		byYear, ok := athletes[r.NOC]
		if !ok {
			byYear = make(map[string]map[string]struct{})
			athletes[r.NOC] = byYear
			order = append(order, r.NOC)
		}
		ids, ok := byYear[r.Year]
		if !ok {
			ids = make(map[string]struct{})
			byYear[r.Year] = ids
			years[r.Year] = struct{}{}
		}
		ids[r.AthleteID] = struct{}{}
	}

	columns := make([]string, 0, len(years)+1)
	for y := range years {
		columns = append(columns, y)
	}
	sort.Strings(columns)
	columns = append([]string{reconcile.DefaultCodeColumn}, columns...)

	table := model.Table{Columns: columns, Records: make([]model.Record, 0, len(order))}
	for _, noc := range order {
		rec := model.Record{reconcile.DefaultCodeColumn: noc}
		for year, ids := range athletes[noc] {
			rec[year] = strconv.Itoa(len(ids))
		}
		table.Records = append(table.Records, rec)
	}
	return table
}
