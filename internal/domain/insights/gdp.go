package insights

import (
	"sort"
	"strconv"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/reconcile"
)

// Thresholds applied by MedalsVsGDP.
const (
	MinGDP   = 2.0
	MinTotal = 1
)

// MedalsVsGDP inner-joins the medal totals of a year with the GDP and
// population tables on the country code. Countries missing from either
// table are dropped; missing or invalid values read as 0. Rows with GDP
// below MinGDP or no medal are removed, the rest is sorted by total medals
// (descending, stable) and ranked from 1. The country name is taken from
// the population table.
func MedalsVsGDP(year int, medals []model.MedalTotal, gdp, population model.Table) []model.GDPPoint {
	column := strconv.Itoa(year)
	gdpByCode := index(gdp)
	popByCode := index(population)

	out := make([]model.GDPPoint, 0, len(medals))
	for _, m := range medals {
		g, ok := gdpByCode[m.CountryCode]
		if !ok {
			continue
		}
		p, ok := popByCode[m.CountryCode]
		if !ok {
			continue
		}
		point := model.GDPPoint{
			Year:        year,
			CountryCode: m.CountryCode,
			Country:     m.Country,
			Total:       m.Total,
			GDP:         number(g[column]),
			Population:  number(p[column]),
		}
		if name := p[reconcile.DefaultNameColumn]; name != "" {
			point.Country = name
		}
		if point.GDP < MinGDP || point.Total < MinTotal {
			continue
		}
		out = append(out, point)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func index(t model.Table) map[string]model.Record {
	m := make(map[string]model.Record, len(t.Records))
	for _, r := range t.Records {
		m[r[reconcile.DefaultCodeColumn]] = r
	}
	return m
}

func number(s string) float64 {
	v, _ := model.ParseNumber(s)
	return v
}
