package insights

import (
	"sort"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
)

// Season filters accepted by CumulativeSeries.
const (
	SeasonSummer = "Summer"
	SeasonWinter = "Winter"
	SeasonBoth   = "Both"
)

// ValidSeason reports whether s is a known season filter.
func ValidSeason(s string) bool {
	return s == SeasonSummer || s == SeasonWinter || s == SeasonBoth
}

// DefaultTopCountries is the number of countries kept by TopCountries when
// no limit is given.
const DefaultTopCountries = 10

// SeriesPoint holds running totals of one country up to and including Year.
type SeriesPoint struct {
	Year   int `json:"year"`
	Score  int `json:"score"`
	Medals int `json:"medals"`
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
}

// Series is the cumulative history of one country.
type Series struct {
	Country string        `json:"country"`
	Points  []SeriesPoint `json:"points"`
}

// Max returns the highest cumulative score of the series.
func (s Series) Max() int {
	best := 0
	for _, p := range s.Points {
		if p.Score > best {
			best = p.Score
		}
	}
	return best
}

// CumulativeSeries builds one series per country name over the buckets of
// the given season, or of every season for SeasonBoth. Points are ordered by
// year and carry running sums. Codes sharing a display name feed the same
// series. Series are returned sorted by country name.
func CumulativeSeries(data model.Data, season string) []Series {
	byCountry := make(map[string][]SeriesPoint)
	for _, key := range data.Keys() {
		if season != SeasonBoth && key.Season != season {
			continue
		}
		bucket := data[key]
		for _, code := range bucket.Codes() {
			s := bucket[code]
			byCountry[s.CountryName] = append(byCountry[s.CountryName], SeriesPoint{
				Year:   key.Year,
				Score:  s.MedalScore,
				Medals: s.TotalMedals,
				Gold:   s.TotalGold,
				Silver: s.TotalSilver,
				Bronze: s.TotalBronze,
			})
		}
	}

	out := make([]Series, 0, len(byCountry))
	for country, points := range byCountry {
		sort.SliceStable(points, func(i, j int) bool { return points[i].Year < points[j].Year })
		for i := 1; i < len(points); i++ {
			prev := points[i-1]
			points[i].Score += prev.Score
			points[i].Medals += prev.Medals
			points[i].Gold += prev.Gold
			points[i].Silver += prev.Silver
			points[i].Bronze += prev.Bronze
		}
		out = append(out, Series{Country: country, Points: points})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Country < out[j].Country })
	return out
}

// TopCountries keeps the n series with the highest cumulative score, best
// first; ties go to the country name in ascending order. n <= 0 means
// DefaultTopCountries.
func TopCountries(series []Series, n int) []Series {
	if n <= 0 {
		n = DefaultTopCountries
	}
	out := append([]Series(nil), series...)
	sort.SliceStable(out, func(i, j int) bool {
		mi, mj := out[i].Max(), out[j].Max()
		if mi != mj {
			return mi > mj
		}
		return out[i].Country < out[j].Country
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
