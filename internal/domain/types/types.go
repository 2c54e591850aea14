// Package types contains read shapes shared by the store, the API and the CLI.
package types

import (
	"sort"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
)

// Entry represents one country in a bucket ranking.
type Entry struct {
	Rank        int    `json:"rank"`
	Code        string `json:"code"`
	CountryName string `json:"countryName"`
	MedalScore  int    `json:"medalScore"`
	TotalMedals int    `json:"totalMedals"`
	Gold        int    `json:"gold"`
	Silver      int    `json:"silver"`
	Bronze      int    `json:"bronze"`
}

// NewEntry builds an unranked entry from country stats.
func NewEntry(code string, s *model.CountryYearStats) Entry {
	return Entry{
		Code:        code,
		CountryName: s.CountryName,
		MedalScore:  s.MedalScore,
		TotalMedals: s.TotalMedals,
		Gold:        s.TotalGold,
		Silver:      s.TotalSilver,
		Bronze:      s.TotalBronze,
	}
}

// Before reports whether e ranks ahead of o: higher medal score first, then
// lower country code.
func (e Entry) Before(o Entry) bool {
	if e.MedalScore != o.MedalScore {
		return e.MedalScore > o.MedalScore
	}
	return e.Code < o.Code
}

// Rank returns the entries of a bucket in ranking order with Rank set from 1.
func Rank(bucket model.Bucket) []Entry {
	out := make([]Entry, 0, len(bucket))
	for code, s := range bucket {
		out = append(out, NewEntry(code, s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
