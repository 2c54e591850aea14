// Package reconcile maps the country identifiers of auxiliary datasets onto
// the NOC codes used by the results data.
package reconcile

import "github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"

// RegionMap is a bidirectional NOC <-> region lookup built once per pipeline
// run from the NOC reference dataset. It is immutable after construction and
// safe for concurrent reads.
type RegionMap struct {
	byNOC    map[string]string
	byRegion map[string]string
}

// NewRegionMap indexes rows in both directions. When a NOC or a region appears
// more than once, the last row wins. Empty regions are not indexed in the
// region -> NOC direction.
func NewRegionMap(rows []model.NOCRegion) *RegionMap {
	m := &RegionMap{
		byNOC:    make(map[string]string, len(rows)),
		byRegion: make(map[string]string, len(rows)),
	}
	for _, r := range rows {
		if r.NOC == "" {
			continue
		}
		m.byNOC[r.NOC] = r.Region
		if r.Region != "" {
			m.byRegion[r.Region] = r.NOC
		}
	}
	return m
}

// HasNOC reports whether code is a known NOC.
func (m *RegionMap) HasNOC(code string) bool {
	if m == nil {
		return false
	}
	_, ok := m.byNOC[code]
	return ok
}

// Region returns the region name of a NOC.
func (m *RegionMap) Region(noc string) (string, bool) {
	if m == nil {
		return "", false
	}
	r, ok := m.byNOC[noc]
	return r, ok
}

// NOC returns the NOC code of a region name.
func (m *RegionMap) NOC(region string) (string, bool) {
	if m == nil {
		return "", false
	}
	n, ok := m.byRegion[region]
	return n, ok
}

// CountryName resolves the display name of a NOC, falling back to
// model.UnknownCountry.
func (m *RegionMap) CountryName(noc string) string {
	if r, ok := m.Region(noc); ok && r != "" {
		return r
	}
	return model.UnknownCountry
}

// Len returns the number of known NOCs.
func (m *RegionMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.byNOC)
}
