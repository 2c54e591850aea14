// Package insights derives read models from aggregated medal data: discipline
// lists, cumulative score series and the medals-vs-GDP table.
package insights

import (
	"sort"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
)

// Disciplines returns the distinct discipline names of a bucket, sorted.
// Countries without medals contribute nothing.
func Disciplines(bucket model.Bucket) []string {
	set := make(map[string]struct{})
	for _, s := range bucket {
		for d := range s.Disciplines {
			set[d] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
