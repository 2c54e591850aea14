package reconcile

import "github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"

// Default column names of the World Bank style GDP and population datasets.
const (
	DefaultCodeColumn = "Country Code"
	DefaultNameColumn = "Country Name"
)

// Option applies a configuration option to the Reconciler.
type Option func(*Reconciler)

// WithColumns sets the code and name columns to read.
func WithColumns(codeColumn, nameColumn string) Option {
	return func(r *Reconciler) {
		if codeColumn != "" {
			r.codeColumn = codeColumn
		}
		if nameColumn != "" {
			r.nameColumn = nameColumn
		}
	}
}

// Reconciler rewrites country codes of auxiliary datasets to NOC codes.
type Reconciler struct {
	regions    *RegionMap
	codeColumn string
	nameColumn string
}

// New creates a Reconciler bound to a region map.
func New(regions *RegionMap, opts ...Option) *Reconciler {
	r := &Reconciler{
		regions:    regions,
		codeColumn: DefaultCodeColumn,
		nameColumn: DefaultNameColumn,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report counts the outcome of one reconciliation.
type Report struct {
	Known      int // code already a NOC
	Fixed      int // code replaced through the region name
	Unresolved int // neither code nor name matched; left unchanged
}

// Reconcile returns a copy of t in which every record whose code is not a
// known NOC, but whose country name is a known region, carries that region's
// NOC instead. Records are otherwise unchanged and t is not modified.
//
// Only one name -> code hop is attempted: states that were renamed, merged or
// dissolved match only if the reference dataset lists their current name.
func (r *Reconciler) Reconcile(t model.Table) (model.Table, Report) {
	out := t.Clone()
	var rep Report
	for _, rec := range out.Records {
		code := rec[r.codeColumn]
		if r.regions.HasNOC(code) {
			rep.Known++
			continue
		}
		noc, ok := r.regions.NOC(rec[r.nameColumn])
		if !ok {
			rep.Unresolved++
			continue
		}
		rec[r.codeColumn] = noc
		rep.Fixed++
	}
	return out, rep
}
