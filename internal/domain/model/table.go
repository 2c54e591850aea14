package model

// Record is one row of a tabular dataset keyed by column name.
type Record map[string]string

// Clone returns a copy of the record.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Table is a generic tabular dataset such as GDP or population,
// with a header and one record per row.
type Table struct {
	Columns []string
	Records []Record
}

// HasColumn reports whether the header contains name.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Clone deep-copies the table.
func (t Table) Clone() Table {
	out := Table{
		Columns: append([]string(nil), t.Columns...),
		Records: make([]Record, len(t.Records)),
	}
	for i, r := range t.Records {
		out.Records[i] = r.Clone()
	}
	return out
}
