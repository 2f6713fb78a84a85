package clinical

// Record is one assembled row with columns in training-schema order.
type Record struct {
	columns []string
	values  []float64
}

// Assemble packs collected values into a record ordered like the schema.
func (s *Schema) Assemble(c Collected) Record {
	r := Record{
		columns: s.Columns(),
		values:  make([]float64, len(s.fields)),
	}
	for i, f := range s.fields {
		r.values[i] = c.values[f.Column()]
	}
	return r
}

// NewRecord creates a record from parallel column and value slices (storage hydration, tests).
func NewRecord(columns []string, values []float64) Record {
	cs := make([]string, len(columns))
	copy(cs, columns)
	vs := make([]float64, len(values))
	copy(vs, values)
	return Record{columns: cs, values: vs}
}

// Columns returns the column names in order.
func (r Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Values returns the values aligned with Columns.
func (r Record) Values() []float64 {
	out := make([]float64, len(r.values))
	copy(out, r.values)
	return out
}

// Get returns the value of a column.
func (r Record) Get(column string) (float64, bool) {
	for i, c := range r.columns {
		if c == column {
			return r.values[i], true
		}
	}
	return 0, false
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.columns) }
