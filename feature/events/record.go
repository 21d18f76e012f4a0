package events

const (
	// KeyColumn is the dedupe key column carried by every synced master table.
	// The name is part of the persisted format and must not change.
	KeyColumn = "_dedupe_key"

	// GeometryColumn holds the canonical JSON encoding of a feature's
	// geometry. Canonical here means sorted object keys and no insignificant
	// whitespace, so textually identical geometries always hash identically.
	GeometryColumn = "_geometry_json"
)

// Row is one flattened event record. Values are the JSON scalars produced by
// decoding feature properties: string, float64, bool or nil.
type Row map[string]any

// Table is an ordered sequence of rows sharing a column layout. Row order is
// append order and is never re-sorted; the master table accumulated across
// runs grows strictly by appending.
type Table struct {
	// Columns is the column layout, in order of first appearance.
	Columns []string
	// Rows are the records, in append order.
	Rows []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether the table layout contains the named column.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column to the layout if it is not already present.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Clone returns a table with copied column and row slices. The Row maps
// themselves are shared: rows are immutable once a dedupe key is assigned.
func (t *Table) Clone() Table {
	if t == nil {
		return Table{}
	}
	out := Table{
		Columns: make([]string, len(t.Columns)),
		Rows:    make([]Row, len(t.Rows)),
	}
	copy(out.Columns, t.Columns)
	copy(out.Rows, t.Rows)
	return out
}
