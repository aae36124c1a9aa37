package models

import (
	"time"
)

// Kind is the storage class of a dataset column.
type Kind string

const (
	KindNumeric  Kind = "numeric"
	KindString   Kind = "string"
	KindTemporal Kind = "temporal"
	KindBoolean  Kind = "boolean"
)

type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Dataset is a tabular query result: ordered columns and row-major records.
// Cell values are nil, int64, float64, string, bool or time.Time.
type Dataset struct {
	Columns []Column
	Rows    [][]any
}

// NewDataset builds a dataset from column names and rows, inferring each
// column kind from its values.
func NewDataset(names []string, rows [][]any) *Dataset {
	normalized := make([][]any, len(rows))
	for i, row := range rows {
		r := make([]any, len(names))
		for j := range names {
			if j < len(row) {
				r[j] = NormalizeValue(row[j])
			}
		}
		normalized[i] = r
	}

	columns := make([]Column, len(names))
	for j, name := range names {
		columns[j] = Column{Name: name, Kind: inferKind(normalized, j)}
	}

	ds := &Dataset{Columns: columns, Rows: normalized}
	ds.settleKinds()
	return ds
}

// NewTypedDataset builds a dataset whose column kinds are already known,
// typically from the database driver. A column holding a value its kind
// cannot represent becomes a string column, and string columns hold only
// text, so a result classifies the same way after a snapshot round trip.
func NewTypedDataset(columns []Column, rows [][]any) *Dataset {
	if rows == nil {
		rows = [][]any{}
	}
	ds := &Dataset{Columns: columns, Rows: rows}
	ds.settleKinds()
	return ds
}

func (d *Dataset) NumRows() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

func (d *Dataset) NumCols() int {
	if d == nil {
		return 0
	}
	return len(d.Columns)
}

func (d *Dataset) IsEmpty() bool {
	return d.NumRows() == 0
}

func (d *Dataset) ColumnNames() []string {
	names := make([]string, 0, d.NumCols())
	for _, c := range d.Columns {
		names = append(names, c.Name)
	}
	return names
}

// ColumnIndex returns the position of the named column or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (d *Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// Values returns a copy of the named column's values in row order.
func (d *Dataset) Values(name string) []any {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]any, len(d.Rows))
	for i, row := range d.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out
}

// Floats returns the non-missing numeric values of the named column.
func (d *Dataset) Floats(name string) []float64 {
	var out []float64
	for _, v := range d.Values(name) {
		if f, ok := ToFloat(v); ok && !IsMissing(v) {
			out = append(out, f)
		}
	}
	return out
}

// Records converts the first n rows into JSON-safe maps keyed by column name.
func (d *Dataset) Records(n int) []map[string]any {
	if n > d.NumRows() || n < 0 {
		n = d.NumRows()
	}
	out := make([]map[string]any, 0, n)
	for _, row := range d.Rows[:n] {
		rec := make(map[string]any, len(d.Columns))
		for j, c := range d.Columns {
			var v any
			if j < len(row) {
				v = row[j]
			}
			rec[c.Name] = JSONValue(v)
		}
		out = append(out, rec)
	}
	return out
}

func inferKind(rows [][]any, col int) Kind {
	var kind Kind
	for _, row := range rows {
		v := row[col]
		if v == nil {
			continue
		}
		var k Kind
		switch v.(type) {
		case int64, float64:
			k = KindNumeric
		case string:
			k = KindString
		case time.Time:
			k = KindTemporal
		case bool:
			k = KindBoolean
		default:
			k = KindString
		}
		if kind == "" {
			kind = k
			continue
		}
		if kind != k {
			// mixed values behave like free-form text
			return KindString
		}
	}
	if kind == "" {
		return KindString
	}
	return kind
}

func (d *Dataset) settleKinds() {
	for j := range d.Columns {
		if d.Columns[j].Kind != KindString && !d.columnFits(j, fitsKind(d.Columns[j].Kind)) {
			d.Columns[j].Kind = KindString
		}
		if d.Columns[j].Kind != KindString {
			continue
		}
		for _, row := range d.Rows {
			if j >= len(row) {
				continue
			}
			if IsMissing(row[j]) {
				row[j] = nil
				continue
			}
			if _, ok := row[j].(string); !ok {
				row[j] = Label(row[j])
			}
		}
	}
}

func (d *Dataset) columnFits(col int, fits func(any) bool) bool {
	for _, row := range d.Rows {
		if col >= len(row) || IsMissing(row[col]) {
			continue
		}
		if !fits(row[col]) {
			return false
		}
	}
	return true
}

func fitsKind(k Kind) func(any) bool {
	switch k {
	case KindNumeric:
		return func(v any) bool { _, ok := ToFloat(v); return ok }
	case KindTemporal:
		return func(v any) bool { _, ok := v.(time.Time); return ok }
	case KindBoolean:
		return func(v any) bool { _, ok := v.(bool); return ok }
	default:
		return func(any) bool { return false }
	}
}
