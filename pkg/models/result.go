package models

import (
	"fmt"
	"strconv"
)

// ColumnKind tags a result column as text or numeric. The tag is assigned
// once, after a single coercion pass over the column's values; rendering code
// never re-inspects individual cells.
type ColumnKind string

const (
	ColumnText    ColumnKind = "text"
	ColumnNumeric ColumnKind = "numeric"
)

// ResultColumn is a tagged column of a result table.
type ResultColumn struct {
	Name string     `json:"name"`
	Kind ColumnKind `json:"kind"`
}

// ResultTable holds query results with a stable column order matching the
// executed query's projection. Cell values are nil, float64, or string.
type ResultTable struct {
	Columns []ResultColumn   `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// NewResultTable builds a table from raw rows and runs numeric coercion.
// A text column converts to numeric when at least one non-null value parses
// as a number; values that fail to parse become null. Columns where every
// value fails stay text, unchanged.
func NewResultTable(columnNames []string, rows []map[string]any) *ResultTable {
	t := &ResultTable{
		Columns: make([]ResultColumn, len(columnNames)),
		Rows:    rows,
	}
	for i, name := range columnNames {
		t.Columns[i] = ResultColumn{Name: name, Kind: ColumnText}
	}
	t.coerceNumeric()
	return t
}

// RowCount returns the number of rows.
func (t *ResultTable) RowCount() int {
	return len(t.Rows)
}

// IsEmpty reports whether the table has no rows.
func (t *ResultTable) IsEmpty() bool {
	return len(t.Rows) == 0
}

// ColumnNames returns column names in projection order.
func (t *ResultTable) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// NumericColumns returns the names of columns tagged numeric, in order.
func (t *ResultTable) NumericColumns() []string {
	var names []string
	for _, c := range t.Columns {
		if c.Kind == ColumnNumeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// NullColumns returns the names of columns containing at least one null.
func (t *ResultTable) NullColumns() []string {
	var names []string
	for _, c := range t.Columns {
		for _, row := range t.Rows {
			if row[c.Name] == nil {
				names = append(names, c.Name)
				break
			}
		}
	}
	return names
}

// ColumnStats holds basic statistics for a numeric column.
type ColumnStats struct {
	Name string
	Min  float64
	Max  float64
	Mean float64
}

// Stats computes min/max/mean over the non-null values of a numeric column.
// Returns false when the column is not numeric or has no non-null values.
func (t *ResultTable) Stats(column string) (ColumnStats, bool) {
	kind := ColumnText
	for _, c := range t.Columns {
		if c.Name == column {
			kind = c.Kind
			break
		}
	}
	if kind != ColumnNumeric {
		return ColumnStats{}, false
	}

	var (
		n   int
		sum float64
		min float64
		max float64
	)
	for _, row := range t.Rows {
		v, ok := row[column].(float64)
		if !ok {
			continue
		}
		if n == 0 {
			min, max = v, v
		} else {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		sum += v
		n++
	}
	if n == 0 {
		return ColumnStats{}, false
	}
	return ColumnStats{Name: column, Min: min, Max: max, Mean: sum / float64(n)}, true
}

// coerceNumeric runs the single coercion pass that assigns column kinds.
func (t *ResultTable) coerceNumeric() {
	for i, col := range t.Columns {
		parsed := make(map[int]float64)
		anyParsed := false
		allNumericOrNull := true

		for rowIdx, row := range t.Rows {
			v := row[col.Name]
			if v == nil {
				continue
			}
			f, ok := asFloat(v)
			if ok {
				parsed[rowIdx] = f
				anyParsed = true
			} else {
				allNumericOrNull = false
			}
		}

		// Best-effort heuristic: convert when at least one value parses.
		// Unparseable stragglers become null rather than blocking the column.
		if !anyParsed {
			t.stringify(col.Name)
			continue
		}
		t.Columns[i].Kind = ColumnNumeric
		for rowIdx, row := range t.Rows {
			if f, ok := parsed[rowIdx]; ok {
				row[col.Name] = f
			} else if row[col.Name] != nil && !allNumericOrNull {
				row[col.Name] = nil
			}
		}
	}
}

// stringify normalizes a text column so every non-null cell is a string.
// Drivers hand back []byte for most MySQL values.
func (t *ResultTable) stringify(column string) {
	for _, row := range t.Rows {
		switch v := row[column].(type) {
		case nil, string:
		case []byte:
			row[column] = string(v)
		default:
			row[column] = fmt.Sprintf("%v", v)
		}
	}
}

// asFloat attempts to interpret a driver value as a number.
func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case []byte:
		f, err := strconv.ParseFloat(string(x), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// TableFromRecords rebuilds a typed table from JSON-decoded row records, as
// posted to the download endpoints. Column order follows the order slice when
// provided, otherwise the first record's iteration order is not stable, so
// callers should pass the order explicitly.
func TableFromRecords(columnOrder []string, records []map[string]any) *ResultTable {
	if len(columnOrder) == 0 && len(records) > 0 {
		for name := range records[0] {
			columnOrder = append(columnOrder, name)
		}
	}
	return NewResultTable(columnOrder, records)
}
