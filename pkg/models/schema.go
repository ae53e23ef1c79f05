package models

// ColumnDescriptor describes a single column from the information schema.
type ColumnDescriptor struct {
	Name     string `json:"name"`
	DataType string `json:"type"`      // e.g. "int", "varchar"
	FullType string `json:"full_type"` // e.g. "varchar(255)"
}

// TableDescription holds everything the prompt builder needs about one table.
type TableDescription struct {
	Name       string             `json:"name"`
	Columns    []ColumnDescriptor `json:"columns"`
	RowCount   int64              `json:"row_count"`
	SampleRows []map[string]any   `json:"sample_rows,omitempty"` // up to 3 rows
}

// SchemaDescription is an ordered list of table descriptions.
// Order follows the catalog query (table name ascending) so the rendered
// prompt text is deterministic.
type SchemaDescription []TableDescription

// IsEmpty reports whether the store has no user tables.
func (s SchemaDescription) IsEmpty() bool {
	return len(s) == 0
}

// TableNames returns the table names in catalog order.
func (s SchemaDescription) TableNames() []string {
	names := make([]string, 0, len(s))
	for _, t := range s {
		names = append(names, t.Name)
	}
	return names
}

// TotalRows sums the row counts of all tables.
func (s SchemaDescription) TotalRows() int64 {
	var total int64
	for _, t := range s {
		total += t.RowCount
	}
	return total
}
