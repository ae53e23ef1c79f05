// Package schema renders a schema description into bounded prompt text.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nsight-ai/nsight-engine/pkg/models"
)

// sampleBudget bounds the serialized sample block per table. Samples that
// would blow up the prompt are simply omitted.
const sampleBudget = 300

// maxSampleRows is how many sample rows make it into the rendered text.
const maxSampleRows = 2

// Render formats a schema description for inclusion in a model prompt:
// per table, one "name (type)" line per column, the row count, and an inline
// sample block when it fits the budget.
func Render(desc models.SchemaDescription) string {
	if desc.IsEmpty() {
		return ""
	}

	var b strings.Builder
	for _, table := range desc {
		b.WriteString(table.Name)
		b.WriteString(":\n")
		for _, col := range table.Columns {
			fmt.Fprintf(&b, "  - %s (%s)\n", col.Name, col.DataType)
		}
		fmt.Fprintf(&b, "  Rows: %d\n", table.RowCount)

		if sample := renderSample(table.SampleRows); sample != "" {
			fmt.Fprintf(&b, "  Sample: %s\n", sample)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderSample serializes up to maxSampleRows rows, returning "" when the
// JSON exceeds the budget or cannot be produced.
func renderSample(rows []map[string]any) string {
	if len(rows) == 0 {
		return ""
	}
	if len(rows) > maxSampleRows {
		rows = rows[:maxSampleRows]
	}
	encoded, err := json.Marshal(rows)
	if err != nil {
		return ""
	}
	if len(encoded) >= sampleBudget {
		return ""
	}
	return string(encoded)
}
