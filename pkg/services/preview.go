package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nsight-ai/nsight-engine/pkg/models"
)

// renderPreview formats up to maxRows of the table as fixed-width text for
// inclusion in model prompts.
func renderPreview(table *models.ResultTable, maxRows int) string {
	names := table.ColumnNames()
	if len(names) == 0 {
		return ""
	}

	rows := table.Rows
	if len(rows) > maxRows {
		rows = rows[:maxRows]
	}

	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, names)
	for _, row := range rows {
		line := make([]string, len(names))
		for i, name := range names {
			line[i] = formatCell(row[name])
		}
		cells = append(cells, line)
	}

	widths := make([]int, len(names))
	for _, line := range cells {
		for i, cell := range line {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	for _, line := range cells {
		for i, cell := range line {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}
