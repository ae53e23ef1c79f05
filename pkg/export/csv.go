package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/nsight-ai/nsight-engine/pkg/models"
)

// CSV serializes the full result table: a header row followed by every data
// row. Numerics render without exponent notation, nulls as empty cells.
func CSV(table *models.ResultTable) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	names := table.ColumnNames()
	if err := w.Write(names); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for _, row := range table.Rows {
		record := make([]string, len(names))
		for i, name := range names {
			record[i] = formatCSVCell(row[name])
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	return buf.Bytes(), nil
}

func formatCSVCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}
