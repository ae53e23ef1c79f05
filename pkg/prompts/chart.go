package prompts

import (
	"fmt"
	"strings"
)

// BuildChartPrompt asks the model to classify a result set into one of the
// known chart kinds, returned as strict JSON.
func BuildChartPrompt(question string, columns []string, rowCount int, preview string) string {
	return fmt.Sprintf(`Analyze this data and decide the best visualization.

Columns: %s
Row count: %d
User question: %s

Data preview:
%s

Return ONLY valid JSON (no text, no markdown):

{
  "chart": "line|bar|pie|scatter|table",
  "x": "column_name",
  "y": "column_name",
  "title": "Chart Title"
}

For single values, use "table".
For time series, use "line".
For comparisons, use "bar".
For proportions, use "pie".`, strings.Join(columns, ", "), rowCount, question, preview)
}
