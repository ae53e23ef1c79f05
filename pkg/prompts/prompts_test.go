package prompts

import (
	"strings"
	"testing"
)

func TestBuildSQLPrompt(t *testing.T) {
	got := BuildSQLPrompt(2024, "pnl_data:\n  - Revenue (decimal)", "total revenue this year")

	for _, want := range []string{
		"CURRENT YEAR: 2024",
		"YEAR(table.column_name) = 2024",
		"pnl_data:",
		"USER QUESTION: total revenue this year",
		"MySQL syntax ONLY",
		"READ ONLY queries",
		"Return ONLY the SQL query",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildInsightPrompt(t *testing.T) {
	got := BuildInsightPrompt("q", "SELECT 1", "Total Rows: 3", "a  b")

	for _, want := range []string{
		"USER QUESTION: q",
		"SELECT 1",
		"Total Rows: 3",
		"**Direct Answer:**",
		"**Recommendation:**",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildChartPrompt(t *testing.T) {
	got := BuildChartPrompt("q", []string{"region", "revenue"}, 5, "preview")

	for _, want := range []string{
		"Columns: region, revenue",
		"Row count: 5",
		`"chart": "line|bar|pie|scatter|table"`,
		"Return ONLY valid JSON",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
