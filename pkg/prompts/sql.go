// Package prompts builds the prompt strings sent to the text-generation
// service. All structure in completions is imposed by the callers' parsing;
// these builders only shape the request side.
package prompts

import "fmt"

// BuildSQLPrompt creates the SQL-synthesis prompt. The current calendar year
// is embedded so the model can resolve relative date phrases like "this year".
func BuildSQLPrompt(year int, schemaText, question string) string {
	return fmt.Sprintf(`You are a senior SQL analyst with 10+ years of experience.

CURRENT YEAR: %d

DATABASE SCHEMA:
%s

CRITICAL RULES:
1. Use table.column format (e.g., pnl_data.Revenue)
2. For year filtering:
   - If column type is DATE/DATETIME: use YEAR(table.column_name) = %d
   - If column type is INT (year): use table.column_name = %d
3. For "this year" or "current year", filter by year %d
4. **ALWAYS include numeric values in SELECT** - Never return just category names
5. Use SUM() for totals and include the sum in SELECT
6. Add GROUP BY when aggregating by categories
7. Use ORDER BY DESC for rankings
8. When finding "highest/lowest", include the actual amount in SELECT
9. MySQL syntax ONLY
10. READ ONLY queries
11. Use ONLY existing tables and columns from the schema

USER QUESTION: %s

Return ONLY the SQL query - no explanations, no markdown, no backticks.

SQL:`, year, schemaText, year, year, year, question)
}
