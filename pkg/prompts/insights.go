package prompts

import "fmt"

// BuildInsightPrompt creates the narrative-analysis prompt from a prepared
// data summary and preview.
func BuildInsightPrompt(question, sqlQuery, summary, preview string) string {
	return fmt.Sprintf(`You are a senior data analyst. Analyze this query result and provide actionable business insights.

USER QUESTION: %s

SQL QUERY:
%s

DATA SUMMARY:
%s

DATA PREVIEW:
%s

INSTRUCTIONS:
1. BE CONCISE - Focus on numbers immediately
2. Start with the direct answer using actual numbers
3. Provide 2-3 specific insights with bold for key numbers
4. One clear recommendation

FORMAT:
**Direct Answer:** [Answer with numbers]

**Key Findings:**
- [Insight 1]
- [Insight 2]
- [Insight 3]

**Recommendation:** [Action]

ANALYSIS:`, question, sqlQuery, summary, preview)
}
