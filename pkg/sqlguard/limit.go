package sqlguard

import "strings"

// aggregateCalls are the function prefixes that mark a pure aggregate query.
var aggregateCalls = []string{"sum(", "count(", "avg(", "min(", "max("}

// EnforceLimit appends a row cap to queries that could return unbounded
// results. Pure and idempotent: a statement already containing "limit"
// anywhere is returned byte-for-byte unchanged.
//
// An un-grouped statement whose only output is aggregate calls legitimately
// returns a single row, so it is left alone. Everything else reading FROM a
// table gains a trailing LIMIT 50.
func EnforceLimit(sql string) string {
	lower := strings.ToLower(sql)
	if strings.Contains(lower, "limit") {
		return sql
	}

	hasAggregate := false
	for _, call := range aggregateCalls {
		if strings.Contains(lower, call) {
			hasAggregate = true
			break
		}
	}
	hasGroupBy := strings.Contains(lower, "group by")
	hasFrom := strings.Contains(lower, "from")

	if hasFrom && (hasGroupBy || !hasAggregate) {
		return strings.TrimRight(sql, ";") + " LIMIT 50;"
	}
	return sql
}
