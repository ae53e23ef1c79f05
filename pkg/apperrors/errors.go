package apperrors

import "errors"

var (
	// ErrSchemaUnavailable means the metadata query failed or the store is unreachable.
	ErrSchemaUnavailable = errors.New("schema unavailable")

	// ErrSynthesisFailed means the model produced no usable SELECT after all retries.
	// Distinct from a query that legitimately returns zero rows.
	ErrSynthesisFailed = errors.New("sql synthesis failed")

	// ErrExecutionFailed wraps a store error for a validated query.
	ErrExecutionFailed = errors.New("query execution failed")

	// ErrEmptyQuery is returned when a candidate query is empty or blank.
	ErrEmptyQuery = errors.New("empty SQL query")

	// ErrNotAReadQuery is returned when a candidate query does not start with SELECT.
	ErrNotAReadQuery = errors.New("only SELECT queries allowed")
)
