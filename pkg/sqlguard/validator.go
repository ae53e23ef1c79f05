// Package sqlguard provides lexical SQL safety validation for
// model-generated queries. It is a deliberate heuristic layer: matching is
// substring-based with no tokenizer, so a column literally named
// "update_count" trips the forbidden-keyword check. The Validator interface
// isolates the heuristic so it can be swapped for a real parser later
// without touching callers.
package sqlguard

import (
	"fmt"
	"strings"

	libinjection "github.com/corazawaf/libinjection-go"

	"github.com/nsight-ai/nsight-engine/pkg/apperrors"
)

// forbiddenKeywords rejects any statement that could mutate state or DDL.
// Matched case-insensitively as substrings anywhere in the statement.
var forbiddenKeywords = []string{
	"insert", "update", "delete", "drop", "alter",
	"truncate", "create", "grant", "revoke",
}

// UnsafeQueryError names the forbidden keyword (or injection fingerprint)
// that caused rejection.
type UnsafeQueryError struct {
	Keyword     string
	Fingerprint string // libinjection fingerprint, when set the rejection came from the SQLi scan
}

func (e *UnsafeQueryError) Error() string {
	if e.Fingerprint != "" {
		return fmt.Sprintf("unsafe SQL: injection pattern detected (fingerprint %s)", e.Fingerprint)
	}
	return fmt.Sprintf("unsafe SQL operation: %s", e.Keyword)
}

// Validator checks a candidate SQL statement for safety.
type Validator interface {
	Validate(sql string) error
}

// KeywordValidator is the substring-matching implementation of Validator.
type KeywordValidator struct {
	// CheckInjection additionally runs the statement's string literals
	// through libinjection. Off by default: generated SELECTs routinely
	// look like injections to a fingerprint scanner.
	CheckInjection bool
}

// NewValidator returns the default keyword validator.
func NewValidator() *KeywordValidator {
	return &KeywordValidator{}
}

// Validate rejects empty statements, statements containing forbidden keyword
// substrings, and statements that do not begin with SELECT.
func (v *KeywordValidator) Validate(sql string) error {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return apperrors.ErrEmptyQuery
	}

	lower := strings.ToLower(trimmed)
	for _, keyword := range forbiddenKeywords {
		if strings.Contains(lower, keyword) {
			return &UnsafeQueryError{Keyword: keyword}
		}
	}

	if !strings.HasPrefix(lower, "select") {
		return apperrors.ErrNotAReadQuery
	}

	if v.CheckInjection {
		if err := checkLiteralInjection(trimmed); err != nil {
			return err
		}
	}
	return nil
}

// checkLiteralInjection runs string literal contents through libinjection as
// a second heuristic layer on top of the keyword scan.
func checkLiteralInjection(sql string) error {
	for _, lit := range extractStringLiterals(sql) {
		if isSQLi, fingerprint := libinjection.IsSQLi(lit); isSQLi {
			return &UnsafeQueryError{Fingerprint: string(fingerprint)}
		}
	}
	return nil
}

// extractStringLiterals pulls the contents of single-quoted literals.
// SQL standard doubled quotes ('') are treated as escaped quotes.
func extractStringLiterals(sql string) []string {
	var literals []string
	var current strings.Builder
	inString := false

	for i := 0; i < len(sql); i++ {
		c := sql[i]
		if !inString {
			if c == '\'' {
				inString = true
				current.Reset()
			}
			continue
		}
		if c == '\'' {
			if i+1 < len(sql) && sql[i+1] == '\'' {
				current.WriteByte('\'')
				i++
				continue
			}
			inString = false
			literals = append(literals, current.String())
			continue
		}
		current.WriteByte(c)
	}
	return literals
}
