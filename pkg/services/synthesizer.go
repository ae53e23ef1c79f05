package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nsight-ai/nsight-engine/pkg/apperrors"
	"github.com/nsight-ai/nsight-engine/pkg/config"
	"github.com/nsight-ai/nsight-engine/pkg/llm"
	"github.com/nsight-ai/nsight-engine/pkg/prompts"
	"github.com/nsight-ai/nsight-engine/pkg/retry"
	"github.com/nsight-ai/nsight-engine/pkg/sqlguard"
)

// errUnusableCompletion marks a completion that contained no SELECT after
// cleanup. It consumes a retry attempt like a transport failure does.
var errUnusableCompletion = errors.New("completion contained no usable SELECT")

// selectSpanPattern extracts an embedded SELECT statement up to the first
// semicolon or end of text.
var selectSpanPattern = regexp.MustCompile(`(?is)(select\s.*?)(?:;|$)`)

// commentPrefixes are dropped line-by-line from completions before joining.
var commentPrefixes = []string{"#", "//", "--", "Note:", "Question:"}

// SQLSynthesizer turns a natural-language question plus schema text into a
// single read-only SQL statement via the text-generation service.
type SQLSynthesizer struct {
	gen         llm.Generator
	temperature float64
	maxTokens   int
	retryCfg    *retry.Config
	logger      *zap.Logger
	now         func() time.Time
}

// NewSQLSynthesizer creates a synthesizer using the configured sampling knobs.
func NewSQLSynthesizer(gen llm.Generator, cfg *config.AIConfig, logger *zap.Logger) *SQLSynthesizer {
	return &SQLSynthesizer{
		gen:         gen,
		temperature: cfg.SQLTemperature,
		maxTokens:   cfg.SQLMaxTokens,
		retryCfg:    retry.DefaultConfig(),
		logger:      logger.Named("synthesizer"),
		now:         time.Now,
	}
}

// Synthesize produces SQL for the question, retrying the full round trip on
// transport failure or unusable completions. Exhausting the attempt budget
// yields apperrors.ErrSynthesisFailed rather than an empty result.
func (s *SQLSynthesizer) Synthesize(ctx context.Context, question, schemaText string) (string, error) {
	prompt := prompts.BuildSQLPrompt(s.now().Year(), schemaText, question)

	sqlText, err := retry.DoWithResult(ctx, s.retryCfg, func() (string, error) {
		raw, err := s.gen.Generate(ctx, prompt, llm.GenerateOptions{
			Temperature: s.temperature,
			MaxTokens:   s.maxTokens,
		})
		if err != nil {
			return "", err
		}

		candidate := ExtractSQLCandidate(raw)
		if candidate == "" {
			s.logger.Debug("unusable completion", zap.Int("raw_len", len(raw)))
			return "", errUnusableCompletion
		}
		return candidate, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrSynthesisFailed, err)
	}

	limited := sqlguard.EnforceLimit(sqlText)
	s.logger.Info("SQL synthesized",
		zap.String("model", s.gen.Model()),
		zap.Int("sql_len", len(limited)))
	return limited, nil
}

// ExtractSQLCandidate deterministically cleans a raw completion into a
// candidate SELECT statement. Returns "" when no SELECT can be recovered.
//
// Cleanup: strip code fences and backticks, drop blank and comment lines,
// join the rest with single spaces, and if the result does not start with
// SELECT, pull the first embedded SELECT span.
func ExtractSQLCandidate(raw string) string {
	cleaned := strings.NewReplacer("```sql", "", "```SQL", "", "```", "", "`", "").Replace(raw)

	var kept []string
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || hasCommentPrefix(line) {
			continue
		}
		kept = append(kept, line)
	}
	sqlText := strings.TrimSpace(strings.Join(kept, " "))

	if !strings.HasPrefix(strings.ToLower(sqlText), "select") {
		if m := selectSpanPattern.FindStringSubmatch(sqlText); m != nil {
			sqlText = strings.TrimSpace(m[1])
		}
	}
	if !strings.HasPrefix(strings.ToLower(sqlText), "select") {
		return ""
	}
	return sqlText
}

func hasCommentPrefix(line string) bool {
	for _, prefix := range commentPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
