package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nsight-ai/nsight-engine/pkg/config"
	"github.com/nsight-ai/nsight-engine/pkg/llm"
	"github.com/nsight-ai/nsight-engine/pkg/models"
	"github.com/nsight-ai/nsight-engine/pkg/prompts"
)

// NoDataMessage is returned verbatim for empty result sets, without any
// model invocation.
const NoDataMessage = "No data found for this query."

const (
	insightPreviewRows = 15
	chartPreviewRows   = 10
	statsColumnLimit   = 3
)

// InsightSynthesizer produces the narrative analysis and chart suggestion
// for a result table. Both call paths are single-attempt: a model failure
// degrades to a fallback value instead of aborting the request.
type InsightSynthesizer struct {
	gen         llm.Generator
	temperature float64
	maxTokens   int
	logger      *zap.Logger
}

// NewInsightSynthesizer creates a synthesizer using the configured knobs.
func NewInsightSynthesizer(gen llm.Generator, cfg *config.AIConfig, logger *zap.Logger) *InsightSynthesizer {
	return &InsightSynthesizer{
		gen:         gen,
		temperature: cfg.InsightTemperature,
		maxTokens:   cfg.InsightMaxTokens,
		logger:      logger.Named("insights"),
	}
}

// Insights asks the model for a sectioned business narrative. Failures yield
// a literal error-describing string, never an error return.
func (s *InsightSynthesizer) Insights(ctx context.Context, table *models.ResultTable, question, sqlQuery string) string {
	if table.IsEmpty() {
		return NoDataMessage
	}

	prompt := prompts.BuildInsightPrompt(question, sqlQuery,
		buildSummary(table), renderPreview(table, insightPreviewRows))

	raw, err := s.gen.Generate(ctx, prompt, llm.GenerateOptions{
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	})
	if err != nil {
		s.logger.Warn("insight generation failed", zap.Error(err))
		return fmt.Sprintf("Analysis Error: %v", err)
	}
	return strings.TrimSpace(raw)
}

// ChartSpec asks the model to classify the result into a chart kind. Any
// invocation or parse failure falls back to the table preview spec.
func (s *InsightSynthesizer) ChartSpec(ctx context.Context, table *models.ResultTable, question string) models.ChartSpec {
	prompt := prompts.BuildChartPrompt(question, table.ColumnNames(),
		table.RowCount(), renderPreview(table, chartPreviewRows))

	raw, err := s.gen.Generate(ctx, prompt, llm.GenerateOptions{
		Temperature: s.temperature,
		MaxTokens:   200,
	})
	if err != nil {
		s.logger.Warn("chart spec generation failed", zap.Error(err))
		return models.DefaultChartSpec()
	}

	spec, err := llm.ParseJSONResponse[models.ChartSpec](raw)
	if err != nil || !spec.Valid() {
		s.logger.Debug("chart spec unparseable, using fallback", zap.Error(err))
		return models.DefaultChartSpec()
	}
	return spec
}

// buildSummary assembles the structured data summary the insight prompt
// embeds: row/column counts, null warnings, and basic statistics for the
// first few numeric columns.
func buildSummary(table *models.ResultTable) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Total Rows: %d", table.RowCount()))
	lines = append(lines, fmt.Sprintf("Columns: %s", strings.Join(table.ColumnNames(), ", ")))

	if nullCols := table.NullColumns(); len(nullCols) > 0 {
		lines = append(lines, fmt.Sprintf("WARNING: Found NULL values in columns: %s",
			strings.Join(nullCols, ", ")))
	}

	numeric := table.NumericColumns()
	if len(numeric) > statsColumnLimit {
		numeric = numeric[:statsColumnLimit]
	}
	if len(numeric) > 0 {
		lines = append(lines, "Numeric Statistics:")
		for _, col := range numeric {
			if stats, ok := table.Stats(col); ok {
				lines = append(lines, fmt.Sprintf("- %s: Min=%.2f, Max=%.2f, Mean=%.2f",
					stats.Name, stats.Min, stats.Max, stats.Mean))
			}
		}
	}
	return strings.Join(lines, "\n")
}
