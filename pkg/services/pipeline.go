package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nsight-ai/nsight-engine/pkg/apperrors"
	"github.com/nsight-ai/nsight-engine/pkg/datasource"
	"github.com/nsight-ai/nsight-engine/pkg/models"
	"github.com/nsight-ai/nsight-engine/pkg/observability"
	"github.com/nsight-ai/nsight-engine/pkg/schema"
	"github.com/nsight-ai/nsight-engine/pkg/sqlguard"
)

// QueryOutcome is the full result of one pipeline run.
type QueryOutcome struct {
	SQL      string
	Table    *models.ResultTable
	Insights string
	Chart    *models.ChartSpec
}

// Pipeline runs the end-to-end flow for one question:
// introspect -> synthesize -> validate -> execute -> insight/chart.
// Strictly sequential; the only blocking points are the store and the two
// model calls, all carrying the request context.
type Pipeline struct {
	store     datasource.Store
	synth     *SQLSynthesizer
	insight   *InsightSynthesizer
	validator sqlguard.Validator
	logger    *zap.Logger
}

// NewPipeline wires the pipeline's collaborators.
func NewPipeline(store datasource.Store, synth *SQLSynthesizer, insight *InsightSynthesizer, validator sqlguard.Validator, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		store:     store,
		synth:     synth,
		insight:   insight,
		validator: validator,
		logger:    logger.Named("pipeline"),
	}
}

// Run processes one question to completion. Insight and chart failures
// degrade inside their synthesizer; every other stage failure aborts.
func (p *Pipeline) Run(ctx context.Context, question string) (*QueryOutcome, error) {
	outcome, err := p.run(ctx, question)
	if err != nil {
		observability.QueriesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if outcome.Table.IsEmpty() {
		observability.QueriesTotal.WithLabelValues("empty").Inc()
	} else {
		observability.QueriesTotal.WithLabelValues("ok").Inc()
	}
	return outcome, nil
}

func (p *Pipeline) run(ctx context.Context, question string) (*QueryOutcome, error) {
	desc, err := p.stageIntrospect(ctx)
	if err != nil {
		return nil, err
	}
	if desc.IsEmpty() {
		return nil, fmt.Errorf("%w: no user tables", apperrors.ErrSchemaUnavailable)
	}
	schemaText := schema.Render(desc)

	start := time.Now()
	sqlText, err := p.synth.Synthesize(ctx, question, schemaText)
	observability.PipelineStageDurationSeconds.WithLabelValues("synthesize").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	if err := p.validator.Validate(sqlText); err != nil {
		p.logger.Warn("generated SQL rejected",
			zap.String("sql", sqlText),
			zap.Error(err))
		return nil, err
	}

	start = time.Now()
	table, err := p.store.Execute(ctx, sqlText)
	observability.PipelineStageDurationSeconds.WithLabelValues("execute").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	if table.IsEmpty() {
		return &QueryOutcome{SQL: sqlText, Table: table, Insights: NoDataMessage}, nil
	}

	start = time.Now()
	insights := p.insight.Insights(ctx, table, question, sqlText)
	chart := p.insight.ChartSpec(ctx, table, question)
	observability.PipelineStageDurationSeconds.WithLabelValues("insight").Observe(time.Since(start).Seconds())

	return &QueryOutcome{
		SQL:      sqlText,
		Table:    table,
		Insights: insights,
		Chart:    &chart,
	}, nil
}

func (p *Pipeline) stageIntrospect(ctx context.Context) (models.SchemaDescription, error) {
	start := time.Now()
	desc, err := p.store.Introspect(ctx)
	observability.PipelineStageDurationSeconds.WithLabelValues("introspect").Observe(time.Since(start).Seconds())
	return desc, err
}
