package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tourclean/internal/config"
	"tourclean/internal/infrastructure"
	"tourclean/pkg/contracts/domain"
)

// Stage names used in logs, spans and metrics
const (
	StageNormalize   = "normalize"
	StageCurrency    = "currency"
	StageImpute      = "impute"
	StageDeduplicate = "deduplicate"
)

// CleanReport collects what every stage of one run did
type CleanReport struct {
	Normalize           NormalizeResult
	Currency            []ColumnCoercion
	Imputation          []ColumnImputation
	DuplicatesRemoved   int
	DuplicatesRemaining int
	RowsIn              int
	RowsOut             int
}

// CoercedColumns lists every column converted to numbers, in stage order
func (r *CleanReport) CoercedColumns() []string {
	cols := make([]string, 0, len(r.Normalize.Coerced)+len(r.Currency))
	for _, c := range r.Normalize.Coerced {
		cols = append(cols, c.Column)
	}
	for _, c := range r.Currency {
		cols = append(cols, c.Column)
	}
	return cols
}

// ImputedValues is the total number of cells filled
func (r *CleanReport) ImputedValues() int {
	n := 0
	for _, im := range r.Imputation {
		n += im.Filled
	}
	return n
}

// Cleaner runs the fixed cleaning sequence: normalize columns, parse
// currency, impute missing values, remove duplicate rows
type Cleaner struct {
	normalizer ColumnNormalizer
	currency   CurrencyParser
	imputer    Imputer

	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
	logger  *slog.Logger
}

// CleanerOption configures a Cleaner
type CleanerOption func(*Cleaner)

// WithTracer sets the tracer used for stage spans
func WithTracer(tr trace.Tracer) CleanerOption {
	return func(c *Cleaner) { c.tracer = tr }
}

// WithMetrics sets the instruments stages record to
func WithMetrics(m *infrastructure.PipelineMetrics) CleanerOption {
	return func(c *Cleaner) { c.metrics = m }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) CleanerOption {
	return func(c *Cleaner) { c.logger = l }
}

// NewCleaner builds a Cleaner from the column-role table. The roles are read
// once here; later changes to cols have no effect.
func NewCleaner(cols config.ColumnsConfig, opts ...CleanerOption) *Cleaner {
	c := &Cleaner{
		normalizer: ColumnNormalizer{
			Irrelevant:     cols.Irrelevant,
			BracketNumeric: append([]string(nil), cols.BracketNumeric...),
			Count:          append([]string(nil), cols.Count...),
		},
		currency: CurrencyParser{Columns: append([]string(nil), cols.Currency...)},
		imputer:  Imputer{FallbackText: cols.FallbackText},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = otel.GetTracerProvider().Tracer(infrastructure.MeterName)
	}
	if c.logger == nil {
		c.logger = infrastructure.GetLogger()
	}
	return c
}

// Clean runs every stage and returns the cleaned table. The input table is
// never modified.
func (c *Cleaner) Clean(ctx context.Context, t *domain.Table) (*domain.Table, *CleanReport) {
	ctx, span := c.tracer.Start(ctx, "clean", trace.WithAttributes(
		attribute.Int("rows_in", t.Len()),
		attribute.Int("columns_in", len(t.Columns)),
	))
	defer span.End()

	report := &CleanReport{RowsIn: t.Len()}

	cur := c.stage(ctx, StageNormalize, func(ctx context.Context) *domain.Table {
		out, res := c.normalizer.Normalize(t)
		report.Normalize = res
		c.recordCoercions(ctx, StageNormalize, res.Coerced)
		if res.DroppedColumn != "" {
			c.logger.InfoContext(ctx, "Dropped irrelevant column", slog.String("column", res.DroppedColumn))
		}
		return out
	})

	cur = c.stage(ctx, StageCurrency, func(ctx context.Context) *domain.Table {
		out, res := c.currency.Parse(cur)
		report.Currency = res
		c.recordCoercions(ctx, StageCurrency, res)
		return out
	})

	cur = c.stage(ctx, StageImpute, func(ctx context.Context) *domain.Table {
		out, res := c.imputer.Impute(cur)
		report.Imputation = res
		span := trace.SpanFromContext(ctx)
		for _, im := range res {
			c.metrics.RecordImputation(ctx, im.Column, string(im.Kind), im.Filled)
			if im.Filled > 0 {
				span.AddEvent("imputed", trace.WithAttributes(
					attribute.String("column", im.Column),
					attribute.String("kind", string(im.Kind)),
					attribute.Int("filled", im.Filled)))
				c.logger.DebugContext(ctx, "Imputed column",
					slog.String("column", im.Column),
					slog.String("kind", string(im.Kind)),
					slog.Int("filled", im.Filled),
					slog.String("fill_value", im.FillValue.String()))
			}
		}
		return out
	})

	cur = c.stage(ctx, StageDeduplicate, func(ctx context.Context) *domain.Table {
		out, removed := Deduplicate(cur)
		report.DuplicatesRemoved = removed
		report.DuplicatesRemaining = CountDuplicates(out)
		c.metrics.RecordDuplicatesRemoved(ctx, removed)
		trace.SpanFromContext(ctx).SetAttributes(attribute.Int("duplicates_removed", removed))
		return out
	})

	report.RowsOut = cur.Len()
	span.SetAttributes(
		attribute.Int("rows_out", report.RowsOut),
		attribute.Int("duplicates_removed", report.DuplicatesRemoved),
	)

	c.logger.InfoContext(ctx, "Cleaning complete",
		slog.Int("rows_in", report.RowsIn),
		slog.Int("rows_out", report.RowsOut),
		slog.Int("values_imputed", report.ImputedValues()),
		slog.Int("duplicates_removed", report.DuplicatesRemoved))

	return cur, report
}

// stage wraps one step in a span and a duration measurement. fn gets the
// stage span's context.
func (c *Cleaner) stage(ctx context.Context, name string, fn func(context.Context) *domain.Table) *domain.Table {
	ctx, span := c.tracer.Start(ctx, name)
	defer span.End()

	start := time.Now()
	out := fn(ctx)
	c.metrics.RecordStage(ctx, name, time.Since(start))

	span.SetAttributes(attribute.Int("rows", out.Len()), attribute.Int("columns", len(out.Columns)))
	return out
}

func (c *Cleaner) recordCoercions(ctx context.Context, stage string, coerced []ColumnCoercion) {
	span := trace.SpanFromContext(ctx)
	for _, co := range coerced {
		c.metrics.RecordCoercion(ctx, co.Column, stage, co.BecameMissing)
		if co.BecameMissing > 0 {
			span.AddEvent("coercion_failed", trace.WithAttributes(
				attribute.String("column", co.Column),
				attribute.Int("count", co.BecameMissing)))
			c.logger.DebugContext(ctx, "Values failed numeric coercion",
				slog.String("stage", stage),
				slog.String("column", co.Column),
				slog.Int("count", co.BecameMissing))
		}
	}
}
