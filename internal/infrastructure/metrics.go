package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PipelineMetrics holds the instruments recorded by one cleaning run.
// A nil *PipelineMetrics records nothing.
type PipelineMetrics struct {
	rowsRead          metric.Int64Counter
	rowsWritten       metric.Int64Counter
	valuesCoerced     metric.Int64Counter
	valuesImputed     metric.Int64Counter
	duplicatesRemoved metric.Int64Counter
	stageDuration     metric.Float64Histogram
	failures          metric.Int64Counter
}

// NewPipelineMetrics creates the cleaning instruments on the given meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsRead, err := meter.Int64Counter(
		"tourclean_rows_read",
		metric.WithDescription("Rows loaded from the input table"),
	)
	if err != nil {
		return nil, err
	}

	rowsWritten, err := meter.Int64Counter(
		"tourclean_rows_written",
		metric.WithDescription("Rows written to the output table"),
	)
	if err != nil {
		return nil, err
	}

	valuesCoerced, err := meter.Int64Counter(
		"tourclean_values_coerced_missing",
		metric.WithDescription("Values that failed numeric coercion and became missing"),
	)
	if err != nil {
		return nil, err
	}

	valuesImputed, err := meter.Int64Counter(
		"tourclean_values_imputed",
		metric.WithDescription("Missing values replaced during imputation"),
	)
	if err != nil {
		return nil, err
	}

	duplicatesRemoved, err := meter.Int64Counter(
		"tourclean_duplicate_rows_removed",
		metric.WithDescription("Duplicate rows dropped"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"tourclean_stage_duration_seconds",
		metric.WithDescription("Duration of each pipeline stage"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter(
		"tourclean_failures",
		metric.WithDescription("Read and write failures"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		rowsRead:          rowsRead,
		rowsWritten:       rowsWritten,
		valuesCoerced:     valuesCoerced,
		valuesImputed:     valuesImputed,
		duplicatesRemoved: duplicatesRemoved,
		stageDuration:     stageDuration,
		failures:          failures,
	}, nil
}

// RecordRowsRead records the size of the loaded table
func (m *PipelineMetrics) RecordRowsRead(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.rowsRead.Add(ctx, int64(n))
}

// RecordRowsWritten records the size of the saved table
func (m *PipelineMetrics) RecordRowsWritten(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.rowsWritten.Add(ctx, int64(n))
}

// RecordCoercion records values of a column that became missing
func (m *PipelineMetrics) RecordCoercion(ctx context.Context, column, stage string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.valuesCoerced.Add(ctx, int64(n), metric.WithAttributes(
		attribute.String("column", column),
		attribute.String("stage", stage),
	))
}

// RecordImputation records values filled in a column
func (m *PipelineMetrics) RecordImputation(ctx context.Context, column, kind string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.valuesImputed.Add(ctx, int64(n), metric.WithAttributes(
		attribute.String("column", column),
		attribute.String("kind", kind),
	))
}

// RecordDuplicatesRemoved records rows dropped by deduplication
func (m *PipelineMetrics) RecordDuplicatesRemoved(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.duplicatesRemoved.Add(ctx, int64(n))
}

// RecordStage records how long a stage took
func (m *PipelineMetrics) RecordStage(ctx context.Context, stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordFailure records a read or write failure
func (m *PipelineMetrics) RecordFailure(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
