package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"tourclean/internal/config"
	"tourclean/internal/dataprocessing"
	apperrors "tourclean/internal/errors"
	"tourclean/internal/exporter"
	"tourclean/internal/infrastructure"
	"tourclean/internal/report"
	"tourclean/internal/validation"
	"tourclean/pkg/contracts/domain"
)

// Application wires the loader, cleaner, writer and diagnostics of one run
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Printer       *report.Printer
	Cleaner       *dataprocessing.Cleaner
	Writer        *exporter.TableWriter
	Validator     *validation.FileValidator
}

// NewApplication creates the application from a loaded configuration.
// Diagnostics are printed to out; logs go where cfg.Logging says.
func NewApplication(ctx context.Context, cfg *config.Config, out io.Writer) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.InfoContext(ctx, "Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("input", cfg.Input.Path),
		slog.String("output", cfg.Output.Path))

	otelProviders, err := infrastructure.InitializeOTel(ctx, cfg.Tracing, cfg.Metrics, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	return &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Printer:       report.NewPrinter(out, cfg.Report.HeadRows),
		Cleaner: dataprocessing.NewCleaner(cfg.Columns,
			dataprocessing.WithTracer(otelProviders.Tracer),
			dataprocessing.WithMetrics(otelProviders.Metrics),
			dataprocessing.WithLogger(logger),
		),
		Writer:    exporter.NewTableWriter(logger),
		Validator: validation.NewFileValidator(logger),
	}, nil
}

// Run loads, cleans and saves the table, printing diagnostics along the way.
// A read failure or an output path that would replace the input is returned
// and nothing is cleaned or written. A write failure is printed and logged
// but Run still returns nil.
func (a *Application) Run(ctx context.Context) error {
	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := a.OTelProviders.StartSpan(ctx, "run")
	defer span.End()

	span.SetAttributes(
		attribute.String("input", a.Config.Input.Path),
		attribute.String("output", a.Config.Output.Path),
	)
	metrics := a.OTelProviders.Metrics

	if err := a.Validator.ValidateOutputFile(a.Config.Output.Path, a.Config.Input.Path); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid output")
		return apperrors.NewConfigError("invalid output path", err)
	}

	original, err := a.load(ctx)
	if err != nil {
		a.Printer.ReadFailed(err)
		metrics.RecordFailure(ctx, "read")
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return err
	}
	metrics.RecordRowsRead(ctx, original.Len())

	a.Printer.Section("INITIAL DATA (BEFORE CLEANING)")
	a.Printer.Head(original)
	a.Printer.Section("Initial Info (Types & Missing)")
	a.Printer.Info(original)
	a.Printer.Section("Initial Duplicate Count")
	a.Printer.Duplicates(dataprocessing.CountDuplicates(original))

	a.Printer.Section("STARTING CLEANING")
	cleaned, rep := a.Cleaner.Clean(ctx, original)

	a.Printer.Cleaning(rep)
	a.Printer.Section("Missing Values (After)")
	a.Printer.MissingCounts(cleaned)
	a.Printer.Deduplication(rep)

	err = a.Writer.WriteTable(ctx, a.Config.Output.Path, cleaned, a.writeOptions())
	if err != nil {
		a.Printer.WriteFailed(err)
		metrics.RecordFailure(ctx, "write")
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")
		return nil
	}
	metrics.RecordRowsWritten(ctx, cleaned.Len())

	a.Printer.Saved(a.Config.Output.Path)
	a.Printer.Section("FINAL DATA (AFTER CLEANING)")
	a.Printer.Head(cleaned)
	a.Printer.Section("Final Info (Types & Missing)")
	a.Printer.Info(cleaned)

	a.Logger.InfoContext(ctx, "Run complete",
		slog.Int("rows_in", rep.RowsIn),
		slog.Int("rows_out", rep.RowsOut))
	return nil
}

// load validates the input path and reads the table
func (a *Application) load(ctx context.Context) (*domain.Table, error) {
	path := a.Config.Input.Path
	if err := a.Validator.ValidateInputFile(path); err != nil {
		return nil, apperrors.NewReadError(path, err)
	}
	return dataprocessing.ReadTable(ctx, path, a.readOptions())
}

// Stop flushes telemetry and closes the log file
func (a *Application) Stop(ctx context.Context) error {
	var errs []error
	if err := a.OTelProviders.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := infrastructure.CloseLogFile(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close log file: %w", err))
	}
	return errors.Join(errs...)
}

func (a *Application) readOptions() dataprocessing.ReadOptions {
	in := a.Config.Input
	return dataprocessing.ReadOptions{
		Encoding:  in.Encoding,
		Comma:     delimiterRune(in.Delimiter),
		SheetName: in.SheetName,
		NATokens:  in.NATokens,
	}
}

func (a *Application) writeOptions() exporter.WriteOptions {
	out := a.Config.Output
	return exporter.WriteOptions{
		Comma:     delimiterRune(out.Delimiter),
		BOMPrefix: out.BOMPrefix,
		SheetName: out.SheetName,
	}
}

// delimiterRune returns the first rune of s, or zero for the default comma
func delimiterRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0
	}
	return r
}
