package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tourclean/internal/app"
	"tourclean/internal/config"
	apperrors "tourclean/internal/errors"
	"tourclean/pkg/contracts"
)

// flagValues holds command-line overrides. Only flags that were set on the
// command line replace configured values.
type flagValues struct {
	configFile  string
	input       string
	output      string
	encoding    string
	delimiter   string
	sheet       string
	bom         bool
	headRows    int
	logLevel    string
	logOutput   string
	logFile     string
	traceFile   string
	metricsFile string
}

// run executes the command and returns the process exit code: 1 when the
// configuration is invalid or the input cannot be read, 0 otherwise
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		// read failures were already printed with the diagnostics
		if !apperrors.IsType(err, apperrors.ErrTypeRead) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var fv flagValues

	cmd := &cobra.Command{
		Use:           "tourclean",
		Short:         "Clean a tour grosses table",
		Long:          "Load a table, normalize annotated and currency columns, impute missing values, drop duplicate rows and save the result.",
		Version:       contracts.GetFullVersionString(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(fv.configFile)
			if err != nil {
				return err
			}
			if err := fv.apply(cmd, cfg); err != nil {
				return err
			}
			return execute(cmd.Context(), cfg, stdout)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&fv.configFile, "config", "c", "", "YAML configuration file")
	f.StringVarP(&fv.input, "in", "i", config.DefaultInputFile, "input table (.csv or .xlsx)")
	f.StringVarP(&fv.output, "out", "o", config.DefaultOutputFile, "output table (.csv or .xlsx)")
	f.StringVar(&fv.encoding, "encoding", config.DefaultEncoding, "input text encoding")
	f.StringVar(&fv.delimiter, "delimiter", config.DefaultDelimiter, "field delimiter for input and output")
	f.StringVar(&fv.sheet, "sheet", "", "worksheet to read from an .xlsx input")
	f.BoolVar(&fv.bom, "bom", false, "prefix text output with a UTF-8 BOM")
	f.IntVar(&fv.headRows, "head", config.DefaultHeadRows, "rows shown in table previews")
	f.StringVar(&fv.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	f.StringVar(&fv.logOutput, "log-output", "console", "log destination (console, file, both)")
	f.StringVar(&fv.logFile, "log-file", config.DefaultLogFile, "log file path")
	f.StringVar(&fv.traceFile, "trace-file", "", "enable tracing and write spans to this file")
	f.StringVar(&fv.metricsFile, "metrics-file", "", "enable metrics and write them to this textfile")

	return cmd
}

// apply copies the flags set on the command line into cfg and validates it again
func (fv *flagValues) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed

	if changed("in") {
		cfg.Input.Path = fv.input
	}
	if changed("out") {
		cfg.Output.Path = fv.output
	}
	if changed("encoding") {
		cfg.Input.Encoding = fv.encoding
	}
	if changed("delimiter") {
		cfg.Input.Delimiter = fv.delimiter
		cfg.Output.Delimiter = fv.delimiter
	}
	if changed("sheet") {
		cfg.Input.SheetName = fv.sheet
	}
	if changed("bom") {
		cfg.Output.BOMPrefix = fv.bom
	}
	if changed("head") {
		cfg.Report.HeadRows = fv.headRows
	}
	if changed("log-level") {
		cfg.Logging.Level = fv.logLevel
	}
	if changed("log-output") {
		cfg.Logging.Output = fv.logOutput
	}
	if changed("log-file") {
		cfg.Logging.FilePath = fv.logFile
	}
	if changed("trace-file") {
		cfg.Tracing.Enabled = true
		cfg.Tracing.Exporter = "file"
		cfg.Tracing.FilePath = fv.traceFile
	}
	if changed("metrics-file") {
		cfg.Metrics.Enabled = true
		cfg.Metrics.TextfilePath = fv.metricsFile
	}

	return cfg.Validate()
}

// execute runs one cleaning job and always flushes telemetry before returning
func execute(ctx context.Context, cfg *config.Config, stdout io.Writer) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	application, err := app.NewApplication(ctx, cfg, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := application.Stop(context.Background()); stopErr != nil {
			application.Logger.Warn("Shutdown incomplete", "error", stopErr)
		}
	}()

	return application.Run(ctx)
}
