package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "tourclean/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Input   InputConfig   `yaml:"input" split_words:"true"`
	Output  OutputConfig  `yaml:"output" split_words:"true"`
	Columns ColumnsConfig `yaml:"columns" split_words:"true"`
	Report  ReportConfig  `yaml:"report" split_words:"true"`
	Logging LoggingConfig `yaml:"logging" split_words:"true"`
	Tracing TracingConfig `yaml:"tracing" split_words:"true"`
	Metrics MetricsConfig `yaml:"metrics" split_words:"true"`
}

// InputConfig describes the table to load
type InputConfig struct {
	Path      string   `yaml:"path" split_words:"true" validate:"required"`
	Encoding  string   `yaml:"encoding" split_words:"true" validate:"required"`
	Delimiter string   `yaml:"delimiter" split_words:"true" validate:"required,len=1"`
	SheetName string   `yaml:"sheet_name" split_words:"true"`
	NATokens  []string `yaml:"na_tokens" split_words:"true"`
}

// OutputConfig describes where the cleaned table goes
type OutputConfig struct {
	Path      string `yaml:"path" split_words:"true" validate:"required"`
	Delimiter string `yaml:"delimiter" split_words:"true" validate:"required,len=1"`
	BOMPrefix bool   `yaml:"bom_prefix" split_words:"true"`
	SheetName string `yaml:"sheet_name" split_words:"true" validate:"required"`
}

// ColumnsConfig maps logical column roles to the names expected in the input.
// A role whose column is absent from the input is skipped.
type ColumnsConfig struct {
	Irrelevant     string   `yaml:"irrelevant" split_words:"true"`
	BracketNumeric []string `yaml:"bracket_numeric" split_words:"true"`
	Count          []string `yaml:"count" split_words:"true"`
	Currency       []string `yaml:"currency" split_words:"true"`
	FallbackText   string   `yaml:"fallback_text" split_words:"true" validate:"required"`
}

// ReportConfig controls the console diagnostics
type ReportConfig struct {
	HeadRows int `yaml:"head_rows" split_words:"true" validate:"min=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" split_words:"true" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" split_words:"true" validate:"oneof=json text"`
	Output   string `yaml:"output" split_words:"true" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" split_words:"true" validate:"required_unless=Output console"`
}

// TracingConfig contains OpenTelemetry tracing configuration
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled" split_words:"true"`
	Exporter    string  `yaml:"exporter" split_words:"true" validate:"oneof=console file none"`
	FilePath    string  `yaml:"file_path" split_words:"true"`
	SampleRatio float64 `yaml:"sample_ratio" split_words:"true" validate:"min=0,max=1"`
}

// MetricsConfig contains pipeline metrics configuration
type MetricsConfig struct {
	Enabled      bool   `yaml:"enabled" split_words:"true"`
	TextfilePath string `yaml:"textfile_path" split_words:"true" validate:"required_if=Enabled true"`
}

// Load builds the configuration from defaults, then the YAML file, then
// environment variables. Later sources win. An empty configFile searches the
// usual locations and skips the file step when none exists.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", configFile)
		}
	}

	// No default tags on the struct: envconfig would otherwise overwrite
	// values that came from the file.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays a YAML file onto cfg. Keys missing from the file keep
// their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks struct constraints and normalizes a few fields
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)

	if err := validator.New().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
			}
			return apperrors.NewConfigError("config validation failed", fmt.Errorf("%s", strings.Join(msgs, "; ")))
		}
		return apperrors.NewConfigError("config validation failed", err)
	}

	if c.Tracing.Exporter == "file" && c.Tracing.FilePath == "" {
		c.Tracing.FilePath = DefaultTraceFile
	}

	return nil
}

// getConfigFilePath returns the first config file found in the usual locations
func getConfigFilePath() string {
	locations := []string{
		"tourclean.yaml",
		"configs/tourclean.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	naTokens := make([]string, len(DefaultNATokens))
	copy(naTokens, DefaultNATokens)

	return &Config{
		Input: InputConfig{
			Path:      DefaultInputFile,
			Encoding:  DefaultEncoding,
			Delimiter: DefaultDelimiter,
			NATokens:  naTokens,
		},
		Output: OutputConfig{
			Path:      DefaultOutputFile,
			Delimiter: DefaultDelimiter,
			SheetName: DefaultSheetName,
		},
		Columns: DefaultColumns(),
		Report: ReportConfig{
			HeadRows: DefaultHeadRows,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Tracing: TracingConfig{
			Enabled:     false,
			Exporter:    "file",
			FilePath:    DefaultTraceFile,
			SampleRatio: 1.0,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

// DefaultColumns returns the column roles of the tour grosses dataset
func DefaultColumns() ColumnsConfig {
	return ColumnsConfig{
		Irrelevant:     ColumnRef,
		BracketNumeric: []string{ColumnPeak, ColumnAllTimePeak},
		Count:          []string{ColumnShows},
		Currency:       []string{ColumnActualGross, ColumnAdjustedGross, ColumnAverageGross},
		FallbackText:   DefaultFallbackText,
	}
}
