package config

import "tourclean/pkg/contracts"

// Application constants
const (
	AppName    = "tourclean"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment variable, e.g. TOURCLEAN_INPUT_PATH
	EnvPrefix = "TOURCLEAN"

	// Default file locations, relative to the working directory
	DefaultInputFile  = "data_kotor.csv"
	DefaultOutputFile = "student_scores_cleaned.csv"
	DefaultLogFile    = "logs/tourclean.log"
	DefaultTraceFile  = "logs/tourclean-trace.json"

	DefaultEncoding  = "utf-8"
	DefaultDelimiter = ","
	DefaultSheetName = "Sheet1"
	DefaultHeadRows  = 5

	// DefaultFallbackText fills text columns that have no value at all
	DefaultFallbackText = "Unknown"
)

// Default column names of the tour grosses dataset
const (
	ColumnRef           = "Ref."
	ColumnPeak          = "Peak"
	ColumnAllTimePeak   = "All Time Peak"
	ColumnShows         = "Shows"
	ColumnActualGross   = "Actual gross"
	ColumnAdjustedGross = "Adjusted gross (in 2022 dollars)"
	ColumnAverageGross  = "Average gross"
)

// DefaultNATokens are the field values read as missing, matching the usual
// CSV conventions for "no data".
var DefaultNATokens = []string{
	"", "NA", "N/A", "n/a", "NaN", "nan", "-NaN", "null", "NULL", "None", "#N/A", "<NA>",
}
