// Package config provides centralized configuration management for tourclean.
// It loads configuration from several sources, validates it, and exposes the
// column-role table the cleaning pipeline consumes once at start.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Command-line flags (applied by the caller after Load)
//  2. Environment variables
//  3. A YAML configuration file
//  4. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern TOURCLEAN_<SECTION>_<FIELD>:
//
//	TOURCLEAN_INPUT_PATH=data_kotor.csv
//	TOURCLEAN_OUTPUT_PATH=student_scores_cleaned.csv
//	TOURCLEAN_COLUMNS_CURRENCY=Actual gross,Average gross
//	TOURCLEAN_LOGGING_LEVEL=debug
//	TOURCLEAN_METRICS_ENABLED=true
//
// # Column Roles
//
// ColumnsConfig names the columns each cleaning stage touches:
//
//	columns:
//	  irrelevant: "Ref."
//	  bracket_numeric: ["Peak", "All Time Peak"]
//	  count: ["Shows"]
//	  currency: ["Actual gross", "Adjusted gross (in 2022 dollars)", "Average gross"]
//	  fallback_text: "Unknown"
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Testing
//
// Use Default() for a configuration that needs no environment or files.
package config
