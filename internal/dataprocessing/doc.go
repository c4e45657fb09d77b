// Package dataprocessing loads a tour grosses table and cleans it.
//
// # Stages
//
// Cleaning is a fixed sequence. Each stage returns a new table and leaves its
// input alone, so the loaded table can still be compared against the result:
//
//  1. ColumnNormalizer drops the reference column and converts the
//     bracket-annotated peak columns and the show count to numbers
//  2. CurrencyParser strips '$' and ',' from the gross columns and parses them
//  3. Imputer fills every missing value (median, most frequent value, or the
//     fallback text for columns with nothing present)
//  4. Deduplicate keeps the first of each set of identical rows
//
// A value that fails numeric conversion is never an error. It becomes the
// missing marker and imputation fills it later.
//
// # Usage
//
//	table, err := dataprocessing.ReadTable(ctx, "data_kotor.csv", dataprocessing.DefaultReadOptions())
//	if err != nil {
//	    return err
//	}
//	cleaner := dataprocessing.NewCleaner(cfg.Columns, dataprocessing.WithMetrics(m))
//	cleaned, report := cleaner.Clean(ctx, table)
//
// ReadTable accepts delimited text in any WHATWG encoding and .xlsx workbooks.
// Read failures are returned as READ errors from the errors package.
package dataprocessing
