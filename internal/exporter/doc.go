// Package exporter writes cleaned tables to disk.
//
// TableWriter picks the output format from the file extension: .xlsx files
// are written as a single-sheet workbook, every other path as delimited text
// with an optional UTF-8 BOM for Excel compatibility. Output is written to a
// temporary file in the target directory and renamed into place, so a failed
// write never leaves a partial file at the target path.
//
// Example usage:
//
//	w := exporter.NewTableWriter(logger)
//	err := w.WriteTable(ctx, "student_scores_cleaned.csv", table, exporter.WriteOptions{})
package exporter
