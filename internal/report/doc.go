// Package report prints the diagnostics shown while a table is cleaned:
// previews, per-column summaries, duplicate counts and stage progress.
package report
