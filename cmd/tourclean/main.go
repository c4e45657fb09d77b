// tourclean cleans a tour grosses table.
//
// Usage:
//
//	tourclean [--config FILE] [--in FILE] [--out FILE] [flags]
//
// The input is loaded, normalized, imputed and deduplicated, and the result
// is written to the output path. Diagnostics are printed to stdout; logs go to
// stderr or the configured log file.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
