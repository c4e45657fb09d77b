package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"tourclean/internal/config"
	apperrors "tourclean/internal/errors"
	"tourclean/internal/infrastructure"
	"tourclean/internal/validation"
	"tourclean/pkg/contracts/domain"
)

// ReadOptions configures how a table file is parsed
type ReadOptions struct {
	// Encoding is a WHATWG encoding label such as "utf-8" or "windows-1252".
	// A UTF-8 or UTF-16 byte order mark always wins over it.
	Encoding string
	// Comma is the field delimiter of text files
	Comma rune
	// SheetName selects the worksheet of an .xlsx file; empty means the first
	SheetName string
	// NATokens are field values read as missing
	NATokens []string
}

// DefaultReadOptions returns comma-separated UTF-8 with the usual NA tokens
func DefaultReadOptions() ReadOptions {
	naTokens := make([]string, len(config.DefaultNATokens))
	copy(naTokens, config.DefaultNATokens)

	return ReadOptions{
		Encoding: config.DefaultEncoding,
		Comma:    ',',
		NATokens: naTokens,
	}
}

// ReadTable loads a table from a .csv (or other delimited) file or an .xlsx
// workbook. The first row is the header. Columns whose present values are all
// numbers are loaded as numbers; everything else stays text. Any failure is
// returned as a READ AppError and no partial table is returned.
func ReadTable(ctx context.Context, path string, opts ReadOptions) (*domain.Table, error) {
	var (
		header []string
		rows   [][]string
	)
	format, err := validation.TableFormat(path)
	if err == nil {
		if format == validation.FormatWorkbook {
			header, rows, err = readWorkbook(path, opts.SheetName)
		} else {
			header, rows, err = readDelimited(path, opts)
		}
	}
	if err != nil {
		infrastructure.ErrorContext(ctx, "Failed to read table",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, apperrors.NewReadError(path, err)
	}

	if short := countShortRows(len(header), rows); short > 0 {
		infrastructure.WarnContext(ctx, "Rows shorter than the header were padded with missing values",
			slog.String("path", path),
			slog.Int("rows", short))
	}

	table := buildTable(mangleHeader(header), rows, opts.NATokens)

	for idx, name := range table.Columns {
		infrastructure.DebugContext(ctx, "Column loaded",
			slog.String("column", name),
			slog.String("kind", string(table.ColumnKind(idx))))
	}

	infrastructure.InfoContext(ctx, "Table loaded",
		slog.String("path", path),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Columns)))

	return table, nil
}

// readDelimited reads raw records. Short rows are padded later; rows longer
// than the header are malformed.
func readDelimited(path string, opts ReadOptions) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	label := opts.Encoding
	if label == "" {
		label = "utf-8"
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, nil, fmt.Errorf("unknown encoding %q: %w", label, err)
	}

	r := csv.NewReader(transform.NewReader(f, unicode.BOMOverride(enc.NewDecoder())))
	if opts.Comma != 0 {
		r.Comma = opts.Comma
	}
	r.FieldsPerRecord = -1
	// titles such as The "Formation" World Tour carry bare quotes
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("no columns to parse from file")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, apperrors.NewParsingError("malformed record", err)
		}
		if len(record) > len(header) {
			line, _ := r.FieldPos(0)
			return nil, nil, apperrors.NewParsingError(
				fmt.Sprintf("line %d: expected %d fields, saw %d", line, len(header), len(record)), nil)
		}
		rows = append(rows, record)
	}

	return header, rows, nil
}

// readWorkbook reads the rows of one worksheet
func readWorkbook(path, sheetName string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("workbook has no sheets")
		}
		sheetName = sheets[0]
	}

	all, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	// GetRows keeps empty rows in the middle of a sheet; delimited readers
	// skip blank lines, so do the same here
	var nonEmpty [][]string
	for _, row := range all {
		for _, cell := range row {
			if cell != "" {
				nonEmpty = append(nonEmpty, row)
				break
			}
		}
	}
	if len(nonEmpty) == 0 {
		return nil, nil, fmt.Errorf("no columns to parse from sheet %q", sheetName)
	}

	header := nonEmpty[0]
	rows := nonEmpty[1:]
	for i, row := range rows {
		if len(row) > len(header) {
			return nil, nil, apperrors.NewParsingError(
				fmt.Sprintf("sheet row %d: expected %d fields, saw %d", i+2, len(header), len(row)), nil)
		}
	}
	return header, rows, nil
}

func countShortRows(width int, rows [][]string) int {
	n := 0
	for _, row := range rows {
		if len(row) < width {
			n++
		}
	}
	return n
}

// mangleHeader names blank columns "Unnamed: i" and suffixes repeated names
// with ".1", ".2", ... so every column name is unique
func mangleHeader(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	counts := make(map[string]int, len(header))

	for i, name := range header {
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		candidate := name
		for used[candidate] {
			counts[name]++
			candidate = name + "." + strconv.Itoa(counts[name])
		}
		used[candidate] = true
		out[i] = candidate
	}
	return out
}

// buildTable turns raw fields into values, detecting missing markers and
// all-numeric columns
func buildTable(header []string, rows [][]string, naTokens []string) *domain.Table {
	// empty fields are always missing, whatever the token list says
	na := map[string]bool{"": true}
	for _, tok := range naTokens {
		na[tok] = true
	}

	numeric := make([]bool, len(header))
	for c := range header {
		numeric[c] = true
	}
	for _, row := range rows {
		for c := range header {
			if c >= len(row) || na[row[c]] {
				continue
			}
			if _, ok := TryParseNumber(row[c]); !ok {
				numeric[c] = false
			}
		}
	}

	table := domain.NewTable(header)
	table.Rows = make([][]domain.Value, 0, len(rows))
	for _, row := range rows {
		vals := make([]domain.Value, len(header))
		for c := range header {
			switch {
			case c >= len(row) || na[row[c]]:
				vals[c] = domain.Missing()
			case numeric[c]:
				f, _ := TryParseNumber(row[c])
				vals[c] = domain.Number(f)
			default:
				vals[c] = domain.Text(row[c])
			}
		}
		table.Rows = append(table.Rows, vals)
	}
	return table
}
