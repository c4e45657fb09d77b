package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourclean/internal/dataprocessing"
	"tourclean/pkg/contracts/domain"
)

func sampleTable() *domain.Table {
	table := domain.NewTable([]string{"Artist", "Shows"})
	table.AppendRow([]domain.Value{domain.Text("Pink"), domain.Number(56)})
	table.AppendRow([]domain.Value{domain.Missing(), domain.Number(12.5)})
	table.AppendRow([]domain.Value{domain.Text("Adele"), domain.Missing()})
	return table
}

func TestHead(t *testing.T) {
	tests := []struct {
		name      string
		headRows  int
		wantLines int
	}{
		{name: "limited", headRows: 2, wantLines: 3},
		{name: "more than rows", headRows: 10, wantLines: 4},
		{name: "header only", headRows: 0, wantLines: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf, tt.headRows).Head(sampleTable())

			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			require.Len(t, lines, tt.wantLines)
			assert.Contains(t, lines[0], "Artist")
			assert.Contains(t, lines[0], "Shows")
		})
	}
}

func TestHeadShowsMissingAndNumbers(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, 5).Head(sampleTable())

	out := buf.String()
	assert.Contains(t, out, "NaN")
	assert.Contains(t, out, "12.5")
	assert.Contains(t, out, "Pink")
}

func TestHeadEscapesControlCharacters(t *testing.T) {
	table := domain.NewTable([]string{"Tour\ttitle", "Shows"})
	table.AppendRow([]domain.Value{domain.Text("The Eras\nTour"), domain.Number(56)})
	table.AppendRow([]domain.Value{domain.Text("Divide\tTour"), domain.Number(255)})

	var buf bytes.Buffer
	NewPrinter(&buf, 5).Head(table)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `Tour\ttitle`)
	assert.Contains(t, lines[1], `The Eras\nTour`)
	assert.Contains(t, lines[2], `Divide\tTour`)
	for _, line := range lines[1:] {
		assert.Len(t, line, len(lines[0]), "columns stay aligned")
	}
}

func TestHeadEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, 5).Head(domain.NewTable([]string{"A"}))

	assert.Contains(t, buf.String(), "Empty table")
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, 5).Info(sampleTable())

	out := buf.String()
	assert.Contains(t, out, "Entries: 3, 0 to 2")
	assert.Contains(t, out, "Data columns (total 2 columns):")
	assert.Regexp(t, `Artist\s+2 non-null\s+text`, out)
	assert.Regexp(t, `Shows\s+2 non-null\s+numeric`, out)
	assert.Contains(t, out, "kinds: numeric(1), text(1)")
}

func TestMissingCounts(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, 5).MissingCounts(sampleTable())

	assert.Regexp(t, `Artist\s+1\n`, buf.String())
	assert.Regexp(t, `Shows\s+1\n`, buf.String())
}

func TestCleaningAndDeduplication(t *testing.T) {
	rep := &dataprocessing.CleanReport{
		Normalize: dataprocessing.NormalizeResult{
			DroppedColumn: "Ref.",
			Coerced:       []dataprocessing.ColumnCoercion{{Column: "Peak", Parsed: 4, BecameMissing: 1}},
		},
		Currency: []dataprocessing.ColumnCoercion{{Column: "Actual gross", Parsed: 5}},
		Imputation: []dataprocessing.ColumnImputation{
			{Column: "Peak", Kind: domain.ColumnNumeric, Filled: 1, FillValue: domain.Number(2)},
			{Column: "Artist", Kind: domain.ColumnText, Filled: 1, FillValue: domain.Text("Pink")},
			{Column: "Notes", Kind: domain.ColumnEmpty, Filled: 5, FillValue: domain.Text("Unknown")},
			{Column: "Rank", Kind: domain.ColumnNumeric},
		},
		DuplicatesRemoved: 1,
	}

	var buf bytes.Buffer
	p := NewPrinter(&buf, 5)
	p.Cleaning(rep)
	p.Deduplication(rep)

	out := buf.String()
	assert.Contains(t, out, "1. Column 'Ref.' has been dropped.")
	assert.Contains(t, out, "Peak: 4 parsed, 1 unparseable")
	assert.Contains(t, out, "Actual gross: 5 parsed, 0 unparseable")
	assert.Contains(t, out, "Peak: 1 filled with 2 (median)")
	assert.Contains(t, out, `Artist: 1 filled with "Pink" (most frequent)`)
	assert.Contains(t, out, `Notes: 5 filled with "Unknown" (fallback)`)
	assert.NotContains(t, out, "Rank:")
	assert.Contains(t, out, "4. Duplicate rows have been handled. (Removed: 1 rows)")
	assert.Contains(t, out, "Duplicates remaining: 0")
}

func TestCleaningWithoutDroppedColumn(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, 5).Cleaning(&dataprocessing.CleanReport{})

	assert.NotContains(t, buf.String(), "1. Column")
	assert.Contains(t, buf.String(), "3. Missing values have been imputed.")
}

func TestOutcomeMessages(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, 5)

	p.Saved("out/cleaned.csv")
	p.ReadFailed(errors.New("no such file"))
	p.WriteFailed(errors.New("permission denied"))

	out := buf.String()
	assert.Contains(t, out, "--- SAVED SUCCESSFULLY ---")
	assert.Contains(t, out, "Cleaned data saved to: out/cleaned.csv")
	assert.Contains(t, out, "Error reading file: no such file")
	assert.Contains(t, out, "Error saving file: permission denied")
}
