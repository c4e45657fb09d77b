package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"tourclean/internal/dataprocessing"
	"tourclean/pkg/contracts/domain"
)

// missingText is how the missing marker is shown in previews
const missingText = "NaN"

// Printer writes the human-readable diagnostics of a cleaning run.
// Output is for people, not for parsing.
type Printer struct {
	w        io.Writer
	headRows int
}

// NewPrinter creates a Printer. A nil writer prints to stdout; headRows
// limits table previews.
func NewPrinter(w io.Writer, headRows int) *Printer {
	if w == nil {
		w = os.Stdout
	}
	if headRows < 0 {
		headRows = 0
	}
	return &Printer{w: w, headRows: headRows}
}

// Section prints a section banner preceded by a blank line
func (p *Printer) Section(title string) {
	fmt.Fprintf(p.w, "\n--- %s ---\n", title)
}

// Head prints the first rows of t with their row numbers
func (p *Printer) Head(t *domain.Table) {
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := make([]string, len(t.Columns))
	for i, name := range t.Columns {
		header[i] = cellEscaper.Replace(name)
	}
	fmt.Fprintln(tw, "\t"+strings.Join(header, "\t")+"\t")

	n := min(p.headRows, t.Len())
	for i := 0; i < n; i++ {
		cells := make([]string, 0, len(t.Columns)+1)
		cells = append(cells, strconv.Itoa(i))
		for _, v := range t.Rows[i] {
			cells = append(cells, previewValue(v))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	tw.Flush()

	if t.Len() == 0 {
		fmt.Fprintln(p.w, "Empty table")
	}
}

// Info prints the row count and, per column, the present-value count and
// the column kind
func (p *Printer) Info(t *domain.Table) {
	fmt.Fprintf(p.w, "Entries: %d", t.Len())
	if t.Len() > 0 {
		fmt.Fprintf(p.w, ", 0 to %d", t.Len()-1)
	}
	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "Data columns (total %d columns):\n", len(t.Columns))

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, " #\tColumn\tNon-Null Count\tKind")
	fmt.Fprintln(tw, "---\t------\t--------------\t----")

	kinds := make(map[domain.ColumnKind]int)
	for idx, name := range t.Columns {
		kind := t.ColumnKind(idx)
		kinds[kind]++
		present := t.Len() - t.MissingCount(idx)
		fmt.Fprintf(tw, " %d\t%s\t%d non-null\t%s\n", idx, cellEscaper.Replace(name), present, kind)
	}
	tw.Flush()

	names := make([]string, 0, len(kinds))
	for kind, n := range kinds {
		names = append(names, fmt.Sprintf("%s(%d)", kind, n))
	}
	sort.Strings(names)
	fmt.Fprintf(p.w, "kinds: %s\n", strings.Join(names, ", "))
}

// Duplicates prints the number of rows that repeat an earlier row
func (p *Printer) Duplicates(n int) {
	fmt.Fprintf(p.w, "Total duplicate rows: %d\n", n)
}

// MissingCounts prints the missing-value count of every column
func (p *Printer) MissingCounts(t *domain.Table) {
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	for idx, name := range t.Columns {
		fmt.Fprintf(tw, "%s\t%d\n", name, t.MissingCount(idx))
	}
	tw.Flush()
}

// Cleaning prints the progress messages of the normalize, currency and
// imputation stages
func (p *Printer) Cleaning(rep *dataprocessing.CleanReport) {
	if rep.Normalize.DroppedColumn != "" {
		fmt.Fprintf(p.w, "1. Column '%s' has been dropped.\n", rep.Normalize.DroppedColumn)
	}

	fmt.Fprintln(p.w, "2. Text and currency columns have been cleaned and converted to numbers.")
	for _, c := range append(append([]dataprocessing.ColumnCoercion(nil), rep.Normalize.Coerced...), rep.Currency...) {
		fmt.Fprintf(p.w, "   %s: %d parsed, %d unparseable\n", c.Column, c.Parsed, c.BecameMissing)
	}

	fmt.Fprintln(p.w, "3. Missing values have been imputed.")
	for _, im := range rep.Imputation {
		if im.Filled == 0 {
			continue
		}
		fmt.Fprintf(p.w, "   %s: %d filled with %s (%s)\n", im.Column, im.Filled, quoteFill(im.FillValue), fillMethod(im.Kind))
	}
}

// Deduplication prints the outcome of duplicate removal
func (p *Printer) Deduplication(rep *dataprocessing.CleanReport) {
	fmt.Fprintf(p.w, "4. Duplicate rows have been handled. (Removed: %d rows)\n", rep.DuplicatesRemoved)
	fmt.Fprintf(p.w, "   Duplicates remaining: %d\n", rep.DuplicatesRemaining)
}

// Saved confirms where the cleaned table was written
func (p *Printer) Saved(path string) {
	p.Section("SAVED SUCCESSFULLY")
	fmt.Fprintf(p.w, "Cleaned data saved to: %s\n", path)
}

// ReadFailed reports a load failure
func (p *Printer) ReadFailed(err error) {
	fmt.Fprintf(p.w, "Error reading file: %v\n", err)
}

// WriteFailed reports a save failure
func (p *Printer) WriteFailed(err error) {
	fmt.Fprintf(p.w, "Error saving file: %v\n", err)
}

// cellEscaper keeps tabwriter cells on one line and in one column
var cellEscaper = strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", `\r`)

func previewValue(v domain.Value) string {
	if v.IsMissing() {
		return missingText
	}
	return cellEscaper.Replace(v.String())
}

func quoteFill(v domain.Value) string {
	if v.Kind == domain.KindText {
		return strconv.Quote(v.Text)
	}
	return v.String()
}

func fillMethod(kind domain.ColumnKind) string {
	switch kind {
	case domain.ColumnNumeric:
		return "median"
	case domain.ColumnText:
		return "most frequent"
	default:
		return "fallback"
	}
}
