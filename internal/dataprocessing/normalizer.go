package dataprocessing

import (
	"strings"

	"tourclean/pkg/contracts/domain"
)

// ColumnNormalizer drops the irrelevant column and turns annotated or
// count-like text columns into numbers
type ColumnNormalizer struct {
	Irrelevant     string
	BracketNumeric []string
	Count          []string
}

// NormalizeResult describes what the normalizer changed
type NormalizeResult struct {
	// DroppedColumn is the removed column name, empty when it was absent
	DroppedColumn string
	Coerced       []ColumnCoercion
}

// StripBracketAnnotation keeps the text before the first '['.
// "12[a]" becomes "12"; text without '[' is returned unchanged.
func StripBracketAnnotation(s string) string {
	before, _, _ := strings.Cut(s, "[")
	return before
}

// ParseBracketNumeric parses a number that may carry a footnote marker
func ParseBracketNumeric(s string) (float64, bool) {
	return TryParseNumber(StripBracketAnnotation(s))
}

// DropIrrelevant returns a copy of t without the named column. Running it on
// a table that lacks the column changes nothing.
func DropIrrelevant(t *domain.Table, name string) (*domain.Table, bool) {
	if name == "" {
		return t.Clone(), false
	}
	return t.DropColumn(name)
}

// Normalize returns a new table; t is not modified. Named columns that are
// absent are skipped.
func (n *ColumnNormalizer) Normalize(t *domain.Table) (*domain.Table, NormalizeResult) {
	var result NormalizeResult

	out, dropped := DropIrrelevant(t, n.Irrelevant)
	if dropped {
		result.DroppedColumn = n.Irrelevant
	}

	for _, col := range n.BracketNumeric {
		if stats, ok := coerceColumn(out, col, ParseBracketNumeric); ok {
			result.Coerced = append(result.Coerced, stats)
		}
	}

	for _, col := range n.Count {
		if stats, ok := coerceColumn(out, col, TryParseNumber); ok {
			result.Coerced = append(result.Coerced, stats)
		}
	}

	return out, result
}
