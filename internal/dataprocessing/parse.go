package dataprocessing

import (
	"math"
	"strconv"
	"strings"

	"tourclean/pkg/contracts/domain"
)

// TryParseNumber parses a decimal number. Surrounding whitespace is ignored.
// The second result is false for anything that is not a plain number; such
// input is expected and never reported as an error.
func TryParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// ParseFloat also accepts hex floats and underscores, which are not
	// numbers in a CSV cell
	if strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !isRangeError(err) {
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func isRangeError(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}

// coerceValue converts a cell to a number using parse on its text form.
// Missing stays missing; parse failures become missing.
func coerceValue(v domain.Value, parse func(string) (float64, bool)) domain.Value {
	switch v.Kind {
	case domain.KindMissing, domain.KindNumber:
		// the text form of a number contains no '$', ',' or '['
		return v
	default:
		if f, ok := parse(v.Text); ok {
			return domain.Number(f)
		}
		return domain.Missing()
	}
}

// ColumnCoercion summarizes the numeric conversion of one column
type ColumnCoercion struct {
	Column string
	// Parsed counts values that are numbers after conversion
	Parsed int
	// BecameMissing counts values that were present but failed to parse
	BecameMissing int
}

// coerceColumn converts the named column of t in place. The second result is
// false when the column does not exist.
func coerceColumn(t *domain.Table, name string, parse func(string) (float64, bool)) (ColumnCoercion, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return ColumnCoercion{}, false
	}

	stats := ColumnCoercion{Column: name}
	for _, row := range t.Rows {
		before := row[idx]
		after := coerceValue(before, parse)
		row[idx] = after
		if after.IsMissing() {
			if !before.IsMissing() {
				stats.BecameMissing++
			}
			continue
		}
		stats.Parsed++
	}
	return stats, true
}
