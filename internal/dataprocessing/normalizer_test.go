package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourclean/internal/config"
)

func newNormalizer() *ColumnNormalizer {
	cols := config.DefaultColumns()
	return &ColumnNormalizer{
		Irrelevant:     cols.Irrelevant,
		BracketNumeric: cols.BracketNumeric,
		Count:          cols.Count,
	}
}

func TestParseBracketNumeric(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   float64
		wantOK bool
	}{
		{"annotated", "100[a]", 100, true},
		{"plain", "100", 100, true},
		{"annotation only", "[a]", 0, false},
		{"empty", "", 0, false},
		{"several markers", "7[1][2]", 7, true},
		{"text before marker", "n/a[3]", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseBracketNumeric(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStripBracketAnnotation(t *testing.T) {
	assert.Equal(t, "12", StripBracketAnnotation("12[a]"))
	assert.Equal(t, "12", StripBracketAnnotation("12"))
	assert.Equal(t, "", StripBracketAnnotation("[a]"))
}

func TestNormalize(t *testing.T) {
	in := newTable(t,
		[]string{"Rank", "Peak", "All Time Peak", "Shows", "Ref.", "Tour title"},
		[]any{1, "1", "2[4]", "10", "[1]", "A"},
		[]any{2, "3[b]", "[c]", "x", "[2]", "B"},
		[]any{3, nil, "5", nil, "[3]", "C"},
	)

	out, res := newNormalizer().Normalize(in)

	assert.Equal(t, "Ref.", res.DroppedColumn)
	assert.Equal(t, []string{"Rank", "Peak", "All Time Peak", "Shows", "Tour title"}, out.Columns)
	assert.Equal(t, values(t, 1, 3, nil), columnOf(t, out, "Peak"))
	assert.Equal(t, values(t, 2, nil, 5), columnOf(t, out, "All Time Peak"))
	assert.Equal(t, values(t, 10, nil, nil), columnOf(t, out, "Shows"))

	require.Len(t, res.Coerced, 3)
	assert.Equal(t, ColumnCoercion{Column: "Peak", Parsed: 2}, res.Coerced[0])
	assert.Equal(t, ColumnCoercion{Column: "All Time Peak", Parsed: 2, BecameMissing: 1}, res.Coerced[1])
	assert.Equal(t, ColumnCoercion{Column: "Shows", Parsed: 1, BecameMissing: 1}, res.Coerced[2])

	// the input is untouched
	assert.True(t, in.HasColumn("Ref."))
	assert.Equal(t, values(t, "1", "3[b]", nil), columnOf(t, in, "Peak"))
}

func TestNormalizeToleratesMissingColumns(t *testing.T) {
	in := newTable(t, []string{"Artist"}, []any{"X"})

	out, res := newNormalizer().Normalize(in)

	assert.Empty(t, res.DroppedColumn)
	assert.Empty(t, res.Coerced)
	assert.Equal(t, in.Columns, out.Columns)
	assert.Equal(t, in.Rows, out.Rows)
}

func TestDropIrrelevantIsIdempotent(t *testing.T) {
	in := newTable(t, []string{"Ref.", "Artist"},
		[]any{"[1]", "X"},
		[]any{"[2]", "Y"},
	)

	once, dropped := DropIrrelevant(in, "Ref.")
	require.True(t, dropped)

	twice, dropped := DropIrrelevant(once, "Ref.")
	assert.False(t, dropped)
	assert.Equal(t, once.Columns, twice.Columns)
	assert.Equal(t, once.Rows, twice.Rows)
}
