package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"12", 12, true},
		{" 3.5 ", 3.5, true},
		{"-7", -7, true},
		{"1e3", 1000, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"0x1F", 0, false},
		{"1_000", 0, false},
		{"12a", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := TryParseNumber(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCoerceColumnCountsFailures(t *testing.T) {
	table := newTable(t, []string{"Shows"},
		[]any{"10"},
		[]any{"ten"},
		[]any{nil},
		[]any{4},
	)

	stats, ok := coerceColumn(table, "Shows", TryParseNumber)

	assert.True(t, ok)
	assert.Equal(t, ColumnCoercion{Column: "Shows", Parsed: 2, BecameMissing: 1}, stats)
	assert.Equal(t, values(t, 10, nil, nil, 4), columnOf(t, table, "Shows"))

	_, ok = coerceColumn(table, "Absent", TryParseNumber)
	assert.False(t, ok)
}
