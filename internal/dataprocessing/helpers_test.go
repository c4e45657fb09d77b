package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tourclean/pkg/contracts/domain"
)

// cell converts a literal into a Value: nil is missing, strings are text and
// numbers are numeric
func cell(t *testing.T, v any) domain.Value {
	t.Helper()
	switch x := v.(type) {
	case nil:
		return domain.Missing()
	case string:
		return domain.Text(x)
	case int:
		return domain.Number(float64(x))
	case float64:
		return domain.Number(x)
	default:
		require.FailNowf(t, "unsupported cell literal", "%T", v)
		return domain.Value{}
	}
}

func newTable(t *testing.T, columns []string, rows ...[]any) *domain.Table {
	t.Helper()
	table := domain.NewTable(columns)
	for _, r := range rows {
		vals := make([]domain.Value, len(r))
		for i, v := range r {
			vals[i] = cell(t, v)
		}
		table.AppendRow(vals)
	}
	return table
}

func columnOf(t *testing.T, table *domain.Table, name string) []domain.Value {
	t.Helper()
	idx := table.ColumnIndex(name)
	require.GreaterOrEqual(t, idx, 0, "column %q not found", name)
	return table.Column(idx)
}

func values(t *testing.T, vs ...any) []domain.Value {
	t.Helper()
	out := make([]domain.Value, len(vs))
	for i, v := range vs {
		out[i] = cell(t, v)
	}
	return out
}

func assertNoMissing(t *testing.T, table *domain.Table) {
	t.Helper()
	for idx, name := range table.Columns {
		require.Zero(t, table.MissingCount(idx), "column %q still has missing values", name)
	}
}
