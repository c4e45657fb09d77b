package dataprocessing

import "tourclean/pkg/contracts/domain"

// CountDuplicates counts rows equal in every column to an earlier row
func CountDuplicates(t *domain.Table) int {
	seen := make(map[string]struct{}, len(t.Rows))
	dups := 0
	for _, row := range t.Rows {
		key := domain.RowKey(row)
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}

// Deduplicate returns a new table keeping only the first occurrence of each
// row, in the original order, and the number of rows removed
func Deduplicate(t *domain.Table) (*domain.Table, int) {
	out := domain.NewTable(t.Columns)
	seen := make(map[string]struct{}, len(t.Rows))
	removed := 0

	for _, row := range t.Rows {
		key := domain.RowKey(row)
		if _, ok := seen[key]; ok {
			removed++
			continue
		}
		seen[key] = struct{}{}
		out.AppendRow(row)
	}
	return out, removed
}
