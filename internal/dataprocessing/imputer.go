package dataprocessing

import (
	"sort"

	"tourclean/pkg/contracts/domain"
)

// Imputer fills missing values column by column
type Imputer struct {
	// FallbackText fills columns that have no present value at all
	FallbackText string
}

// ColumnImputation describes how one column was filled
type ColumnImputation struct {
	Column    string
	Kind      domain.ColumnKind
	Filled    int
	FillValue domain.Value
}

// Median returns the median of the present numbers in values. The second
// result is false when there is none.
func Median(values []domain.Value) (float64, bool) {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if v.Kind == domain.KindNumber {
			nums = append(nums, v.Num)
		}
	}
	if len(nums) == 0 {
		return 0, false
	}

	sort.Float64s(nums)
	mid := len(nums) / 2
	if len(nums)%2 == 1 {
		return nums[mid], true
	}
	return (nums[mid-1] + nums[mid]) / 2, true
}

// Mode returns the most frequent present value. Ties go to the value whose
// text sorts first. The second result is false when nothing is present.
func Mode(values []domain.Value) (domain.Value, bool) {
	counts := make(map[string]int)
	first := make(map[string]domain.Value)
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		k := v.Key()
		if _, seen := first[k]; !seen {
			first[k] = v
		}
		counts[k]++
	}
	if len(counts) == 0 {
		return domain.Missing(), false
	}

	var best domain.Value
	bestKey := ""
	bestCount := 0
	for k, n := range counts {
		v := first[k]
		if n > bestCount || (n == bestCount && lessValue(v, best, k, bestKey)) {
			best, bestKey, bestCount = v, k, n
		}
	}
	return best, true
}

// lessValue orders values by their text, then by key so the order is total
func lessValue(a, b domain.Value, aKey, bKey string) bool {
	as, bs := a.String(), b.String()
	if as != bs {
		return as < bs
	}
	return aKey < bKey
}

// fillValue picks the replacement for missing cells of a column
func (im *Imputer) fillValue(kind domain.ColumnKind, values []domain.Value) domain.Value {
	switch kind {
	case domain.ColumnNumeric:
		if m, ok := Median(values); ok {
			return domain.Number(m)
		}
	case domain.ColumnText:
		if m, ok := Mode(values); ok {
			return m
		}
	}
	return domain.Text(im.FallbackText)
}

// Impute returns a new table with no missing values. Each column is
// classified once and filled on its own: the median for numeric columns, the
// most frequent value for text columns and FallbackText for empty columns.
func (im *Imputer) Impute(t *domain.Table) (*domain.Table, []ColumnImputation) {
	out := t.Clone()
	results := make([]ColumnImputation, 0, len(out.Columns))

	for idx, name := range out.Columns {
		values := out.Column(idx)
		kind := domain.ClassifyColumn(values)
		fill := im.fillValue(kind, values)

		res := ColumnImputation{Column: name, Kind: kind, FillValue: fill}
		for _, row := range out.Rows {
			if row[idx].IsMissing() {
				row[idx] = fill
				res.Filled++
			}
		}
		results = append(results, res)
	}

	return out, results
}
