package dataprocessing

import (
	"strings"

	"tourclean/pkg/contracts/domain"
)

var currencyReplacer = strings.NewReplacer("$", "", ",", "")

// ParseCurrency removes every '$' and ',' and parses the rest.
// "$1,234,567" gives 1234567; "N/A" and "" fail.
func ParseCurrency(s string) (float64, bool) {
	return TryParseNumber(currencyReplacer.Replace(s))
}

// CurrencyParser converts money columns to numbers
type CurrencyParser struct {
	Columns []string
}

// Parse returns a new table with every present currency column numeric.
// Values that do not parse become missing.
func (p *CurrencyParser) Parse(t *domain.Table) (*domain.Table, []ColumnCoercion) {
	out := t.Clone()

	var coerced []ColumnCoercion
	for _, col := range p.Columns {
		if stats, ok := coerceColumn(out, col, ParseCurrency); ok {
			coerced = append(coerced, stats)
		}
	}
	return out, coerced
}
