package exporter

import "tourclean/pkg/contracts/domain"

// formatRecord renders a row for delimited output. Missing values become
// empty fields and numbers use their shortest exact form, so 20 is written
// as "20" and 1013.5 as "1013.5".
func formatRecord(row []domain.Value) []string {
	record := make([]string, len(row))
	for i, v := range row {
		record[i] = v.String()
	}
	return record
}

// formatCells converts a row to workbook cell values. Numbers stay numeric
// and missing values leave the cell empty.
func formatCells(row []domain.Value) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		switch v.Kind {
		case domain.KindNumber:
			cells[i] = v.Num
		case domain.KindText:
			cells[i] = v.Text
		default:
			cells[i] = nil
		}
	}
	return cells
}
