package exporter

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"tourclean/internal/config"
	"tourclean/pkg/contracts/domain"
)

// writeWorkbook streams the table into a single worksheet
func writeWorkbook(filePath string, t *domain.Table, sheetName string) error {
	if sheetName == "" {
		sheetName = config.DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("invalid sheet name %q: %w", sheetName, err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	header := make([]interface{}, len(t.Columns))
	for i, name := range t.Columns {
		header[i] = name
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, formatCells(row)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	file, err := createTemp(filePath)
	if err != nil {
		return err
	}
	if _, err := f.WriteTo(file); err != nil {
		file.Close()
		os.Remove(file.Name())
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return fmt.Errorf("failed to close file: %w", err)
	}
	return commit(file.Name(), filePath)
}
