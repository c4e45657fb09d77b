package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "tourclean/internal/errors"
	"tourclean/internal/infrastructure"
	"tourclean/internal/validation"
	"tourclean/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOptions configures table writing behavior
type WriteOptions struct {
	// Comma is the field delimiter of text output; zero means ','
	Comma rune
	// BOMPrefix adds a UTF-8 BOM for Excel compatibility
	BOMPrefix bool
	// SheetName names the worksheet of .xlsx output
	SheetName string
}

// TableWriter saves tables to delimited text or .xlsx files. A file is only
// created at the target path once it has been completely written.
type TableWriter struct {
	logger *slog.Logger
}

// NewTableWriter creates a new table writer. A nil logger uses the global one.
func NewTableWriter(logger *slog.Logger) *TableWriter {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &TableWriter{logger: logger}
}

// WriteTable writes the header and every row of t to filePath. The format is
// chosen by extension: .xlsx writes a workbook, anything else delimited text.
// Failures are returned as WRITE AppErrors and leave no file behind.
func (w *TableWriter) WriteTable(ctx context.Context, filePath string, t *domain.Table, options WriteOptions) error {
	w.logger.InfoContext(ctx, "Writing table",
		slog.String("file_path", filePath),
		slog.Int("record_count", t.Len()),
		slog.Int("column_count", len(t.Columns)))

	format, err := validation.TableFormat(filePath)
	if err == nil {
		if format == validation.FormatWorkbook {
			err = writeWorkbook(filePath, t, options.SheetName)
		} else {
			err = w.writeDelimited(filePath, t, options)
		}
	}
	if err != nil {
		w.logger.ErrorContext(ctx, "Failed to write table",
			slog.String("file_path", filePath),
			slog.String("error", err.Error()))
		return apperrors.NewWriteError(filePath, err)
	}

	w.logger.InfoContext(ctx, "Table written", slog.String("file_path", filePath))
	return nil
}

func (w *TableWriter) writeDelimited(filePath string, t *domain.Table, options WriteOptions) error {
	stream, err := CreateStreamWriter(filePath, options)
	if err != nil {
		return err
	}

	if err := stream.WriteRecord(t.Columns); err != nil {
		stream.Abort()
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, row := range t.Rows {
		if err := stream.WriteRecord(formatRecord(row)); err != nil {
			stream.Abort()
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	return stream.Close()
}

// StreamWriter writes delimited records to a temporary file next to the
// target and renames it into place on Close
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
	target string
}

// CreateStreamWriter creates the target directory and a temporary file in it
func CreateStreamWriter(filePath string, options WriteOptions) (*StreamWriter, error) {
	file, err := createTemp(filePath)
	if err != nil {
		return nil, err
	}

	if options.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			file.Close()
			os.Remove(file.Name())
			return nil, fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	if options.Comma != 0 {
		writer.Comma = options.Comma
	}

	return &StreamWriter{file: file, writer: writer, target: filePath}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes the stream and moves it to the target path
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.Abort()
		return fmt.Errorf("failed to flush records: %w", err)
	}
	if err := s.file.Close(); err != nil {
		os.Remove(s.file.Name())
		return fmt.Errorf("failed to close file: %w", err)
	}
	return commit(s.file.Name(), s.target)
}

// Abort discards everything written so far
func (s *StreamWriter) Abort() {
	s.file.Close()
	os.Remove(s.file.Name())
}

func createTemp(filePath string) (*os.File, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, nil
}

func commit(tmpPath, target string) error {
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}
