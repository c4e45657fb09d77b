package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "tourclean/internal/errors"
)

// Supported table formats, by lower-case extension
const (
	FormatDelimited = "delimited"
	FormatWorkbook  = "workbook"
)

// FileValidator checks table paths before they are read or written
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// TableFormat returns the format a path is read or written in. Legacy .xls
// workbooks are rejected; every extension other than .xlsx is delimited text.
func TableFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatWorkbook, nil
	case ".xls":
		return "", apperrors.NewAppValidationError(
			fmt.Sprintf("file %s is a legacy .xls workbook; save it as .xlsx or .csv", path)).
			WithContext("path", path)
	default:
		return FormatDelimited, nil
	}
}

// ValidateInputFile checks that path is a readable table file
func (v *FileValidator) ValidateInputFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") {
		v.logger.Warn("Refusing temporary Excel lock file",
			slog.String("file", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s is a temporary Excel file", path)).
			WithContext("path", path)
	}

	format, err := TableFormat(path)
	if err != nil {
		v.logger.Error("Unsupported table format",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return err
	}

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.String("format", format))
	return nil
}

// ValidateOutputFile checks that output has a writable format and is not the
// input file. Whether the path is writable is only known when writing.
func (v *FileValidator) ValidateOutputFile(output, input string) error {
	if _, err := TableFormat(output); err != nil {
		return err
	}

	if sameFile(output, input) {
		v.logger.Error("Output would overwrite input",
			slog.String("output", output),
			slog.String("input", input))
		return apperrors.NewAppValidationError(fmt.Sprintf("output %s is the input file", output)).
			WithContext("path", output)
	}
	return nil
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return apperrors.NewNotFoundError("file "+path).WithContext("path", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path)).
			WithContext("path", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// sameFile reports whether two paths name the same file, either textually or
// because both exist and resolve to one inode
func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}

	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}
