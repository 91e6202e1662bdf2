package enums

import (
	"fmt"
	"strings"
)

// ExportFormat selects the file type for comparison exports.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

var validExportFormats = []ExportFormat{ExportFormatCSV, ExportFormatXLSX}

// String implements fmt.Stringer.
func (f ExportFormat) String() string {
	return string(f)
}

// IsValid reports whether the value is a known ExportFormat.
func (f ExportFormat) IsValid() bool {
	for _, candidate := range validExportFormats {
		if candidate == f {
			return true
		}
	}
	return false
}

// ContentType returns the MIME type served for the format.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// ParseExportFormat converts raw input into an ExportFormat; empty means csv.
func ParseExportFormat(value string) (ExportFormat, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return ExportFormatCSV, nil
	}
	for _, candidate := range validExportFormats {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid export format %q", value)
}
