package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// writeCSV renders the tables one after another, separated by a blank record.
func writeCSV(tables ...table) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	for i, t := range tables {
		if i > 0 {
			if err := writer.Write([]string{""}); err != nil {
				return nil, fmt.Errorf("write csv separator: %w", err)
			}
		}
		if i > 0 && t.title != "" {
			if err := writer.Write([]string{t.title}); err != nil {
				return nil, fmt.Errorf("write csv title: %w", err)
			}
		}
		if err := writer.Write(t.headers); err != nil {
			return nil, fmt.Errorf("write csv headers: %w", err)
		}
		for _, row := range t.rows {
			record := make([]string, len(row.cells))
			for j, cell := range row.cells {
				record[j] = formatCell(cell)
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case decimal.Decimal:
		return v.StringFixed(2)
	case precise:
		return formatPrecise(decimal.Decimal(v))
	default:
		return fmt.Sprint(v)
	}
}

// formatPrecise prints at least two places and never drops significant ones.
func formatPrecise(d decimal.Decimal) string {
	s := d.String()
	if dot := strings.IndexByte(s, '.'); dot >= 0 && len(s)-dot-1 > 2 {
		return s
	}
	return d.StringFixed(2)
}
