package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet = "Sheet1"
	columnWidth  = 15
	// excelize built-in number format "0.00".
	moneyNumFmt = 2
)

// unit prices show cents and up to the four places the schema stores.
var priceNumFmt = "0.00##"

type sheetStyles struct {
	header int
	money  int
	price  int
	best   int
}

// writeXLSX puts each table on its own sheet, the first one active.
func writeXLSX(tables ...table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, t.title); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(t.title); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", t.title, err)
		}
		if err := writeSheet(f, t, styles); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return sheetStyles{}, fmt.Errorf("create header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt})
	if err != nil {
		return sheetStyles{}, fmt.Errorf("create money style: %w", err)
	}
	price, err := f.NewStyle(&excelize.Style{CustomNumFmt: &priceNumFmt})
	if err != nil {
		return sheetStyles{}, fmt.Errorf("create price style: %w", err)
	}
	best, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &priceNumFmt,
		Font:         &excelize.Font{Bold: true, Color: "#006100"},
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"#C6EFCE"}, Pattern: 1},
	})
	if err != nil {
		return sheetStyles{}, fmt.Errorf("create best price style: %w", err)
	}
	return sheetStyles{header: header, money: money, price: price, best: best}, nil
}

func writeSheet(f *excelize.File, t table, styles sheetStyles) error {
	headerRow := make([]any, len(t.headers))
	for i, header := range t.headers {
		headerRow[i] = header
	}
	if err := f.SetSheetRow(t.title, "A1", &headerRow); err != nil {
		return fmt.Errorf("write %s headers: %w", t.title, err)
	}
	lastCol, err := excelize.CoordinatesToCellName(len(t.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(t.title, "A1", lastCol, styles.header); err != nil {
		return fmt.Errorf("style %s headers: %w", t.title, err)
	}

	for r, row := range t.rows {
		rowNum := r + 2
		values := make([]any, len(row.cells))
		for c, cell := range row.cells {
			values[c] = sheetValue(cell)
		}
		start, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.title, start, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", t.title, rowNum, err)
		}
		for c, cell := range row.cells {
			var style int
			switch cell.(type) {
			case decimal.Decimal:
				style = styles.money
			case precise:
				style = styles.price
			default:
				continue
			}
			if err := styleCell(f, t.title, c+1, rowNum, style); err != nil {
				return err
			}
		}
		for _, c := range row.best {
			if err := styleCell(f, t.title, c+1, rowNum, styles.best); err != nil {
				return err
			}
		}
	}

	lastName, err := excelize.ColumnNumberToName(len(t.headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(t.title, "A", lastName, columnWidth)
}

func styleCell(f *excelize.File, sheet string, col, row, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
		return fmt.Errorf("style %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// sheetValue keeps money and prices numeric in the workbook.
func sheetValue(value any) any {
	switch v := value.(type) {
	case decimal.Decimal:
		return v.InexactFloat64()
	case precise:
		return decimal.Decimal(v).InexactFloat64()
	}
	return value
}
