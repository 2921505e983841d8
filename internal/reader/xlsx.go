package reader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ryabkov82/scimerge/internal/table"
)

// DefaultXLSXHeaderRow - в шаблоне отчета заголовок находится в 4-й строке.
const DefaultXLSXHeaderRow = 3

// XLSX читает лист книги Excel.
type XLSX struct {
	HeaderRow int
	// Sheet - имя листа; пусто - первый лист книги
	Sheet string
	// RawValues - значения без числовых форматов ячеек
	RawValues bool
}

func (x *XLSX) Read(path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := x.Sheet
	if sheet == "" {
		sheetList := f.GetSheetList()
		if len(sheetList) == 0 {
			return &table.Table{}, nil
		}
		sheet = sheetList[0]
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows of %s (%s): %w", path, sheet, err)
	}
	defer rows.Close()

	var (
		header    []string
		hasHeader bool
		data      [][]string
	)
	// Columns читаем у каждой строки: итератор excelize продвигается только так
	for rowIdx := 0; rows.Next(); rowIdx++ {
		cols, err := rows.Columns(excelize.Options{RawCellValue: x.RawValues})
		if err != nil {
			return nil, fmt.Errorf("read row %d of %s: %w", rowIdx+1, path, err)
		}
		switch {
		case rowIdx < x.HeaderRow:
		case rowIdx == x.HeaderRow:
			header = cols
			hasHeader = true
		default:
			data = append(data, cols)
		}
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("iterate rows of %s: %w", path, err)
	}

	if !hasHeader {
		return &table.Table{}, nil
	}
	return assemble(header, data), nil
}
