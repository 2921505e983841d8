// Package reader загружает исходную таблицу отчета из xlsx или CSV.
package reader

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ryabkov82/scimerge/internal/csvio"
	"github.com/ryabkov82/scimerge/internal/errors"
	"github.com/ryabkov82/scimerge/internal/table"
)

// Reader читает файл целиком в таблицу.
type Reader interface {
	Read(path string) (*table.Table, error)
}

type Options struct {
	// XLSXHeaderRow - индекс строки заголовка (с нуля) в листе книги
	XLSXHeaderRow int
	// CSVHeaderRow - индекс записи заголовка в CSV
	CSVHeaderRow int
	Sheet        string
	RawValues    bool
	Encoding     string
}

// ForPath выбирает читателя по расширению файла.
func ForPath(path string, opts Options) (Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return &XLSX{HeaderRow: opts.XLSXHeaderRow, Sheet: opts.Sheet, RawValues: opts.RawValues}, nil
	case ".csv":
		enc, err := csvio.Lookup(opts.Encoding)
		if err != nil {
			return nil, err
		}
		return &CSV{HeaderRow: opts.CSVHeaderRow, Encoding: enc}, nil
	}
	return nil, errors.InvalidArgument("unsupported input file type %q", filepath.Ext(path))
}

// assemble собирает таблицу: ширина - максимум по заголовку и строкам,
// пустые имена заменяются на "Unnamed: <i>", повторы получают суффикс ".N",
// полностью пустые строки пропускаются.
func assemble(header []string, rows [][]string) *table.Table {
	width := len(header)
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		width = max(width, len(row))
		data = append(data, row)
	}

	columns := make([]string, width)
	seen := make(map[string]int, width)
	for i := range columns {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		if strings.TrimSpace(name) == "" {
			name = table.UnnamedPrefix + ": " + strconv.Itoa(i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		columns[i] = name
	}

	return table.New(columns, data)
}

func isBlank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
