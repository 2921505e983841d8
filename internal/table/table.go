// Package table держит прочитанную таблицу в памяти и приводит ее
// к канонической схеме отчета.
package table

import (
	"github.com/ryabkov82/scimerge/internal/errors"
	"github.com/ryabkov82/scimerge/internal/schema"
)

// UnnamedPrefix - префикс имени, которым читатель помечает колонку без заголовка.
const UnnamedPrefix = "Unnamed"

// Table - заголовок и строки со строковыми значениями ячеек.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New создает таблицу и выравнивает строки по ширине заголовка.
func New(columns []string, rows [][]string) *Table {
	t := &Table{Columns: columns, Rows: rows}
	for i, row := range t.Rows {
		t.Rows[i] = resize(row, len(columns))
	}
	return t
}

func (t *Table) Width() int { return len(t.Columns) }

func (t *Table) Len() int { return len(t.Rows) }

// Column возвращает значения колонки с индексом idx.
func (t *Table) Column(idx int) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			values[i] = row[idx]
		}
	}
	return values
}

// Rebind переименовывает колонки по позиции. Ширина должна совпадать со схемой.
func (t *Table) Rebind(s schema.Schema) error {
	if t.Width() != s.Width() {
		return &errors.ColumnCountMismatchError{
			Expected: s.Width(),
			Found:    t.Width(),
			Groups:   s.Groups(),
		}
	}
	t.Columns = s.Names()
	return nil
}

// resize обрезает или дополняет строку пустыми значениями до ширины width.
func resize(row []string, width int) []string {
	switch {
	case len(row) > width:
		return row[:width:width]
	case len(row) < width:
		out := make([]string, width)
		copy(out, row)
		return out
	}
	return row
}
