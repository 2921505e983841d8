package table

import "strings"

// DropLeadingBlankColumn убирает первую колонку, если у нее нет заголовка
// или в ней нет ни одного значения. Такая колонка остается в выгрузках от
// объединенных ячеек над строкой заголовка.
func DropLeadingBlankColumn(t *Table) *Table {
	if t.Width() == 0 {
		return t
	}

	if !strings.HasPrefix(t.Columns[0], UnnamedPrefix) && !allEmpty(t.Column(0)) {
		return t
	}

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		if len(row) > 0 {
			rows[i] = row[1:]
		} else {
			rows[i] = row
		}
	}
	return &Table{Columns: t.Columns[1:], Rows: rows}
}

func allEmpty(values []string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}
