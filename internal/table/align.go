package table

import (
	"go.uber.org/zap"

	"github.com/ryabkov82/scimerge/internal/errors"
	"github.com/ryabkov82/scimerge/internal/schema"
)

// Aligner приводит ширину и имена колонок таблицы к канонической схеме.
type Aligner struct {
	// MaxGroups - граница числа групп и целевое число групп при Pad
	MaxGroups int
	// Pad - дополнять до MaxGroups групп вместо обнаруженного числа
	Pad bool
	// Strict - не обрезать и не дополнять, а возвращать ошибку
	Strict bool
	Logger *zap.Logger
}

// AlignReport - что было сделано с таблицей при выравнивании.
type AlignReport struct {
	InputWidth    int
	Detected      int
	Groups        int
	Width         int
	Truncated     int // отброшено колонок справа
	DroppedValues int // непустых значений в отброшенных колонках
	Padded        int // добавлено пустых колонок
}

func NewAligner(maxGroups int, pad bool) *Aligner {
	return &Aligner{
		MaxGroups: maxGroups,
		Pad:       pad,
		Logger:    zap.NewNop(),
	}
}

func (a *Aligner) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// Align возвращает новую таблицу, ширина и заголовок которой совпадают
// с канонической схемой. Лишние колонки справа отбрасываются, недостающие
// добавляются пустыми; имена присваиваются по позиции.
func (a *Aligner) Align(t *Table) (*Table, *AlignReport, error) {
	limit := schema.Clamp(a.MaxGroups, schema.MaxGroups)

	report := &AlignReport{
		InputWidth: t.Width(),
		Detected:   schema.DetectGroupCount(t.Columns, t.Width(), limit),
	}

	report.Groups = report.Detected
	if a.Pad {
		report.Groups = limit
	}

	target, err := schema.Build(report.Groups)
	if err != nil {
		return nil, nil, err
	}
	report.Width = target.Width()

	current := t.Width()
	if a.Strict && (current > report.Width || (current < report.Width && !a.Pad)) {
		return nil, nil, &errors.ColumnCountMismatchError{
			Expected: report.Width,
			Found:    current,
			Groups:   report.Groups,
		}
	}

	switch {
	case current > report.Width:
		report.Truncated = current - report.Width
		for _, row := range t.Rows {
			for _, v := range row[min(report.Width, len(row)):] {
				if v != "" {
					report.DroppedValues++
				}
			}
		}
	case current < report.Width:
		report.Padded = report.Width - current
	}

	out := &Table{
		Columns: resize(t.Columns, report.Width),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = resize(row, report.Width)
	}

	if err := out.Rebind(target); err != nil {
		return nil, nil, err
	}

	log := a.logger()
	if report.DroppedValues > 0 {
		log.Warn("Truncation discarded non-empty values",
			zap.Int("from_column", report.Width+1),
			zap.Int("to_column", current),
			zap.Int("values", report.DroppedValues))
	} else if report.Truncated > 0 {
		log.Debug("Dropped empty trailing columns", zap.Int("columns", report.Truncated))
	}
	log.Debug("Aligned table",
		zap.Int("input_width", report.InputWidth),
		zap.Int("detected_groups", report.Detected),
		zap.Int("groups", report.Groups),
		zap.Int("width", report.Width),
		zap.Int("padded", report.Padded))

	return out, report, nil
}
