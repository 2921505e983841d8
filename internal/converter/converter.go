// Package converter готовит отчет к загрузке в базу: читает xlsx или CSV,
// приводит колонки к канонической схеме и пишет CSV.
package converter

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"github.com/ryabkov82/scimerge/internal/config"
	"github.com/ryabkov82/scimerge/internal/csvio"
	"github.com/ryabkov82/scimerge/internal/reader"
	"github.com/ryabkov82/scimerge/internal/table"
)

type Result struct {
	OutputPath string
	Rows       int
	Columns    int
	// DroppedLeading - первая пустая колонка была удалена
	DroppedLeading bool
	Align          *table.AlignReport
}

type Converter struct {
	Logger *zap.Logger
}

func NewConverter(logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{Logger: logger}
}

func (c *Converter) Convert(cfg *config.Config) (*Result, error) {
	outEnc, err := csvio.Lookup(cfg.OutputEncoding)
	if err != nil {
		return nil, err
	}

	r, err := reader.ForPath(cfg.InputPath, reader.Options{
		XLSXHeaderRow: cfg.HeaderRow,
		CSVHeaderRow:  cfg.CSVHeaderRow,
		Sheet:         cfg.Sheet,
		RawValues:     cfg.RawValues,
		Encoding:      cfg.Encoding,
	})
	if err != nil {
		return nil, err
	}

	raw, err := r.Read(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("Read input",
		zap.String("path", cfg.InputPath),
		zap.Int("rows", raw.Len()),
		zap.Int("columns", raw.Width()))

	aligner := table.NewAligner(cfg.MaxGroups, cfg.PadSubs)
	aligner.Strict = cfg.Strict
	aligner.Logger = c.Logger

	aligned, res, err := c.Normalize(raw, aligner)
	if err != nil {
		return nil, err
	}

	// выходной файл создается только после успешного выравнивания
	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("create output %s: %w", cfg.OutputPath, err)
	}
	if err := WriteTable(out, aligned, outEnc); err != nil {
		_ = out.Close()
		_ = os.Remove(cfg.OutputPath)
		return nil, fmt.Errorf("write %s: %w", cfg.OutputPath, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(cfg.OutputPath)
		return nil, fmt.Errorf("close output %s: %w", cfg.OutputPath, err)
	}

	res.OutputPath = cfg.OutputPath
	return res, nil
}

// Normalize убирает пустую первую колонку и выравнивает таблицу.
func (c *Converter) Normalize(raw *table.Table, aligner *table.Aligner) (*table.Table, *Result, error) {
	trimmed := table.DropLeadingBlankColumn(raw)
	dropped := trimmed.Width() < raw.Width()
	if dropped {
		c.Logger.Debug("Dropped leading blank column", zap.String("name", raw.Columns[0]))
	}

	aligned, report, err := aligner.Align(trimmed)
	if err != nil {
		return nil, nil, err
	}

	return aligned, &Result{
		Rows:           aligned.Len(),
		Columns:        aligned.Width(),
		DroppedLeading: dropped,
		Align:          report,
	}, nil
}

// WriteTable пишет заголовок и строки таблицы в w.
func WriteTable(w io.Writer, t *table.Table, enc encoding.Encoding) error {
	cw := csvio.NewWriter(w, enc)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Close()
}
