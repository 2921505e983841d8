package cli

import (
	"encoding/json"
	"io"
	"time"

	"github.com/ryabkov82/scimerge/internal/errors"
)

// Output - результат запуска для --json.
type Output struct {
	Success      bool     `json:"success"`
	OutputFiles  []string `json:"output_files,omitempty"`
	Error        string   `json:"error,omitempty"`
	Duration     string   `json:"duration"`
	RowCount     int64    `json:"row_count,omitempty"`
	ColumnCount  int      `json:"column_count,omitempty"`
	FileCount    int      `json:"file_count,omitempty"`
	HeaderSource string   `json:"header_source,omitempty"`
}

// finish печатает JSON-результат, если он запрошен, и возвращает err дальше.
func (a *app) finish(out Output, err error) error {
	if !a.jsonOut {
		return err
	}
	out.Success = err == nil
	if err != nil {
		out.Error = errors.Format(err)
		out.OutputFiles = nil
	}
	out.Duration = time.Since(a.start).String()
	if encErr := emitJSON(a.stdout, out); encErr != nil && err == nil {
		return encErr
	}
	return err
}

func emitJSON(w io.Writer, out Output) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
