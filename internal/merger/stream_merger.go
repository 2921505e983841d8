package merger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"github.com/ryabkov82/scimerge/internal/config"
	"github.com/ryabkov82/scimerge/internal/csvio"
	"github.com/ryabkov82/scimerge/internal/discover"
	"github.com/ryabkov82/scimerge/internal/errors"
)

// StreamMerger построчно сливает CSV-файлы с одинаковым заголовком в один,
// добавляя первой колонкой метку файла-источника.
type StreamMerger struct {
	BaseMerger
	Cfg       *config.Config
	Encoding  encoding.Encoding
	TagColumn string
	TagWidth  int
	Logger    *zap.Logger
	// Files - непустые файлы в порядке слияния
	Files      []string
	RowCounter int64
}

var _ FileMerger = (*StreamMerger)(nil)

func NewStreamMerger(logger *zap.Logger) *StreamMerger {
	if logger == nil {
		logger = zap.NewNop()
	}
	sm := &StreamMerger{
		TagColumn: config.DefaultTagColumn,
		TagWidth:  config.DefaultTagWidth,
		Logger:    logger,
	}
	sm.BaseMerger.Init() // Инициализация базовой части
	return sm
}

func (sm *StreamMerger) MergeFiles(cfg *config.Config) (*Result, error) {
	sm.Cfg = cfg
	sm.TagColumn = cfg.TagColumn
	sm.TagWidth = cfg.TagWidth

	enc, err := csvio.Lookup(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	sm.Encoding = enc

	// получаем список входящих файлов
	inputFiles, err := discover.Files(cfg.InputDir, cfg.Pattern, cfg.Recursive)
	if err != nil {
		return nil, err
	}
	inputFiles = sm.excludeOutput(inputFiles)
	if len(inputFiles) == 0 {
		return nil, fmt.Errorf("%w %s", errors.ErrNoFilesMatched,
			discover.SearchGlob(cfg.InputDir, cfg.Pattern, cfg.Recursive))
	}

	// эталонный заголовок и список непустых файлов
	if err := sm.Scan(inputFiles); err != nil {
		return nil, err
	}

	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("create output %s: %w", cfg.OutputPath, err)
	}

	if err := sm.Stream(out); err != nil {
		_ = out.Close()
		sm.discardOutput()
		return nil, err
	}
	if err := out.Close(); err != nil {
		sm.discardOutput()
		return nil, fmt.Errorf("close output %s: %w", cfg.OutputPath, err)
	}

	return &Result{
		OutputFiles:  []string{cfg.OutputPath},
		FileCount:    len(sm.Files),
		HeaderSource: sm.HeaderSource,
		RowCount:     sm.RowCounter,
	}, nil
}

// Scan читает заголовки всех файлов по порядку. Пустые файлы пропускаются,
// первый непустой заголовок становится эталонным.
func (sm *StreamMerger) Scan(inputFiles []string) error {
	sm.BaseMerger.Init()
	sm.Files = sm.Files[:0]

	for _, path := range inputFiles {
		header, err := csvio.ReadHeader(path, sm.Encoding)
		if err != nil {
			return err
		}
		if len(header) == 0 {
			sm.Logger.Debug("Skipping empty file", zap.String("path", path))
			continue
		}
		if sm.HeaderSource == "" {
			sm.Headers = header
			sm.HeaderSource = path
		}
		sm.Files = append(sm.Files, path)
	}

	if sm.HeaderSource == "" {
		return fmt.Errorf("%w; nothing to merge", errors.ErrEmptyInputSet)
	}
	return nil
}

// Stream пишет в w заголовок и строки всех файлов, найденных Scan.
// На первом файле с другим заголовком запись прекращается.
func (sm *StreamMerger) Stream(w io.Writer) error {
	cw := csvio.NewWriter(w, sm.Encoding)
	sm.RowCounter = 0

	if err := cw.Write(append([]string{sm.TagColumn}, sm.Headers...)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	// Обход всех файлов
	for _, path := range sm.Files {
		if err := sm.processInputFile(cw, path); err != nil {
			// уже записанное отдаем в w, чтобы вызывающий видел точку остановки
			_ = cw.Close()
			return err
		}
	}

	// Заключительный flush
	if err := cw.Close(); err != nil {
		return fmt.Errorf("final flush: %w", err)
	}
	return nil
}

func (sm *StreamMerger) processInputFile(cw *csvio.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csvio.NewReader(f, sm.Encoding)

	header, err := r.Read()
	if err != nil && err != io.EOF {
		return fmt.Errorf("read header of %s: %w", path, err)
	}
	if !HeadersMatch(header, sm.Headers) {
		return &errors.HeaderMismatchError{
			Path:          path,
			ReferencePath: sm.HeaderSource,
			Expected:      sm.Headers,
			Found:         header,
			Index:         Divergence(sm.Headers, header),
		}
	}

	// позиции колонок эталона в этом файле; имена, совпадающие после обрезки
	// пробелов ("a" и "a "), получают значение последней такой колонки
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	positions := make([]int, len(sm.Headers))
	for i, name := range sm.Headers {
		pos, ok := index[strings.TrimSpace(name)]
		if !ok {
			pos = -1
		}
		positions[i] = pos
	}

	tag := Tag(path, sm.TagWidth)
	rowData := make([]string, len(sm.Headers)+1)
	rowInFile := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		rowData[0] = tag
		for i, pos := range positions {
			if pos >= 0 && pos < len(record) {
				rowData[i+1] = record[pos]
			} else {
				rowData[i+1] = ""
			}
		}
		if err := cw.Write(rowData); err != nil {
			return fmt.Errorf("write row: %w", err)
		}

		sm.RowCounter++
		rowInFile++
	}

	sm.Logger.Debug("Merged file", zap.String("path", path), zap.Int("rows", rowInFile))
	return cw.Flush()
}

// excludeOutput убирает из входных файлов сам выходной файл,
// если он остался от прошлого запуска и попадает под шаблон.
func (sm *StreamMerger) excludeOutput(files []string) []string {
	outAbs, err := filepath.Abs(sm.Cfg.OutputPath)
	if err != nil {
		return files
	}
	kept := files[:0]
	for _, path := range files {
		if abs, err := filepath.Abs(path); err == nil && abs == outAbs {
			sm.Logger.Warn("Output file matches input pattern, skipping it", zap.String("path", path))
			continue
		}
		kept = append(kept, path)
	}
	return kept
}

func (sm *StreamMerger) discardOutput() {
	if err := os.Remove(sm.Cfg.OutputPath); err != nil && !os.IsNotExist(err) {
		sm.Logger.Warn("Failed to remove incomplete output", zap.String("path", sm.Cfg.OutputPath), zap.Error(err))
	}
}

// Tag - первые width символов имени файла.
func Tag(path string, width int) string {
	base := []rune(filepath.Base(path))
	if len(base) > width {
		base = base[:width]
	}
	return string(base)
}
