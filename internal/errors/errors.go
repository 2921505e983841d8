// Package errors описывает классы ошибок, на которых останавливается запуск,
// и коды завершения процесса для каждого из них.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

var (
	ErrNoFilesMatched      = stderrors.New("no files matched")
	ErrEmptyInputSet       = stderrors.New("all matched files are empty")
	ErrHeaderMismatch      = stderrors.New("header mismatch")
	ErrColumnCountMismatch = stderrors.New("column count mismatch")
	ErrInvalidArgument     = stderrors.New("invalid argument")
)

// Коды завершения: 2-4 совпадают с кодами исходных скриптов.
const (
	ExitSuccess             = 0
	ExitFailure             = 1
	ExitNoFilesMatched      = 2
	ExitEmptyInputSet       = 3
	ExitHeaderMismatch      = 4
	ExitColumnCountMismatch = 5
	ExitInvalidArgument     = 6
)

// HeaderMismatchError - заголовок файла расходится с эталонным.
type HeaderMismatchError struct {
	Path          string
	ReferencePath string
	Expected      []string
	Found         []string
	// Index - первая позиция расхождения
	Index int
}

func (e *HeaderMismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "header mismatch in %s\n", e.Path)
	fmt.Fprintf(&b, "  Expected (from %s): %s\n", e.ReferencePath, quoteList(e.Expected))
	fmt.Fprintf(&b, "  Found: %s", quoteList(e.Found))
	if e.Index >= 0 {
		fmt.Fprintf(&b, "\n  First difference at column %d", e.Index+1)
	}
	return b.String()
}

func (e *HeaderMismatchError) Is(target error) bool {
	return target == ErrHeaderMismatch
}

// ColumnCountMismatchError - ширина таблицы не равна ширине канонической схемы.
type ColumnCountMismatchError struct {
	Expected int
	Found    int
	Groups   int
}

func (e *ColumnCountMismatchError) Error() string {
	return fmt.Sprintf("column count mismatch: expected %d columns (%d subcontractor groups), found %d",
		e.Expected, e.Groups, e.Found)
}

func (e *ColumnCountMismatchError) Is(target error) bool {
	return target == ErrColumnCountMismatch
}

// InvalidArgument оборачивает ErrInvalidArgument с пояснением.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// ExitCode возвращает код завершения для ошибки.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case stderrors.Is(err, ErrNoFilesMatched):
		return ExitNoFilesMatched
	case stderrors.Is(err, ErrEmptyInputSet):
		return ExitEmptyInputSet
	case stderrors.Is(err, ErrHeaderMismatch):
		return ExitHeaderMismatch
	case stderrors.Is(err, ErrColumnCountMismatch):
		return ExitColumnCountMismatch
	case stderrors.Is(err, ErrInvalidArgument):
		return ExitInvalidArgument
	default:
		return ExitFailure
	}
}

// Format готовит текст диагностики для stderr.
func Format(err error) string {
	if err == nil {
		return ""
	}
	var hm *HeaderMismatchError
	if stderrors.As(err, &hm) {
		return hm.Error()
	}
	if stderrors.Is(err, ErrColumnCountMismatch) {
		return "ERROR: Column alignment error: " + err.Error()
	}
	return "ERROR: " + err.Error()
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
