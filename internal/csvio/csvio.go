// Package csvio читает и пишет CSV в заданной кодировке.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ryabkov82/scimerge/internal/errors"
)

const (
	// UTF8SIG - UTF-8, BOM снимается при чтении и пишется при записи
	UTF8SIG = "utf-8-sig"
	UTF8    = "utf-8"
)

// Lookup находит кодировку по имени.
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	switch key {
	case "utf-8-sig", "utf8-sig":
		return unicode.UTF8BOM, nil
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	}

	enc, err := htmlindex.Get(key)
	if err != nil {
		return nil, errors.InvalidArgument("unknown encoding %q", name)
	}
	return enc, nil
}

// NewReader возвращает csv.Reader, декодирующий r из enc.
// Число полей в записях не проверяется, кавычки разбираются нестрого.
// Для UTF-8 некорректные байты дают ошибку чтения, а не U+FFFD.
func NewReader(r io.Reader, enc encoding.Encoding) *csv.Reader {
	var dec transform.Transformer = enc.NewDecoder()
	if isUTF8(enc) {
		// декодер UTF-8 сам заменяет мусор на U+FFFD, поэтому проверка идет до него
		dec = transform.Chain(encoding.UTF8Validator, dec)
	}
	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

func isUTF8(enc encoding.Encoding) bool {
	return enc == unicode.UTF8 || enc == unicode.UTF8BOM
}

// Writer - csv.Writer поверх кодирующего потока.
type Writer struct {
	*csv.Writer
	tw io.WriteCloser
}

func NewWriter(w io.Writer, enc encoding.Encoding) *Writer {
	tw := transform.NewWriter(w, enc.NewEncoder())
	return &Writer{Writer: csv.NewWriter(tw), tw: tw}
}

// Flush сбрасывает буфер и возвращает ошибку записи, если она была.
func (w *Writer) Flush() error {
	w.Writer.Flush()
	return w.Writer.Error()
}

// Close сбрасывает буферы. Нижележащий поток не закрывается.
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	return w.tw.Close()
}

// ReadHeader возвращает первую запись файла или пустой срез для пустого файла.
func ReadHeader(path string, enc encoding.Encoding) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	header, err := NewReader(f, enc).Read()
	if err == io.EOF {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	return header, nil
}
