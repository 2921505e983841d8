package reader

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"

	"github.com/ryabkov82/scimerge/internal/csvio"
	"github.com/ryabkov82/scimerge/internal/table"
)

// CSV читает CSV-выгрузку отчета.
type CSV struct {
	HeaderRow int
	Encoding  encoding.Encoding
}

func (c *CSV) Read(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csvio.NewReader(f, c.Encoding)

	var (
		header    []string
		hasHeader bool
		data      [][]string
	)
	for idx := 0; ; idx++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		switch {
		case idx < c.HeaderRow:
		case idx == c.HeaderRow:
			header = record
			hasHeader = true
		default:
			data = append(data, record)
		}
	}

	if !hasHeader {
		return &table.Table{}, nil
	}
	return assemble(header, data), nil
}
