package source

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadTable parses a CSV stream with a header row into a Table.
// A UTF-8 byte order mark is skipped and header names and cells are trimmed
// of surrounding white space. Short rows leave the missing cells empty and
// extra cells are ignored.
func ReadTable(r io.Reader) (model.Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return model.Table{}, nil
	}
	if err != nil {
		return model.Table{}, fmt.Errorf("read header: %w", err)
	}
	t := model.Table{Columns: make([]string, len(header))}
	for i, col := range header {
		t.Columns[i] = strings.TrimSpace(col)
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Table{}, fmt.Errorf("read row %d: %w", len(t.Records)+2, err)
		}
		rec := make(model.Record, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				rec[col] = strings.TrimSpace(row[i])
			} else {
				rec[col] = ""
			}
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

// requireColumns fails with ErrMissingColumn when t lacks any of cols.
func requireColumns(t model.Table, cols ...string) error {
	for _, c := range cols {
		if !t.HasColumn(c) {
			return fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}
	return nil
}
