package csv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/contribgraph/backend/pkg/loader"
)

// ErrEncoding is returned when the content is not valid UTF-8.
var ErrEncoding = errors.New("content is not valid UTF-8")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseOptions controls how delimited text is split into cells.
// The zero value reads comma-separated text.
type ParseOptions struct {
	Comma rune
}

// ParseTable parses comma-separated content into a raw table.
func ParseTable(content []byte) (loader.Table, error) {
	return ParseTableWithOptions(content, ParseOptions{})
}

// ParseTableWithOptions parses delimited content into a raw table. Rows keep
// their own length; blank lines are skipped and whitespace following a
// delimiter is dropped. A blank first line is the one exception: it is kept
// as an empty row so it still occupies the metadata position. Any structural
// error fails the whole table.
func ParseTableWithOptions(content []byte, opts ParseOptions) (loader.Table, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) {
		return nil, ErrEncoding
	}

	table := loader.Table{}
	if rest, ok := cutBlankFirstLine(content); ok {
		table = append(table, []string{})
		content = rest
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed delimited text: %w", err)
		}
		table = append(table, record)
	}

	return table, nil
}

// cutBlankFirstLine returns the content after the first line when that line
// holds nothing but whitespace.
func cutBlankFirstLine(content []byte) ([]byte, bool) {
	line, rest, found := bytes.Cut(content, []byte("\n"))
	if !found || len(bytes.TrimSpace(line)) > 0 {
		return content, false
	}
	return rest, true
}
