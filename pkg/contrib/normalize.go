package contrib

import (
	"errors"
	"strings"

	"github.com/contribgraph/backend/pkg/loader"
)

// ErrNoHeader is returned for a table that has no row after the metadata
// row, i.e. nothing to take column labels from.
var ErrNoHeader = errors.New("table has no header row")

const (
	metadataRows = 1
	headerRow    = metadataRows
	firstDataRow = headerRow + 1
)

// HeaderLabels returns the trimmed column labels of table. Labels may be
// blank or repeated; only their count is significant.
func HeaderLabels(table loader.Table) ([]string, error) {
	if len(table) <= headerRow {
		return nil, ErrNoHeader
	}
	raw := table[headerRow]
	labels := make([]string, len(raw))
	for i, l := range raw {
		labels[i] = strings.TrimSpace(l)
	}
	return labels, nil
}

// Normalize extracts records from table. The first row is skipped as
// metadata and the second defines how many columns the table has. Fields
// bound past that width are left out of every record; if who itself is out
// of range the table yields no records. Rows without a valid who are
// dropped silently.
func Normalize(table loader.Table, p Provenance, columns ColumnMap) ([]Record, error) {
	labels, err := HeaderLabels(table)
	if err != nil {
		return nil, err
	}
	width := len(labels)

	whoIdx := columns.Index(FieldWho)
	if whoIdx < 0 || whoIdx >= width {
		return []Record{}, nil
	}

	out := make([]Record, 0, len(table)-firstDataRow)
	for _, row := range table[firstDataRow:] {
		rec := Record{Provenance: p}
		for _, b := range columns {
			if b.Index < 0 || b.Index >= width {
				continue
			}
			rec.set(b.Field, cell(row, b.Index))
		}
		if !IsValidWho(rec.Who) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// cell returns the trimmed value at idx, or "" for a short row.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
