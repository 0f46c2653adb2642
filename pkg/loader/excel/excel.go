package excel

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/contribgraph/backend/pkg/loader"
)

// ParseTable reads the first worksheet of an .xlsx workbook into a raw
// table. Cell values are taken as formatted strings, so numbers and dates
// look the way they do in the spreadsheet.
func ParseTable(content []byte) (loader.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("malformed workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return loader.Table{}, nil
	}

	return ParseSheet(f, sheets[0])
}

// ParseSheet reads one named worksheet of an open workbook. Every row is
// padded with "" to the width of the sheet, so blank trailing cells
// (including blank trailing header labels) still count as columns.
func ParseSheet(f *excelize.File, sheet string) (loader.Table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	width := sheetWidth(f, sheet)
	for _, row := range rows {
		width = max(width, len(row))
	}

	table := make(loader.Table, len(rows))
	for i, row := range rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		}
		table[i] = row
	}
	return table, nil
}

// sheetWidth returns the column count of the sheet's used range, or 0 when
// the dimension is missing or unreadable.
func sheetWidth(f *excelize.File, sheet string) int {
	dim, err := f.GetSheetDimension(sheet)
	if err != nil || dim == "" {
		return 0
	}
	parts := strings.Split(dim, ":")
	col, _, err := excelize.CellNameToCoordinates(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return col
}
