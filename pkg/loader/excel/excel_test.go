package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/contribgraph/backend/pkg/loader"
)

func mkXLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	buf := bytes.NewBuffer(nil)
	_, err := f.WriteTo(buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseTable(t *testing.T) {
	blob := mkXLSX(t, [][]any{
		{"exported 2024"},
		{"#", "Qui", "", "Quoi", "", "Topic"},
		{1, "Alex", "", "editing", "", "Sound, Design"},
	})

	table, err := ParseTable(blob)
	require.NoError(t, err)
	assert.Equal(t, loader.Table{
		{"exported 2024", "", "", "", "", ""},
		{"#", "Qui", "", "Quoi", "", "Topic"},
		{"1", "Alex", "", "editing", "", "Sound, Design"},
	}, table)
}

func TestParseTablePadsToSheetWidth(t *testing.T) {
	blob := mkXLSX(t, [][]any{
		{"meta"},
		{"#", "Qui", "", "Quoi"},
		{1, "Alex", "", "editing", "", "Sound, Design"},
	})

	table, err := ParseTable(blob)
	require.NoError(t, err)
	require.Len(t, table, 3)
	for i, row := range table {
		assert.Len(t, row, 6, "row %d", i)
	}
	assert.Equal(t, []string{"#", "Qui", "", "Quoi", "", ""}, table[1])
	assert.Equal(t, "Sound, Design", table[2][5])
}

func TestParseTableGarbage(t *testing.T) {
	_, err := ParseTable([]byte("this is not a zip archive"))
	require.Error(t, err)
}
