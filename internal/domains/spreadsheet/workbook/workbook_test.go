package workbook

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestHasSupportedExtension(t *testing.T) {
	assert.True(t, HasSupportedExtension("roster.xlsx"))
	assert.True(t, HasSupportedExtension("ROSTER.XLSM"))
	assert.False(t, HasSupportedExtension("roster.csv"))
	assert.False(t, HasSupportedExtension("roster"))
}

func TestWriteThenRead(t *testing.T) {
	data, err := Write("Books", []string{"title", "author", "quantity"}, [][]interface{}{
		{"Dune", "Herbert", 3},
		{"Emma", "Austen", nil},
	})
	require.NoError(t, err)

	rows, err := ReadDataRows(bytes.NewReader(data))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Dune", "Herbert", "3"}, rows[0])
	assert.Equal(t, "Emma", Cell(rows[1], 0))
	assert.Equal(t, "", Cell(rows[1], 2))
}

func TestWrite_HeaderIsBold(t *testing.T) {
	data, err := Write("Students", []string{"first_name", "last_name"}, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "Students", f.GetSheetName(f.GetActiveSheetIndex()))

	styleID, err := f.GetCellStyle("Students", "B1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestReadDataRows_Garbage(t *testing.T) {
	_, err := ReadDataRows(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}
