package ingest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lokesh-sivakumar/hope-trust/config"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseWorkbookClientHeaders(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"S.NO", "DONOR NAME", "AMOUNT", "D.O.D", "RECEIPT NUMBER"},
		{"1", "Aravind.S(HT)", "2500", "15.03.24", ""},
		{"2", "Priya R", "500.50", "16.03.24", "R7-0042"},
	})

	inputs, err := ParseWorkbook(buf)
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	first := inputs[0]
	assert.Equal(t, 2, first.Row, "data starts at spreadsheet row 2")
	assert.Equal(t, "Aravind.S(HT)", first.Name)
	assert.Equal(t, "2500", first.Amount)
	assert.Equal(t, "15.03.24", first.Date)
	require.NotNil(t, first.SerialNo)
	assert.Equal(t, 1, *first.SerialNo)
	// Absent Address/Pan columns fall back to the fixed placeholders.
	assert.Equal(t, config.DefaultAddress, first.Address)
	assert.Equal(t, config.DefaultPan, first.Pan)

	assert.Equal(t, "R7-0042", inputs[1].ReceiptHint)
}

func TestParseWorkbookHeadersAreCaseInsensitive(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"s.no", "donor name", "Amount", "d.o.d", "Receipt Number", "address", "pan"},
		{"7", "Lakshmi T", "1000", "01.01.24", "", "Madurai", "ABCDE1234F"},
	})

	inputs, err := ParseWorkbook(buf)
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, "Madurai", inputs[0].Address)
	assert.Equal(t, "ABCDE1234F", inputs[0].Pan)
}

func TestParseWorkbookRejectsMissingRequiredColumns(t *testing.T) {
	// No RECEIPT NUMBER column: the whole file is rejected before any row
	// processing.
	buf := buildWorkbook(t, [][]interface{}{
		{"DONOR NAME", "AMOUNT", "D.O.D"},
		{"Priya R", "500", "16.03.24"},
	})

	inputs, err := ParseWorkbook(buf)
	assert.Error(t, err)
	assert.Nil(t, inputs)
	assert.Contains(t, err.Error(), "required columns")
}

func TestParseWorkbookKeepsIncompleteRows(t *testing.T) {
	// Empty cells are kept so the pipeline can log a validation skip with
	// the right row number, rather than silently dropping the row here.
	buf := buildWorkbook(t, [][]interface{}{
		{"DONOR NAME", "AMOUNT", "D.O.D", "RECEIPT NUMBER"},
		{"", "", "", ""},
		{"Vijay P", "750", "02.02.24", ""},
	})

	inputs, err := ParseWorkbook(buf)
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, 2, inputs[0].Row)
	assert.Empty(t, inputs[0].Name)
	assert.Equal(t, 3, inputs[1].Row)
	assert.Equal(t, "Vijay P", inputs[1].Name)
}

func TestParseWorkbookNonNumericSerialIgnored(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"S.NO", "DONOR NAME", "AMOUNT", "D.O.D", "RECEIPT NUMBER"},
		{"abc", "Karthik S", "300", "03.03.24", ""},
	})

	inputs, err := ParseWorkbook(buf)
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Nil(t, inputs[0].SerialNo)
}
