// Package ingest reads the donor spreadsheets the data-entry team uploads.
package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lokesh-sivakumar/hope-trust/config"
	"github.com/lokesh-sivakumar/hope-trust/models"
)

// Canonical fields a donor sheet can carry. Header matching is
// case-insensitive and accepts both the client's headers (S.NO, D.O.D,
// DONOR NAME) and the canonical ones.
const (
	fieldSerial  = "serial"
	fieldDate    = "date"
	fieldName    = "name"
	fieldAmount  = "amount"
	fieldHint    = "receipt"
	fieldAddress = "address"
	fieldPan     = "pan"
)

var headerAliases = map[string]string{
	"S.NO":           fieldSerial,
	"SERIAL NO":      fieldSerial,
	"D.O.D":          fieldDate,
	"DATE":           fieldDate,
	"DONOR NAME":     fieldName,
	"NAME":           fieldName,
	"AMOUNT":         fieldAmount,
	"RECEIPT NUMBER": fieldHint,
	"ADDRESS":        fieldAddress,
	"PAN":            fieldPan,
}

// requiredFields must all be present or the whole file is rejected before
// any row is processed.
var requiredFields = []string{fieldName, fieldAmount, fieldDate, fieldHint}

// ParseWorkbook reads the first sheet of an .xlsx file into submission
// inputs. Each input remembers its spreadsheet row number (header row = 1)
// so batch log lines can point back at the file. Address and PAN default to
// the fixed placeholders when their columns are absent.
func ParseWorkbook(r io.Reader) ([]models.DonationInput, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	columns := make(map[string]int)
	for i, header := range rows[0] {
		if field, ok := headerAliases[strings.ToUpper(strings.TrimSpace(header))]; ok {
			columns[field] = i
		}
	}

	var missing []string
	for _, field := range requiredFields {
		if _, ok := columns[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("excel file is missing one or more required columns: %s", strings.Join(missing, ", "))
	}

	cell := func(row []string, field string) string {
		idx, ok := columns[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	inputs := make([]models.DonationInput, 0, len(rows)-1)
	for i, row := range rows[1:] {
		input := models.DonationInput{
			Row:         i + 2,
			Date:        cell(row, fieldDate),
			Name:        cell(row, fieldName),
			Amount:      cell(row, fieldAmount),
			ReceiptHint: cell(row, fieldHint),
		}

		if _, ok := columns[fieldAddress]; ok {
			input.Address = cell(row, fieldAddress)
		} else {
			input.Address = config.DefaultAddress
		}

		if _, ok := columns[fieldPan]; ok {
			input.Pan = cell(row, fieldPan)
		} else {
			input.Pan = config.DefaultPan
		}

		if raw := cell(row, fieldSerial); raw != "" {
			if serial, err := strconv.Atoi(raw); err == nil {
				input.SerialNo = &serial
			}
		}

		inputs = append(inputs, input)
	}

	return inputs, nil
}
