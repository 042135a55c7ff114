package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/smallbiznis/saletrack/internal/catalog/domain"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Products"

// sheetRow is a data row and its position below the header, counting
// from 1. Skipped blank rows still consume a number.
type sheetRow struct {
	number int
	cells  []string
}

// readSheet returns the header and data rows of the first worksheet.
// Fully blank rows are dropped and short rows are padded to the header width.
func readSheet(r io.Reader) ([]string, []sheetRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, domain.ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidWorkbook, err)
	}
	if len(rows) == 0 {
		return nil, nil, domain.ErrEmptyWorkbook
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.TrimSpace(cell)
	}

	data := make([]sheetRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		padded := make([]string, len(header))
		copy(padded, row)
		data = append(data, sheetRow{number: i + 1, cells: padded})
	}
	if len(data) == 0 {
		return nil, nil, domain.ErrEmptyWorkbook
	}
	return header, data, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// writeSheet builds a single-sheet workbook from header and rows.
func writeSheet(header []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &headerRow); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
