// Package workbook reads and writes single-sheet xlsx files with excelize.
package workbook

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SupportedExtensions are the file extensions accepted for import.
var SupportedExtensions = []string{".xlsx", ".xlsm"}

// HasSupportedExtension checks filename case-insensitively.
func HasSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range SupportedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ReadDataRows returns the active sheet's rows after the header row. Rows
// keep excelize's trimming of trailing empty cells.
func ReadDataRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no active sheet")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	if len(rows) <= 1 {
		return [][]string{}, nil
	}
	return rows[1:], nil
}

// Cell returns the trimmed value at index i, or "" when the row is short.
func Cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
