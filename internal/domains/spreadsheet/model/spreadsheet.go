package model

import (
	"fmt"
	"math"
	"strconv"

	"librarian-backend/internal/domains/spreadsheet/workbook"
)

// Kind names an importable/exportable collection.
type Kind string

const (
	KindStudents Kind = "students"
	KindBooks    Kind = "books"
)

// ImportStudentsResult is the body of POST /students/import_excel.
type ImportStudentsResult struct {
	Added   []string `json:"added"`
	Skipped []string `json:"skipped"`
}

// ImportBooksResult is the body of POST /books/import_excel.
type ImportBooksResult struct {
	Added   []string `json:"added"`
	Updated []string `json:"updated"`
}

// ExportFile is a rendered workbook. Empty is set instead when the collection
// has no records.
type ExportFile struct {
	Filename string
	Data     []byte
	Empty    string
}

// StudentRow is one import line: last name, first name, class.
type StudentRow struct {
	LastName  string
	FirstName string
	ClassName string
}

func (r StudentRow) Describe() string {
	return fmt.Sprintf("%s %s (%s)", r.FirstName, r.LastName, r.ClassName)
}

// ParseStudentRow returns false when any of the three cells is blank.
func ParseStudentRow(cells []string) (StudentRow, bool) {
	row := StudentRow{
		LastName:  workbook.Cell(cells, 0),
		FirstName: workbook.Cell(cells, 1),
		ClassName: workbook.Cell(cells, 2),
	}
	if row.LastName == "" || row.FirstName == "" || row.ClassName == "" {
		return StudentRow{}, false
	}
	return row, true
}

// BookRow is one import line: title, author, quantity.
type BookRow struct {
	Title    string
	Author   string
	Quantity int
}

// ParseBookRow returns false for blank title or author and for a quantity
// that is blank, zero, negative, fractional or not a number.
func ParseBookRow(cells []string) (BookRow, bool) {
	row := BookRow{
		Title:  workbook.Cell(cells, 0),
		Author: workbook.Cell(cells, 1),
	}
	if row.Title == "" || row.Author == "" {
		return BookRow{}, false
	}

	raw := workbook.Cell(cells, 2)
	if raw == "" {
		return BookRow{}, false
	}

	qty, err := strconv.ParseFloat(raw, 64)
	if err != nil || qty <= 0 || qty != math.Trunc(qty) || qty > math.MaxInt32 {
		return BookRow{}, false
	}

	row.Quantity = int(qty)
	return row, true
}
