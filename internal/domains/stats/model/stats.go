package model

import (
	"github.com/shopspring/decimal"
)

// Totals are the raw aggregates read from the store.
type Totals struct {
	Students       int
	Books          int
	Copies         int
	BorrowedCopies int
	AvailableBooks int
	ClassCounts    []ClassCount
}

// ClassCount is the number of students carrying one class_name.
type ClassCount struct {
	ClassName string
	Count     int
}

// Stats is the body of GET /stats. ClassCounts is a map so the JSON encoder
// emits it sorted by class name.
type Stats struct {
	TotalStudents      int             `json:"total_students"`
	TotalBooks         int             `json:"total_books"`
	TotalCopies        int             `json:"total_copies"`
	BorrowedCopies     int             `json:"borrowed_copies"`
	AvailableCopies    int             `json:"available_copies"`
	AvailableBooks     int             `json:"available_books"`
	TotalClasses       int             `json:"total_classes"`
	ClassCounts        map[string]int  `json:"class_counts"`
	UtilizationPercent decimal.Decimal `json:"utilization_percent"`
}

var hundred = decimal.NewFromInt(100)

// FromTotals derives the snapshot. Available copies may be negative when
// borrowed_count exceeds quantity.
func FromTotals(t Totals) Stats {
	counts := make(map[string]int, len(t.ClassCounts))
	for _, cc := range t.ClassCounts {
		counts[cc.ClassName] = cc.Count
	}

	utilization := decimal.Zero
	if t.Copies > 0 {
		utilization = decimal.NewFromInt(int64(t.BorrowedCopies)).
			Div(decimal.NewFromInt(int64(t.Copies))).
			Mul(hundred).
			Round(2)
	}

	return Stats{
		TotalStudents:      t.Students,
		TotalBooks:         t.Books,
		TotalCopies:        t.Copies,
		BorrowedCopies:     t.BorrowedCopies,
		AvailableCopies:    t.Copies - t.BorrowedCopies,
		AvailableBooks:     t.AvailableBooks,
		TotalClasses:       len(t.ClassCounts),
		ClassCounts:        counts,
		UtilizationPercent: utilization,
	}
}
