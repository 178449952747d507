package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	bookModel "librarian-backend/internal/domains/book/model"
	bookRepo "librarian-backend/internal/domains/book/repository"
	"librarian-backend/internal/domains/lending/model"
	studentModel "librarian-backend/internal/domains/student/model"
	studentRepo "librarian-backend/internal/domains/student/repository"
	"librarian-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// Borrow locks the book row, then the student row, so concurrent borrows of
// the last copy serialise on the book.
func (r *postgresRepository) Borrow(ctx context.Context, studentID, bookID uuid.UUID, now time.Time, dueDays int) (*model.BorrowOutcome, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.BorrowOutcome, error) {
		book, err := lockBook(ctx, tx, bookID)
		if err != nil {
			return nil, err
		}

		student, err := lockStudent(ctx, tx, studentID)
		if err != nil {
			return nil, err
		}

		if err := model.DecideBorrow(book, student); err != nil {
			return nil, err
		}

		hold := model.NewHold(book, now, dueDays)

		insertHold := `
			INSERT INTO borrowed_books (student_id, book_id, book_title, borrowed_date, due_date)
			VALUES ($1, $2, $3, $4, $5)
		`
		if _, err := tx.Exec(ctx, insertHold, student.ID, hold.BookID, hold.BookTitle, hold.BorrowedDate, hold.DueDate); err != nil {
			return nil, fmt.Errorf("failed to insert hold: %w", err)
		}

		if _, err := tx.Exec(ctx, `UPDATE books SET borrowed_count = borrowed_count + 1 WHERE id = $1`, book.ID); err != nil {
			return nil, fmt.Errorf("failed to increment borrowed count: %w", err)
		}

		return &model.BorrowOutcome{BookTitle: book.Title, Hold: hold}, nil
	})
}

// Return takes locks in the same order as Borrow. The book row may be gone.
func (r *postgresRepository) Return(ctx context.Context, studentID, bookID uuid.UUID) (*model.ReturnOutcome, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.ReturnOutcome, error) {
		if _, err := lockBook(ctx, tx, bookID); err != nil {
			return nil, err
		}

		student, err := lockStudent(ctx, tx, studentID)
		if err != nil {
			return nil, err
		}

		hold, err := model.DecideReturn(student, bookID)
		if err != nil {
			return nil, err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM borrowed_books WHERE student_id = $1 AND book_id = $2`, student.ID, bookID); err != nil {
			return nil, fmt.Errorf("failed to delete hold: %w", err)
		}

		tag, err := tx.Exec(ctx, `UPDATE books SET borrowed_count = borrowed_count - 1 WHERE id = $1`, bookID)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement borrowed count: %w", err)
		}

		return &model.ReturnOutcome{
			BookTitle:   hold.BookTitle,
			BookUpdated: tag.RowsAffected() > 0,
		}, nil
	})
}

func (r *postgresRepository) ListOverdue(ctx context.Context, asOf time.Time, limit int) ([]model.OverdueHold, error) {
	query := `
		SELECT s.id, s.first_name, s.last_name, s.class_name,
		       h.book_id, h.book_title, h.borrowed_date, h.due_date
		FROM borrowed_books h
		JOIN students s ON s.id = h.student_id
		WHERE h.due_date IS NOT NULL AND h.due_date < $1
		ORDER BY h.due_date ASC, h.seq ASC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, asOf, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue holds: %w", err)
	}
	defer rows.Close()

	holds := make([]model.OverdueHold, 0)
	for rows.Next() {
		var h model.OverdueHold
		if err := rows.Scan(
			&h.StudentID,
			&h.FirstName,
			&h.LastName,
			&h.ClassName,
			&h.BookID,
			&h.BookTitle,
			&h.BorrowedDate,
			&h.DueDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan overdue hold: %w", err)
		}
		h.DaysOverdue = model.DaysOverdue(h.DueDate, asOf)
		holds = append(holds, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating overdue holds: %w", err)
	}

	return holds, nil
}

func (r *postgresRepository) FindCountDrift(ctx context.Context) ([]model.CountDrift, error) {
	query, args, err := BuildDriftQuery()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find borrowed count drift: %w", err)
	}
	defer rows.Close()

	drifts := make([]model.CountDrift, 0)
	for rows.Next() {
		var d model.CountDrift
		if err := rows.Scan(&d.BookID, &d.Title, &d.Recorded, &d.Actual); err != nil {
			return nil, fmt.Errorf("failed to scan drift row: %w", err)
		}
		drifts = append(drifts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating drift rows: %w", err)
	}

	return drifts, nil
}

// RecountBorrowed takes the same book row lock as Borrow and Return, so no
// hold can be added or removed between the count and the write.
func (r *postgresRepository) RecountBorrowed(ctx context.Context, bookID uuid.UUID) (*model.CountDrift, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.CountDrift, error) {
		book, err := lockBook(ctx, tx, bookID)
		if err != nil || book == nil {
			return nil, err
		}

		recount := `
			UPDATE books
			SET borrowed_count = (SELECT COUNT(*) FROM borrowed_books WHERE book_id = $1)
			WHERE id = $1
			RETURNING borrowed_count
		`
		var actual int
		if err := tx.QueryRow(ctx, recount, bookID).Scan(&actual); err != nil {
			return nil, fmt.Errorf("failed to recount borrowed books: %w", err)
		}

		return &model.CountDrift{
			BookID:   book.ID,
			Title:    book.Title,
			Recorded: book.BorrowedCount,
			Actual:   actual,
		}, nil
	})
}

// BuildDriftQuery renders the books/holds comparison.
func BuildDriftQuery() (string, []interface{}, error) {
	holdCount := goqu.COUNT(goqu.I("h.book_id"))

	query, args, err := goqu.Dialect("postgres").
		From(goqu.T("books").As("b")).
		LeftJoin(
			goqu.T("borrowed_books").As("h"),
			goqu.On(goqu.I("h.book_id").Eq(goqu.I("b.id"))),
		).
		Select(
			goqu.I("b.id"),
			goqu.I("b.title"),
			goqu.I("b.borrowed_count"),
			holdCount.As("actual"),
		).
		GroupBy(goqu.I("b.id")).
		Having(goqu.I("b.borrowed_count").Neq(holdCount)).
		Order(goqu.I("b.title").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build drift query: %w", err)
	}

	return query, args, nil
}

func lockBook(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*bookModel.Book, error) {
	query := `
		SELECT id, title, author, quantity, borrowed_count, available, created_at
		FROM books
		WHERE id = $1
		FOR UPDATE
	`

	book, err := bookRepo.ScanBook(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock book: %w", err)
	}
	return book, nil
}

func lockStudent(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*studentModel.Student, error) {
	query := `
		SELECT id, first_name, last_name, class_name, created_at
		FROM students
		WHERE id = $1
		FOR UPDATE
	`

	var s studentModel.Student
	err := tx.QueryRow(ctx, query, id).Scan(&s.ID, &s.FirstName, &s.LastName, &s.ClassName, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock student: %w", err)
	}

	if err := studentRepo.LoadHolds(ctx, tx, []*studentModel.Student{&s}); err != nil {
		return nil, err
	}

	return &s, nil
}
