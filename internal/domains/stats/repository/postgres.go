package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"

	"librarian-backend/internal/domains/stats/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Totals(ctx context.Context) (*model.Totals, error) {
	bookQuery, _, err := BuildBookTotalsQuery()
	if err != nil {
		return nil, err
	}
	classQuery, _, err := BuildClassCountsQuery()
	if err != nil {
		return nil, err
	}

	var t model.Totals

	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&t.Students); err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	if err := r.pool.QueryRow(ctx, bookQuery).Scan(
		&t.Books,
		&t.Copies,
		&t.BorrowedCopies,
		&t.AvailableBooks,
	); err != nil {
		return nil, fmt.Errorf("failed to aggregate books: %w", err)
	}

	rows, err := r.pool.Query(ctx, classQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to count students per class: %w", err)
	}
	defer rows.Close()

	t.ClassCounts = make([]model.ClassCount, 0)
	for rows.Next() {
		var cc model.ClassCount
		if err := rows.Scan(&cc.ClassName, &cc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan class count: %w", err)
		}
		t.ClassCounts = append(t.ClassCounts, cc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class counts: %w", err)
	}

	return &t, nil
}

// BuildBookTotalsQuery sums copies and counts in one pass over books.
func BuildBookTotalsQuery() (string, []interface{}, error) {
	query, args, err := goqu.Dialect("postgres").
		From("books").
		Select(
			goqu.COUNT(goqu.Star()).As("total_books"),
			goqu.COALESCE(goqu.SUM("quantity"), 0).As("total_copies"),
			goqu.COALESCE(goqu.SUM("borrowed_count"), 0).As("borrowed_copies"),
			goqu.L("COUNT(*) FILTER (WHERE available)").As("available_books"),
		).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build book totals query: %w", err)
	}
	return query, args, nil
}

func BuildClassCountsQuery() (string, []interface{}, error) {
	query, args, err := goqu.Dialect("postgres").
		From("students").
		Select(goqu.C("class_name"), goqu.COUNT(goqu.Star()).As("count")).
		GroupBy(goqu.C("class_name")).
		Order(goqu.C("class_name").Asc()).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build class counts query: %w", err)
	}
	return query, args, nil
}
