package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"librarian-backend/internal/domains/book/model"
	"librarian-backend/pkg/database"
)

const (
	tableBooks  = "books"
	dialect     = "postgres"
	bookColumns = "id, title, author, quantity, borrowed_count, available, created_at"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new book repository instance
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const insertBookQuery = `
	INSERT INTO books (id, title, author, quantity, borrowed_count, available, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func bookArgs(b *model.Book) []interface{} {
	return []interface{}{b.ID, b.Title, b.Author, b.Quantity, b.BorrowedCount, b.Available, b.CreatedAt}
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) error {
	if _, err := r.pool.Exec(ctx, insertBookQuery, bookArgs(b)...); err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	b, err := ScanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) List(ctx context.Context, limit int) ([]*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY created_at ASC, id ASC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]*model.Book, 0)
	for rows.Next() {
		b, err := ScanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, p model.BookPatch) (*model.Book, error) {
	query, args, err := BuildUpdateStatement(id, p)
	if err != nil {
		return nil, err
	}

	b, err := ScanBook(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete book: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

type mergeResult struct {
	book    *model.Book
	created bool
}

// MergeCopies holds a transaction-scoped advisory lock on (title, author), so
// two imports of the same new title cannot both insert it.
func (r *postgresRepository) MergeCopies(ctx context.Context, b *model.Book) (*model.Book, bool, error) {
	res, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (mergeResult, error) {
		lockQuery := `SELECT pg_advisory_xact_lock(hashtextextended($1::text || E'\n' || $2::text, 0))`
		if _, err := tx.Exec(ctx, lockQuery, b.Title, b.Author); err != nil {
			return mergeResult{}, fmt.Errorf("failed to lock title and author: %w", err)
		}

		addQuery := `
			UPDATE books
			SET quantity = quantity + $3
			WHERE id = (
				SELECT id FROM books
				WHERE title = $1 AND author = $2
				ORDER BY created_at ASC
				LIMIT 1
			)
			RETURNING ` + bookColumns

		existing, err := ScanBook(tx.QueryRow(ctx, addQuery, b.Title, b.Author, b.Quantity))
		if err == nil {
			return mergeResult{book: existing}, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return mergeResult{}, fmt.Errorf("failed to add book quantity: %w", err)
		}

		if _, err := tx.Exec(ctx, insertBookQuery, bookArgs(b)...); err != nil {
			return mergeResult{}, fmt.Errorf("failed to create book: %w", err)
		}
		return mergeResult{book: b.Clone(), created: true}, nil
	})
	if err != nil {
		return nil, false, err
	}
	return res.book, res.created, nil
}

// BuildUpdateStatement renders the sparse UPDATE for p and returns every
// column of the updated row.
func BuildUpdateStatement(id uuid.UUID, p model.BookPatch) (string, []interface{}, error) {
	record := goqu.Record{}
	if v, ok := p.Title.Get(); ok {
		record["title"] = v
	}
	if v, ok := p.Author.Get(); ok {
		record["author"] = v
	}
	if v, ok := p.Quantity.Get(); ok {
		record["quantity"] = v
	}
	if v, ok := p.Available.Get(); ok {
		record["available"] = v
	}

	if len(record) == 0 {
		return "", nil, model.ErrEmptyUpdate
	}

	query, args, err := goqu.Dialect(dialect).
		Update(tableBooks).
		Prepared(true).
		Set(record).
		Where(goqu.C("id").Eq(id.String())).
		Returning("id", "title", "author", "quantity", "borrowed_count", "available", "created_at").
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build book update: %w", err)
	}

	return query, args, nil
}

// ScanBook reads one row selected with bookColumns.
func ScanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Quantity,
		&b.BorrowedCount,
		&b.Available,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
