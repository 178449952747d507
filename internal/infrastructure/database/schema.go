package database

import (
	"context"
	"fmt"
	"log"
)

// schemaStatements bootstraps the three collections plus the hold table
// backing Student.borrowed_books. Every statement is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id          UUID PRIMARY KEY,
		first_name  TEXT NOT NULL,
		last_name   TEXT NOT NULL,
		class_name  TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_students_class_name ON students (class_name)`,
	`CREATE INDEX IF NOT EXISTS idx_students_identity ON students (first_name, last_name, class_name)`,

	`CREATE TABLE IF NOT EXISTS books (
		id              UUID PRIMARY KEY,
		title           TEXT NOT NULL,
		author          TEXT NOT NULL,
		quantity        INTEGER NOT NULL DEFAULT 1,
		borrowed_count  INTEGER NOT NULL DEFAULT 0,
		available       BOOLEAN NOT NULL DEFAULT TRUE,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_books_title_author ON books (title, author)`,

	`CREATE TABLE IF NOT EXISTS classes (
		id          UUID PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	// book_id is not a foreign key: holds outlive deleted books.
	`CREATE TABLE IF NOT EXISTS borrowed_books (
		seq            BIGSERIAL,
		student_id     UUID NOT NULL REFERENCES students (id) ON DELETE CASCADE,
		book_id        UUID NOT NULL,
		book_title     TEXT NOT NULL,
		borrowed_date  TIMESTAMPTZ NOT NULL,
		due_date       TIMESTAMPTZ,
		PRIMARY KEY (student_id, book_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_borrowed_books_book_id ON borrowed_books (book_id)`,
	`CREATE INDEX IF NOT EXISTS idx_borrowed_books_due_date ON borrowed_books (due_date)`,
}

// EnsureSchema creates missing tables and indexes.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	for i, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d failed: %w", i+1, err)
		}
	}

	log.Printf("[DATABASE] Schema ensured (%d statements)", len(schemaStatements))
	return nil
}
